package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"NotePadBot/internal/database/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Store управляет пользователями и заметками в базе данных через GORM.
type Store struct {
	db *gorm.DB
	// createMu сериализует регистрацию: флаг администратора должен
	// достаться ровно одному пользователю
	createMu sync.Mutex
}

// Open подключается к MySQL и проверяет соединение.
func Open(dsn string) (*Store, error) {
	fmt.Println("Connecting to database ...")

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping error: %w", err)
	}

	fmt.Println("Connected to database")
	return &Store{db: db}, nil
}

// NewStore оборачивает готовое соединение (используется в тестах с SQLite).
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) AutoMigrate() error {
	err := s.db.AutoMigrate(
		&models.User{},
		&models.Note{},
	)
	if err != nil {
		return err
	}

	log.Println("GORM migrations completed successfully")
	return nil
}

// Close закрывает соединение с базой данных.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// UserByTelegramID ищет пользователя по идентификатору Telegram.
func (s *Store) UserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User
	result := s.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

// CreateUser регистрирует нового пользователя.
// Самый первый пользователь системы автоматически становится администратором.
// Подсчет и вставка идут в одной транзакции под createMu, иначе два
// одновременных новичка оба увидят пустую таблицу и оба станут админами.
func (s *Store) CreateUser(ctx context.Context, telegramID int64, userName string) (*models.User, error) {
	s.createMu.Lock()
	defer s.createMu.Unlock()

	user := &models.User{
		TelegramID: telegramID,
		UserName:   userName,
		IsLocked:   true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		user.IsAdmin = count == 0
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Registered user: TelegramID=%d, UserName=%s, IsAdmin=%t",
		user.TelegramID, user.UserName, user.IsAdmin)
	return user, nil
}

// AllUsers возвращает всех зарегистрированных пользователей (для админ-команды).
func (s *Store) AllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	result := s.db.WithContext(ctx).Order("id asc").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// SetPattern сохраняет код блокировки и снимает блокировку.
func (s *Store) SetPattern(ctx context.Context, userID uint, code string) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"pattern_code": code,
			"is_locked":    false,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetLocked выставляет флаг блокировки пользователя.
func (s *Store) SetLocked(ctx context.Context, userID uint, locked bool) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("is_locked", locked)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
