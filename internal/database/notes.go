package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"NotePadBot/internal/database/models"
	"gorm.io/gorm"
)

// CreateNote сохраняет новую заметку пользователя.
func (s *Store) CreateNote(ctx context.Context, ownerID uint, title, content string) (*models.Note, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return nil, fmt.Errorf("%w: title is empty", ErrValidation)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: content is empty", ErrValidation)
	}

	note := &models.Note{OwnerID: ownerID, Title: title, Content: content}
	if err := s.db.WithContext(ctx).Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

// NotesByOwner возвращает заметки пользователя, самые свежие сверху.
func (s *Store) NotesByOwner(ctx context.Context, ownerID uint) ([]models.Note, error) {
	var notes []models.Note
	result := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at desc, id desc").
		Find(&notes)
	if result.Error != nil {
		return nil, result.Error
	}
	return notes, nil
}

// NoteByID ищет заметку по идентификатору с проверкой владельца.
func (s *Store) NoteByID(ctx context.Context, noteID, ownerID uint) (*models.Note, error) {
	var note models.Note
	result := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", noteID, ownerID).
		First(&note)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return &note, nil
}

// UpdateNote заменяет заголовок и текст заметки, обновляя updated_at.
func (s *Store) UpdateNote(ctx context.Context, noteID, ownerID uint, title, content string) (*models.Note, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return nil, fmt.Errorf("%w: title is empty", ErrValidation)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: content is empty", ErrValidation)
	}

	note, err := s.NoteByID(ctx, noteID, ownerID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(note).
		Updates(map[string]interface{}{
			"title":   title,
			"content": content,
		}).Error
	if err != nil {
		return nil, err
	}

	return s.NoteByID(ctx, noteID, ownerID)
}

// DeleteNote удаляет заметку; false — если она не найдена или чужая.
func (s *Store) DeleteNote(ctx context.Context, noteID, ownerID uint) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", noteID, ownerID).
		Delete(&models.Note{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
