package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"NotePadBot/internal/bot"
	"NotePadBot/internal/config"
	"NotePadBot/internal/database"
	"NotePadBot/internal/dialog"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func monitorDialogs(states *dialog.Store) {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		log.Printf("Dialog store stats: %+v", states.Stats())
	}
}

func main() {
	cfg := config.Load()

	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is not set")
	}

	store, err := database.Open(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if err := store.AutoMigrate(); err != nil {
		log.Fatal(err)
	}

	states, err := dialog.NewStore()
	if err != nil {
		log.Fatalf("Failed to create dialog store: %v", err)
	}

	go monitorDialogs(states)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	updates := api.GetUpdatesChan(updateConfig)
	handler := bot.NewUpdateHandler(api, store, states, cfg.UnlockWebAppURL)
	go handler.HandleUpdates(updates)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down ...")
	api.StopReceivingUpdates()
}
