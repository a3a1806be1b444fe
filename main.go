package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"segnalapp/auth"
	"segnalapp/blobstore"
	"segnalapp/classifier"
	"segnalapp/config"
	"segnalapp/csvstore"
	"segnalapp/models"
	"segnalapp/notify"
	"segnalapp/notify/email"
	"segnalapp/reports"
	"segnalapp/server"
	"segnalapp/server/handlers"
	"segnalapp/stations"
)

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	store := csvstore.NewFileStore(cfg.DataDir, models.Schemas())

	model, err := classifier.Train(classifier.TrainingSet())
	if err != nil {
		log.Fatal("Failed to train the category classifier:", err)
	}
	stationIndex, err := stations.NewIndex(store)
	if err != nil {
		log.Fatal("Failed to load the station table:", err)
	}

	var sender notify.EmailSender
	if cfg.SendGridAPIKey != "" {
		sender = email.NewSender(cfg.SendGridAPIKey, cfg.SendGridFromName, cfg.SendGridFromEmail)
		log.Print("Email delivery of notifications enabled")
	}
	dispatcher := notify.NewDispatcher(store, sender)

	blobs := blobstore.New(cfg.UploadsDir)
	reportService := reports.NewService(store, stationIndex, model, dispatcher, blobs)
	authService := auth.NewService(store)

	h := handlers.New(authService, reportService, dispatcher, stationIndex)
	if err := server.StartService(cfg, h); err != nil {
		log.Fatal("Server stopped:", err)
	}
}
