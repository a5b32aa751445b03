package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meur/harborline/internal/config"
	"github.com/meur/harborline/internal/models"
	"github.com/meur/harborline/internal/storage"
)

// seedFile is the layout of the content seed YAML
type seedFile struct {
	GameModes   []models.GameMode   `yaml:"game_modes"`
	ServerRules []models.ServerRule `yaml:"server_rules"`
	SocialLinks []models.SocialLink `yaml:"social_links"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbPath := flag.String("db", cfg.Store.DBPath, "SQLite database path")
	driver := flag.String("store", cfg.Store.Driver, "Store driver (sqlite, firestore)")
	seedPath := flag.String("seed", "./seeds/content.yaml", "Seed file")
	flag.Parse()
	cfg.Store.DBPath = *dbPath
	cfg.Store.Driver = *driver

	backend, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	client := storage.NewClient(backend)
	defer client.Close()

	seed, err := readSeed(*seedPath)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	ctx := context.Background()
	if err := storage.UpsertRecords(ctx, client, models.CollectionGameModes, seed.GameModes); err != nil {
		log.Fatalf("Failed to seed game modes: %v", err)
	}
	log.Printf("Seeded %d game modes", len(seed.GameModes))

	if err := storage.UpsertRecords(ctx, client, models.CollectionServerRules, seed.ServerRules); err != nil {
		log.Fatalf("Failed to seed server rules: %v", err)
	}
	log.Printf("Seeded %d server rules", len(seed.ServerRules))

	if err := storage.UpsertRecords(ctx, client, models.CollectionSocialLinks, seed.SocialLinks); err != nil {
		log.Fatalf("Failed to seed social links: %v", err)
	}
	log.Printf("Seeded %d social links", len(seed.SocialLinks))
}

func readSeed(path string) (seedFile, error) {
	var seed seedFile
	data, err := os.ReadFile(path)
	if err != nil {
		return seed, err
	}
	err = yaml.Unmarshal(data, &seed)
	return seed, err
}
