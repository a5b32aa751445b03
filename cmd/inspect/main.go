package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/meur/harborline/internal/config"
	"github.com/meur/harborline/internal/content"
	"github.com/meur/harborline/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	dbPath := flag.String("db", cfg.Store.DBPath, "SQLite database path")
	driver := flag.String("store", cfg.Store.Driver, "Store driver (sqlite, firestore)")
	mode := flag.String("mode", "", "Game mode id to select (defaults to the first mode)")
	flag.Parse()
	cfg.Store.DBPath = *dbPath
	cfg.Store.Driver = *driver

	backend, err := storage.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	client := storage.NewClient(backend)
	defer client.Close()

	loader := content.NewLoader(client, nil)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Content.LoadTimeout)
	defer cancel()
	if err := loader.Load(ctx); err != nil {
		log.Fatal(err)
	}

	view := loader.View()
	if *mode != "" {
		view = loader.Select(*mode)
	}

	fmt.Println("Game modes:")
	for _, m := range view.GameModes {
		marker := " "
		if m.ID == view.SelectedGameModeID {
			marker = "*"
		}
		fmt.Printf(" %s %-20s status=%q max_players=%d\n", marker, m.Name, m.Status, m.MaxPlayers)
	}

	fmt.Printf("Rules for %q:\n", view.SelectedGameModeID)
	for _, r := range view.FilteredRules {
		fmt.Printf("  %2d. %s (mode=%q)\n", r.RuleNumber, r.RuleTitle, r.GameMode)
	}

	fmt.Println("Social links:")
	for _, l := range view.SocialLinks {
		fmt.Printf("  %d %s %s\n", l.DisplayOrder, l.PlatformName, l.ProfileURL)
	}
}
