// cmd/seed-decks - Load shared flashcard decks from a JSON file
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"rcsinavim/config"
	"rcsinavim/database"
	"rcsinavim/models"
	"rcsinavim/services"
)

type seedDeck struct {
	Title   string        `json:"title"`
	Subject string        `json:"subject"`
	Cards   []models.Card `json:"cards"`
}

func main() {
	file := flag.String("file", "./data/decks.json", "JSON file with an array of decks")
	creator := flag.String("creator", "", "email of the account that owns the decks")
	dryRun := flag.Bool("dry-run", false, "validate the file without writing anything")
	flag.Parse()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("Failed to read JSON file:", err)
	}

	var decks []seedDeck
	if err := json.Unmarshal(data, &decks); err != nil {
		log.Fatal("Failed to parse JSON:", err)
	}
	fmt.Printf("Found %d decks in %s\n\n", len(decks), *file)

	validator := services.NewValidator()
	if bad := validateDecks(validator, decks); bad > 0 {
		fmt.Printf("\n✗ %d invalid decks, nothing imported\n", bad)
		os.Exit(1)
	}
	if *dryRun {
		fmt.Println("✓ All decks are valid")
		return
	}

	if *creator == "" {
		log.Fatal("-creator is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}
	db, err := database.Open(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db)

	store := database.NewStore(db)
	ctx := context.Background()

	owner, err := store.GetUserByEmail(ctx, *creator)
	if err != nil {
		log.Fatalf("Creator %s: %v", *creator, err)
	}

	deckService := services.NewDeckService(store, validator)
	imported := 0
	for _, d := range decks {
		id, err := deckService.CreateDeck(ctx, services.CreateDeckInput{
			CreatorID: owner.ID,
			Title:     d.Title,
			Subject:   d.Subject,
			Cards:     d.Cards,
		})
		if err != nil {
			log.Printf("Error inserting deck %q: %v\n", d.Title, err)
			continue
		}
		fmt.Printf("Inserted %s (%s)\n", d.Title, id)
		imported++
	}

	fmt.Printf("\n✓ Imported %d/%d decks\n", imported, len(decks))
}

// validateDecks prints every deck that CreateDeck would reject and returns
// how many there are.
func validateDecks(validator *services.Validator, decks []seedDeck) int {
	bad := 0
	for i, d := range decks {
		in := services.CreateDeckInput{CreatorID: "seed", Title: d.Title, Subject: d.Subject, Cards: d.Cards}.Normalize()
		if err := validator.Struct(in); err != nil {
			fmt.Printf("deck %d (%q): %s\n", i+1, d.Title, services.Message(err))
			bad++
		}
	}
	return bad
}
