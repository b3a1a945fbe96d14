// Package main provides a tool to seed the database with demo inventory data.
//
// It creates a handful of stores with items and tags, links them, and
// optionally registers demo users for exercising the auth endpoints.
//
// Usage:
//
//	DB_PATH=~/Stockroom/data/stockroom.db go run ./cmd/seed
//	DB_PATH=~/Stockroom/data/stockroom.db go run ./cmd/seed --create-users
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/stockroomapp/stockroom-server/internal/auth"
	"github.com/stockroomapp/stockroom-server/internal/domain"
	"github.com/stockroomapp/stockroom-server/internal/id"
	"github.com/stockroomapp/stockroom-server/internal/store/sqlite"
)

var createUsers = flag.Bool("create-users", false, "Create demo users for auth testing")

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, "Stockroom", "data", "stockroom.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	if *createUsers {
		seedUsers(ctx, s)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	storeNames := []string{"Downtown Depot", "Harbor Outlet", "North End Shop"}
	tagNames := []string{"new", "sale", "clearance", "seasonal"}
	itemNames := []string{
		"Claw Hammer", "Pipe Wrench", "Work Gloves", "Tape Measure",
		"Utility Knife", "Safety Goggles", "Drill Bits", "Wood Screws",
	}

	itemCursor := 0
	for _, name := range storeNames {
		st := &domain.Store{Name: name}
		st.ID = id.MustGenerate("store")
		st.InitTimestamps()

		if err := s.CreateStore(ctx, st); err != nil {
			log.Printf("Skipping store %q: %v", name, err)
			continue
		}
		fmt.Printf("\nCreated store: %s (%s)\n", st.Name, st.ID)

		tags := make([]*domain.Tag, 0, len(tagNames))
		for _, tagName := range tagNames {
			tag := &domain.Tag{Name: tagName, StoreID: st.ID}
			tag.ID = id.MustGenerate("tag")
			tag.InitTimestamps()

			if err := s.CreateTag(ctx, tag); err != nil {
				log.Printf("  Skipping tag %q: %v", tagName, err)
				continue
			}
			tags = append(tags, tag)
		}
		fmt.Printf("  Created %d tags\n", len(tags))

		// Two or three items per store, each linked to a random tag.
		numItems := 2 + rng.Intn(2)
		for i := 0; i < numItems; i++ {
			if itemCursor >= len(itemNames) {
				break
			}
			item := &domain.Item{
				Name:    itemNames[itemCursor],
				Price:   float64(rng.Intn(4000)+99) / 100,
				StoreID: st.ID,
			}
			item.ID = id.MustGenerate("item")
			item.InitTimestamps()
			itemCursor++

			if err := s.CreateItem(ctx, item); err != nil {
				log.Printf("  Skipping item %q: %v", item.Name, err)
				continue
			}

			if len(tags) > 0 {
				tag := tags[rng.Intn(len(tags))]
				if err := s.LinkTagItem(ctx, tag.ID, item.ID); err != nil {
					log.Printf("  Failed to link %q to %q: %v", tag.Name, item.Name, err)
				} else {
					fmt.Printf("  Created item %s ($%.2f) tagged %q\n", item.Name, item.Price, tag.Name)
				}
			}
		}
	}

	fmt.Println("\nDone.")
}

// seedUsers registers demo accounts with a shared password.
func seedUsers(ctx context.Context, s *sqlite.Store) {
	usernames := []string{"alice", "bob", "carol"}

	hash, err := auth.HashPassword("demo-password-123")
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	for _, username := range usernames {
		user := &domain.User{
			Username:     username,
			PasswordHash: hash,
		}
		user.ID = id.MustGenerate("user")
		user.InitTimestamps()

		if err := s.CreateUser(ctx, user); err != nil {
			log.Printf("Skipping user %q: %v", username, err)
			continue
		}
		fmt.Printf("Created user: %s (password: demo-password-123)\n", username)
	}
}
