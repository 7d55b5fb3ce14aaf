package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var demoPetNames = []string{
	"Rex", "Fido", "Bella", "Luna", "Charlie", "Daisy",
	"Max", "Molly", "Buddy", "Sadie", "Rocky", "Maggie",
}

// SeedDemoData resets the database and populates it with demo users,
// pet profiles, matches, and messages.
//
// Behavior:
//  1. Clears all five tables (hard delete, soft-deleted rows included).
//  2. Creates 12 users with hashed passwords and one IP history row each.
//  3. Gives each user one pet profile.
//  4. Generates random match edges; every 4th is soft-removed to exercise
//     the deleted_at path.
//  5. Generates a handful of messages between users.
//
// Compatible with both Postgres and SQLite.
func SeedDemoData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, table := range []string{"messages", "matches", "profiles", "ip_histories", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	var users []User
	for i := 1; i <= 12; i++ {
		user := User{
			Name:     fmt.Sprintf("user%d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
			Password: string(hash),
			IPs:      []IPHistory{{IP: fmt.Sprintf("10.0.0.%d", i)}},
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users.", len(users))

	var profiles []Profile
	for i, u := range users {
		profile := Profile{
			Name:    demoPetNames[i%len(demoPetNames)],
			Picture: "ph.jpg",
			UserID:  u.ID,
		}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	// Matches: each profile swipes on ~4 others.
	counter := 0
	for _, p := range profiles {
		for j := 0; j < 4; j++ {
			other := profiles[r.Intn(len(profiles))]
			if other.ID == p.ID {
				continue
			}
			match := Match{MatcherID: p.ID, MatcheeID: other.ID}
			if err := db.Create(&match).Error; err != nil {
				return fmt.Errorf("failed to seed match: %w", err)
			}
			if counter%4 == 0 {
				if err := db.Delete(&match).Error; err != nil {
					return fmt.Errorf("failed to soft-remove match: %w", err)
				}
			}
			counter++
		}
	}
	log.Printf("Seeded %d matches.", counter)

	for i := 0; i < 20; i++ {
		sender := users[r.Intn(len(users))]
		recipient := users[r.Intn(len(users))]
		if sender.ID == recipient.ID {
			continue
		}
		msg := Message{
			SenderID:    sender.ID,
			RecipientID: recipient.ID,
			Message:     fmt.Sprintf("woof woof %d", i),
		}
		if err := db.Create(&msg).Error; err != nil {
			return fmt.Errorf("failed to seed message: %w", err)
		}
	}

	return nil
}
