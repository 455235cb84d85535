// database/migrate.go - Database Migration Runner
package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"rcsinavim/models"
)

// RunMigrations creates or updates every table and its indexes.
func RunMigrations(db *gorm.DB) error {
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Deck{},
		&models.Duel{},
		&models.FriendRequest{},
		&models.Friendship{},
	); err != nil {
		return fmt.Errorf("❌ failed to run migrations: %w", err)
	}

	createIndexes(db)

	log.Println("✅ All migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) {
	statements := []string{
		// Duel listing
		"CREATE INDEX IF NOT EXISTS idx_duels_challenger_created ON flashcard_duels(challenger_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_duels_opponent_created ON flashcard_duels(opponent_id, created_at DESC)",

		// Decks
		"CREATE INDEX IF NOT EXISTS idx_decks_subject_public ON flashcard_decks(subject, is_public)",

		// User search
		"CREATE INDEX IF NOT EXISTS idx_users_name_key_prefix ON users(name_key text_pattern_ops)",
		"CREATE INDEX IF NOT EXISTS idx_users_email_prefix ON users(email text_pattern_ops)",

		// Friends
		"CREATE INDEX IF NOT EXISTS idx_friend_requests_pair ON friend_requests(from_user_id, to_user_id, status)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_friendships_pair ON friendships(LEAST(user_a_id, user_b_id), GREATEST(user_a_id, user_b_id))",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			log.Printf("⚠️  Index creation failed: %v", err)
		}
	}
	log.Println("✅ Indexes created successfully")
}
