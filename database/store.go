// database/store.go - GORM-backed repositories
package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rcsinavim/services"
)

// Store implements the service repositories on top of a gorm connection.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// translate maps gorm's missing-row error onto the service sentinel.
func translate(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// validID guards uuid columns; postgres rejects malformed literals with a
// syntax error instead of returning no rows.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func prefixPattern(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}

var (
	_ services.DuelRepository   = (*Store)(nil)
	_ services.DeckRepository   = (*Store)(nil)
	_ services.UserRepository   = (*Store)(nil)
	_ services.FriendRepository = (*Store)(nil)
)
