// services/errors.go - Error taxonomy shared by services and handlers
package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrDuelNotFound    = fmt.Errorf("%w: Düello bulunamadı.", ErrNotFound)
	ErrDeckNotFound    = fmt.Errorf("%w: Deste bulunamadı.", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("%w: Kullanıcı bulunamadı.", ErrNotFound)
	ErrRequestNotFound = fmt.Errorf("%w: İstek bulunamadı.", ErrNotFound)
	ErrFriendNotFound  = fmt.Errorf("%w: Arkadaşlık bulunamadı.", ErrNotFound)

	ErrNotParticipant = fmt.Errorf("%w: user is not a participant of this duel", ErrForbidden)
	ErrDuelCompleted  = fmt.Errorf("%w: duel is already completed", ErrConflict)
	ErrSelfDuel       = fmt.Errorf("%w: challenger and opponent must differ", ErrValidation)

	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: Hatalı giriş bilgileri", ErrUnauthorized)

	ErrAlreadyFriends    = fmt.Errorf("%w: Zaten arkadaşsınız.", ErrConflict)
	ErrRequestPending    = fmt.Errorf("%w: İstek zaten gönderilmiş.", ErrConflict)
	ErrReverseRequest    = fmt.Errorf("%w: Karşı taraftan gelen bir istek zaten var.", ErrConflict)
	ErrRequestProcessed  = fmt.Errorf("%w: İstek zaten işlenmiş.", ErrConflict)
	ErrSelfFriendRequest = fmt.Errorf("%w: cannot send a friend request to yourself", ErrValidation)
)

// Message strips the taxonomy prefix and returns the human-readable part.
func Message(err error) string {
	for _, base := range []error{ErrNotFound, ErrValidation, ErrForbidden, ErrConflict, ErrUnauthorized} {
		if errors.Is(err, base) {
			return strings.TrimPrefix(err.Error(), base.Error()+": ")
		}
	}
	return err.Error()
}
