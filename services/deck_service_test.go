package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rcsinavim/database/inmem"
	"rcsinavim/models"
	"rcsinavim/services"
)

func TestCreateDeck(t *testing.T) {
	ctx := context.Background()
	svc := services.NewDeckService(inmem.NewStore(), services.NewValidator())

	deckID, err := svc.CreateDeck(ctx, services.CreateDeckInput{
		CreatorID: "alice",
		Title:     "  Osmanlı Tarihi Çalışma Destesi ",
		Subject:   "Tarih",
		Cards: []models.Card{
			{Front: "İstanbul'un fethi", Back: "1453"},
			{Front: "Malazgirt", Back: "1071"},
		},
	})
	require.NoError(t, err)

	deck, err := svc.GetDeck(ctx, deckID)
	require.NoError(t, err)
	assert.Equal(t, "Osmanlı Tarihi Çalışma Destesi", deck.Title)
	assert.Equal(t, "osmanli-tarihi-calisma-destesi", deck.Slug)
	assert.True(t, deck.IsPublic)
	assert.Len(t, deck.Cards, 2)
	assert.Equal(t, "1453", deck.Cards[0].Back)
}

func TestCreateDeckInputNormalize(t *testing.T) {
	in := services.CreateDeckInput{CreatorID: "alice", Title: " \tKuvvet\n", Subject: "  Fizik "}
	got := in.Normalize()
	assert.Equal(t, "Kuvvet", got.Title)
	assert.Equal(t, "Fizik", got.Subject)
	assert.Equal(t, "alice", got.CreatorID)
	assert.Equal(t, " \tKuvvet\n", in.Title, "receiver is left untouched")
}

func TestCreateDeckValidation(t *testing.T) {
	svc := services.NewDeckService(inmem.NewStore(), services.NewValidator())
	card := []models.Card{{Front: "a", Back: "b"}}

	tests := []struct {
		name      string
		input     services.CreateDeckInput
		wantField string
	}{
		{
			name:      "missing title",
			input:     services.CreateDeckInput{CreatorID: "alice", Title: "   ", Subject: "Fizik", Cards: card},
			wantField: "title",
		},
		{
			name:      "missing subject",
			input:     services.CreateDeckInput{CreatorID: "alice", Title: "Kuvvet", Cards: card},
			wantField: "subject",
		},
		{
			name:      "no cards",
			input:     services.CreateDeckInput{CreatorID: "alice", Title: "Kuvvet", Subject: "Fizik", Cards: []models.Card{}},
			wantField: "cards",
		},
		{
			name: "card without back",
			input: services.CreateDeckInput{CreatorID: "alice", Title: "Kuvvet", Subject: "Fizik",
				Cards: []models.Card{{Front: "F=?"}}},
			wantField: "back",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateDeck(context.Background(), tt.input)
			require.ErrorIs(t, err, services.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestGetDeckNotFound(t *testing.T) {
	svc := services.NewDeckService(inmem.NewStore(), services.NewValidator())

	_, err := svc.GetDeck(context.Background(), "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Equal(t, "Deste bulunamadı.", services.Message(err))
}
