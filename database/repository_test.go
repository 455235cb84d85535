package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rcsinavim/models"
	"rcsinavim/services"
)

// newTestStore runs the migrations against a private in-memory sqlite
// database. The postgres-only indexes fail and are only logged.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// Every connection to :memory: opens a new database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, RunMigrations(db))
	return NewStore(db)
}

func seedUser(t *testing.T, st *Store, name, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: name, NameKey: name, Password: "hash", Role: models.RoleStudent}
	require.NoError(t, st.CreateUser(context.Background(), user))
	return user
}

func seedDeck(t *testing.T, st *Store, creatorID, title string) *models.Deck {
	t.Helper()
	deck := &models.Deck{
		CreatorID: creatorID,
		Title:     title,
		Subject:   "Biyoloji",
		Cards:     []models.Card{{Front: "Mitoz", Back: "Eşit bölünme"}},
		IsPublic:  true,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.CreateDeck(context.Background(), deck))
	return deck
}

func resultInput(score int, timeSpent float64) services.ResultInput {
	return services.ResultInput{Score: score, CorrectCount: 8, TotalCount: 10, TimeSpent: timeSpent}
}

func TestDuelLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := services.NewDuelService(st, st, st, services.NewValidator())

	alice := seedUser(t, st, "Alice", "alice@example.com")
	bob := seedUser(t, st, "Bob", "bob@example.com")
	deck := seedDeck(t, st, alice.ID, "Hücre Bölünmesi")

	duelID, err := svc.CreateDuel(ctx, alice.ID, bob.ID, deck.ID)
	require.NoError(t, err)

	duel, err := st.GetDuel(ctx, duelID)
	require.NoError(t, err)
	assert.Equal(t, models.DuelStatusPending, duel.Status)
	assert.Nil(t, duel.ChallengerResult)
	assert.Nil(t, duel.OpponentResult)
	assert.Nil(t, duel.WinnerID)
	assert.Nil(t, duel.CompletedAt)

	require.NoError(t, svc.SubmitResult(ctx, duelID, alice.ID, resultInput(80, 120)))

	duel, err = st.GetDuel(ctx, duelID)
	require.NoError(t, err)
	assert.Equal(t, models.DuelStatusPending, duel.Status)
	require.NotNil(t, duel.ChallengerResult)
	assert.Equal(t, 80, duel.ChallengerResult.Score)
	assert.Equal(t, 8, duel.ChallengerResult.CorrectCount)
	assert.Equal(t, 10, duel.ChallengerResult.TotalCount)
	assert.Equal(t, 120.0, duel.ChallengerResult.TimeSpent)
	assert.False(t, duel.ChallengerResult.SubmittedAt.IsZero())
	assert.Nil(t, duel.OpponentResult)
	assert.Nil(t, duel.WinnerID)

	require.NoError(t, svc.SubmitResult(ctx, duelID, bob.ID, resultInput(80, 90)))

	duel, err = st.GetDuel(ctx, duelID)
	require.NoError(t, err)
	assert.Equal(t, models.DuelStatusCompleted, duel.Status)
	require.NotNil(t, duel.WinnerID)
	assert.Equal(t, bob.ID, *duel.WinnerID)
	require.NotNil(t, duel.CompletedAt)
	require.NotNil(t, duel.ChallengerResult)
	require.NotNil(t, duel.OpponentResult)
	assert.Equal(t, 120.0, duel.ChallengerResult.TimeSpent)
	assert.Equal(t, 90.0, duel.OpponentResult.TimeSpent)

	err = svc.SubmitResult(ctx, duelID, alice.ID, resultInput(100, 1))
	assert.ErrorIs(t, err, services.ErrDuelCompleted)

	frozen, err := st.GetDuel(ctx, duelID)
	require.NoError(t, err)
	assert.Equal(t, 80, frozen.ChallengerResult.Score)
	assert.Equal(t, bob.ID, *frozen.WinnerID)
	assert.True(t, frozen.CompletedAt.Equal(*duel.CompletedAt))
}

func TestDuelSubmitOverwritesWhilePending(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := services.NewDuelService(st, st, st, services.NewValidator())

	alice := seedUser(t, st, "Alice", "alice@example.com")
	bob := seedUser(t, st, "Bob", "bob@example.com")
	duelID, err := svc.CreateDuel(ctx, alice.ID, bob.ID, seedDeck(t, st, alice.ID, "Deste").ID)
	require.NoError(t, err)

	require.NoError(t, svc.SubmitResult(ctx, duelID, bob.ID, resultInput(40, 60)))
	require.NoError(t, svc.SubmitResult(ctx, duelID, bob.ID, resultInput(70, 50)))

	duel, err := st.GetDuel(ctx, duelID)
	require.NoError(t, err)
	assert.Equal(t, models.DuelStatusPending, duel.Status)
	assert.Nil(t, duel.ChallengerResult)
	require.NotNil(t, duel.OpponentResult)
	assert.Equal(t, 70, duel.OpponentResult.Score)

	err = svc.SubmitResult(ctx, duelID, "mallory", resultInput(100, 1))
	assert.ErrorIs(t, err, services.ErrNotParticipant)
}

func TestUpdateDuelWritesOnlySettlementColumns(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	duel := &models.Duel{
		ChallengerID: "alice",
		OpponentID:   "bob",
		DeckID:       "deck-1",
		Status:       models.DuelStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, st.CreateDuel(ctx, duel))

	err := st.UpdateDuel(ctx, duel.ID, func(d *models.Duel) error {
		d.DeckID = "deck-2"
		d.ChallengerID = "mallory"
		d.ChallengerResult = &models.DuelResult{Score: 10, TotalCount: 10}
		return nil
	})
	require.NoError(t, err)

	got, err := st.GetDuel(ctx, duel.ID)
	require.NoError(t, err)
	assert.Equal(t, "deck-1", got.DeckID)
	assert.Equal(t, "alice", got.ChallengerID)
	require.NotNil(t, got.ChallengerResult)
	assert.Equal(t, 10, got.ChallengerResult.Score)
}

func TestUpdateDuelWritesNothingOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	duel := &models.Duel{ChallengerID: "alice", OpponentID: "bob", DeckID: "deck-1", Status: models.DuelStatusPending, CreatedAt: time.Now().UTC()}
	require.NoError(t, st.CreateDuel(ctx, duel))

	err := st.UpdateDuel(ctx, duel.ID, func(d *models.Duel) error {
		d.OpponentResult = &models.DuelResult{Score: 99, TotalCount: 10}
		d.Status = models.DuelStatusCompleted
		return services.ErrDuelCompleted
	})
	assert.ErrorIs(t, err, services.ErrDuelCompleted)

	got, err := st.GetDuel(ctx, duel.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DuelStatusPending, got.Status)
	assert.Nil(t, got.OpponentResult)
}

func TestUpdateDuelUnknownID(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	called := false
	fn := func(*models.Duel) error { called = true; return nil }

	assert.ErrorIs(t, st.UpdateDuel(ctx, "not-a-uuid", fn), services.ErrDuelNotFound)
	assert.ErrorIs(t, st.UpdateDuel(ctx, uuid.NewString(), fn), services.ErrDuelNotFound)
	assert.False(t, called)

	_, err := st.GetDuel(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, services.ErrDuelNotFound)
	_, err = st.GetDuel(ctx, uuid.NewString())
	assert.ErrorIs(t, err, services.ErrDuelNotFound)
}

func TestConcurrentSubmissionsKeepBothSlots(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := services.NewDuelService(st, st, st, services.NewValidator())

	alice := seedUser(t, st, "Alice", "alice@example.com")
	bob := seedUser(t, st, "Bob", "bob@example.com")
	duelID, err := svc.CreateDuel(ctx, alice.ID, bob.ID, seedDeck(t, st, alice.ID, "Deste").ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, userID := range []string{alice.ID, bob.ID} {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			errs[i] = svc.SubmitResult(ctx, duelID, userID, resultInput(50+i, 30))
		}(i, userID)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	duel, err := st.GetDuel(ctx, duelID)
	require.NoError(t, err)
	assert.Equal(t, models.DuelStatusCompleted, duel.Status)
	require.NotNil(t, duel.ChallengerResult)
	require.NotNil(t, duel.OpponentResult)
	assert.Equal(t, bob.ID, *duel.WinnerID)
}

func TestUserDuelsToleratesMissingDeck(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := services.NewDuelService(st, st, st, services.NewValidator())

	alice := seedUser(t, st, "Alice", "alice@example.com")
	bob := seedUser(t, st, "Bob", "bob@example.com")
	deck := seedDeck(t, st, alice.ID, "Hücre Bölünmesi")

	_, err := svc.CreateDuel(ctx, alice.ID, bob.ID, deck.ID)
	require.NoError(t, err)
	missingDeckID := uuid.NewString()
	_, err = svc.CreateDuel(ctx, bob.ID, alice.ID, missingDeckID)
	require.NoError(t, err)

	duels, err := svc.GetUserDuels(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, duels, 2)

	titles := map[string]string{}
	for _, d := range duels {
		titles[d.DeckID] = d.DeckTitle
		assert.Equal(t, "Bob", d.OpponentName)
	}
	assert.Equal(t, map[string]string{deck.ID: "Hücre Bölünmesi", missingDeckID: ""}, titles)
}

func TestDeckRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	deck := seedDeck(t, st, "alice", "Hücre Bölünmesi")

	got, err := st.GetDeck(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hücre Bölünmesi", got.Title)
	assert.Equal(t, []models.Card{{Front: "Mitoz", Back: "Eşit bölünme"}}, got.Cards)

	_, err = st.GetDeck(ctx, "missing")
	assert.ErrorIs(t, err, services.ErrDeckNotFound)
	_, err = st.GetDeck(ctx, uuid.NewString())
	assert.ErrorIs(t, err, services.ErrDeckNotFound)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedUser(t, st, "Alice", "alice@example.com")

	err := st.CreateUser(ctx, &models.User{Email: "alice@example.com", Name: "Other", Password: "hash"})
	assert.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestUserLookups(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	alice := seedUser(t, st, "Alice", "alice@example.com")

	got, err := st.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = st.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	_, err = st.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	users, err := st.GetUsers(ctx, []string{alice.ID, "missing", uuid.NewString()})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, alice.ID, users[0].ID)

	require.NoError(t, st.UpdateName(ctx, alice.ID, "Alice Yılmaz", "alice yılmaz"))
	got, err = st.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Yılmaz", got.Name)
	assert.ErrorIs(t, st.UpdateName(ctx, uuid.NewString(), "X", "x"), services.ErrUserNotFound)

	at := time.Now().UTC()
	require.NoError(t, st.TouchLastLogin(ctx, alice.ID, at))
	got, err = st.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.WithinDuration(t, at, *got.LastLogin, time.Second)
}

func TestSearchUsersMatchesLiteralPrefix(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	seedUser(t, st, "ali_veli", "veli@example.com")
	seedUser(t, st, "alihan", "alihan@example.com")
	seedUser(t, st, "zeynep", "ali.z@example.com")

	tests := []struct {
		name        string
		namePrefix  string
		emailPrefix string
		want        []string
	}{
		{name: "name prefix", namePrefix: "ali", emailPrefix: "-", want: []string{"ali_veli", "alihan"}},
		{name: "underscore is literal", namePrefix: "ali_", emailPrefix: "-", want: []string{"ali_veli"}},
		{name: "email prefix", namePrefix: "-", emailPrefix: "ali.", want: []string{"zeynep"}},
		{name: "percent is literal", namePrefix: "%", emailPrefix: "%", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := st.SearchUsers(ctx, tt.namePrefix, tt.emailPrefix, 10)
			require.NoError(t, err)

			var got []string
			for _, u := range users {
				got = append(got, u.NameKey)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFriendRequestTransitions(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	t.Run("decline twice", func(t *testing.T) {
		req := &models.FriendRequest{FromUserID: "alice", ToUserID: "bob", Status: models.FriendRequestPending}
		require.NoError(t, st.CreateRequest(ctx, req))

		require.NoError(t, st.DeclineRequest(ctx, req.ID))
		assert.ErrorIs(t, st.DeclineRequest(ctx, req.ID), services.ErrRequestProcessed)

		got, err := st.GetRequest(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, models.FriendRequestDeclined, got.Status)

		err = st.AcceptRequest(ctx, req.ID, &models.Friendship{UserAID: "alice", UserBID: "bob"})
		assert.ErrorIs(t, err, services.ErrRequestProcessed)
		_, err = st.FindFriendship(ctx, "alice", "bob")
		assert.ErrorIs(t, err, services.ErrFriendNotFound)
	})

	t.Run("accept twice", func(t *testing.T) {
		req := &models.FriendRequest{FromUserID: "carol", ToUserID: "dave", Status: models.FriendRequestPending}
		require.NoError(t, st.CreateRequest(ctx, req))

		pending, err := st.FindPendingRequest(ctx, "carol", "dave")
		require.NoError(t, err)
		assert.Equal(t, req.ID, pending.ID)
		incoming, err := st.ListIncomingRequests(ctx, "dave")
		require.NoError(t, err)
		assert.Len(t, incoming, 1)

		require.NoError(t, st.AcceptRequest(ctx, req.ID, &models.Friendship{UserAID: "carol", UserBID: "dave", CreatedAt: time.Now().UTC()}))
		err = st.AcceptRequest(ctx, req.ID, &models.Friendship{UserAID: "carol", UserBID: "dave"})
		assert.ErrorIs(t, err, services.ErrRequestProcessed)

		_, err = st.FindPendingRequest(ctx, "carol", "dave")
		assert.ErrorIs(t, err, services.ErrRequestNotFound)
		friendships, err := st.ListFriendships(ctx, "dave")
		require.NoError(t, err)
		assert.Len(t, friendships, 1)
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := st.GetRequest(ctx, "missing")
		assert.ErrorIs(t, err, services.ErrRequestNotFound)
		assert.ErrorIs(t, st.DeclineRequest(ctx, uuid.NewString()), services.ErrRequestProcessed)
	})
}

func TestFriendshipLookupAndDelete(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	require.NoError(t, st.db.Create(&models.Friendship{UserAID: "alice", UserBID: "bob"}).Error)

	for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
		f, err := st.FindFriendship(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, f.Involves("alice"))
		assert.Equal(t, pair[1], f.Other(pair[0]))
	}

	assert.ErrorIs(t, st.DeleteFriendship(ctx, "alice", "carol"), services.ErrFriendNotFound)
	require.NoError(t, st.DeleteFriendship(ctx, "bob", "alice"))
	assert.ErrorIs(t, st.DeleteFriendship(ctx, "alice", "bob"), services.ErrFriendNotFound)

	_, err := st.FindFriendship(ctx, "alice", "bob")
	assert.ErrorIs(t, err, services.ErrFriendNotFound)
}
