package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/flashdeck/pkg/models"
)

func setupDB(t *testing.T) {
	t.Helper()
	t.Setenv("DB_TYPE", "sqlite")
	require.NoError(t, Connect(filepath.Join(t.TempDir(), "flashdeck.db")))
	t.Cleanup(func() { Close() })
}

func TestSetLifecycle(t *testing.T) {
	setupDB(t)
	sets := NewSetRepository()

	require.NoError(t, sets.Create("Spanish", "Basic vocabulary"))

	exists, err := sets.Exists("Spanish")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = sets.Exists("German")
	require.NoError(t, err)
	assert.False(t, exists)

	// Duplicate names are rejected by the primary key.
	assert.Error(t, sets.Create("Spanish", "again"))

	got, err := sets.Get("Spanish")
	require.NoError(t, err)
	assert.Equal(t, "Basic vocabulary", got.Description)
	assert.Equal(t, 0, got.CardCount)

	require.NoError(t, sets.Delete("Spanish"))
	exists, err = sets.Exists("Spanish")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCardUpsertAndSchedule(t *testing.T) {
	setupDB(t)
	sets := NewSetRepository()
	cards := NewCardRepository()

	require.NoError(t, sets.Create("Spanish", ""))
	require.NoError(t, cards.Upsert(&models.Card{SetName: "Spanish", Word: "cat", Answer: "gato"}))

	// Upsert again with a new answer updates in place.
	require.NoError(t, cards.Upsert(&models.Card{SetName: "Spanish", Word: "cat", Answer: "el gato"}))

	got, err := cards.Get("Spanish", "cat")
	require.NoError(t, err)
	assert.Equal(t, "el gato", got.Answer)
	assert.Equal(t, 0, got.Level)
	assert.Equal(t, "", got.NextReview)

	next := time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC)
	require.NoError(t, cards.UpdateSchedule("Spanish", "cat", 3, next))

	got, err = cards.Get("Spanish", "cat")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Level)
	assert.Equal(t, next.Format(time.RFC3339), got.NextReview)
}

func TestDueCards(t *testing.T) {
	setupDB(t)
	sets := NewSetRepository()
	cards := NewCardRepository()

	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	require.NoError(t, sets.Create("Spanish", ""))
	require.NoError(t, cards.Upsert(&models.Card{SetName: "Spanish", Word: "unscheduled", Answer: "a"}))
	require.NoError(t, cards.Upsert(&models.Card{
		SetName: "Spanish", Word: "overdue", Answer: "b",
		NextReview: now.Add(-time.Hour).Format(time.RFC3339),
	}))
	require.NoError(t, cards.Upsert(&models.Card{
		SetName: "Spanish", Word: "future", Answer: "c",
		NextReview: now.Add(48 * time.Hour).Format(time.RFC3339),
	}))

	due, err := cards.Due("Spanish", now)
	require.NoError(t, err)

	words := make([]string, 0, len(due))
	for _, c := range due {
		words = append(words, c.Word)
	}
	assert.ElementsMatch(t, []string{"unscheduled", "overdue"}, words)

	count, err := cards.CountDue(now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSetDeleteRemovesCards(t *testing.T) {
	setupDB(t)
	sets := NewSetRepository()
	cards := NewCardRepository()

	require.NoError(t, sets.Create("Spanish", ""))
	require.NoError(t, cards.Upsert(&models.Card{SetName: "Spanish", Word: "cat", Answer: "gato"}))
	require.NoError(t, sets.Delete("Spanish"))

	got, err := cards.GetBySet("Spanish")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetAllCounts(t *testing.T) {
	setupDB(t)
	sets := NewSetRepository()
	cards := NewCardRepository()

	require.NoError(t, sets.Create("Spanish", ""))
	require.NoError(t, sets.Create("French", ""))
	require.NoError(t, cards.Upsert(&models.Card{SetName: "Spanish", Word: "cat", Answer: "gato"}))
	require.NoError(t, cards.Upsert(&models.Card{SetName: "Spanish", Word: "dog", Answer: "perro"}))

	all, err := sets.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "French", all[0].Name)
	assert.Equal(t, 0, all[0].CardCount)
	assert.Equal(t, "Spanish", all[1].Name)
	assert.Equal(t, 2, all[1].CardCount)
}
