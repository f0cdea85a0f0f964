package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/flashdeck/pkg/models"
)

func tempLog(t *testing.T) *Log {
	t.Helper()
	return NewLog(filepath.Join(t.TempDir(), "history.csv"))
}

func TestLoadMissingFile(t *testing.T) {
	l := tempLog(t)
	records, err := l.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppendThenLoad(t *testing.T) {
	l := tempLog(t)
	ts := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)

	err := l.Append(models.SessionRecord{
		Timestamp: ts,
		Set:       "Spanish",
		Score:     2,
		Total:     3,
		Results:   map[string]int{"cat": 1, "dog": 0, "house": 1},
	})
	require.NoError(t, err)

	records, err := l.Load()
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.True(t, rec.Timestamp.Equal(ts))
	assert.Equal(t, "Spanish", rec.Set)
	assert.Equal(t, 2, rec.Score)
	assert.Equal(t, 3, rec.Total)
	assert.Equal(t, map[string]int{"cat": 1, "dog": 0, "house": 1}, rec.Results)
}

func TestAppendWidensHeaderForNewWords(t *testing.T) {
	l := tempLog(t)
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, l.Append(models.SessionRecord{
		Timestamp: ts,
		Set:       "Spanish",
		Score:     1,
		Total:     1,
		Results:   map[string]int{"cat": 1},
	}))
	require.NoError(t, l.Append(models.SessionRecord{
		Timestamp: ts.Add(48 * time.Hour),
		Set:       "Spanish",
		Score:     1,
		Total:     2,
		Results:   map[string]int{"cat": 0, "dog": 1},
	}))

	records, err := l.Load()
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Old row has no cell for the later word.
	assert.False(t, records[0].Reviewed("dog"))
	assert.Equal(t, map[string]int{"cat": 0, "dog": 1}, records[1].Results)
}

func TestAppendInPlaceForKnownWords(t *testing.T) {
	l := tempLog(t)
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Append(models.SessionRecord{
			Timestamp: ts.Add(time.Duration(i) * 24 * time.Hour),
			Set:       "Spanish",
			Score:     1,
			Total:     1,
			Results:   map[string]int{"cat": 1},
		}))
	}

	records, err := l.Load()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	content := "Timestamp,Set,Score,Total,Accuracy,cat\n" +
		"2026-03-01 10:00:00,Spanish,1,1,100.00%,1\n" +
		"not-a-timestamp,Spanish,1,1,100.00%,0\n" +
		"2026-03-02 10:00:00,Spanish\n" +
		"2026-03-03 10:00:00,Spanish,x,1,100.00%,1\n" +
		"2026-03-04 10:00:00,Spanish,0,1,0.00%,0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	records, err := NewLog(path).Load()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Results["cat"])
	assert.Equal(t, 0, records[1].Results["cat"])
}

func TestLoadAcceptsRFC3339Timestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	content := "Timestamp,Set,Score,Total,Accuracy,cat\n" +
		"2026-03-01T10:00:00Z,Spanish,1,1,100.00%,1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	records, err := NewLog(path).Load()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2026, records[0].Timestamp.Year())
}
