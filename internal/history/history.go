package history

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/example/flashdeck/pkg/models"
)

// TimeLayout is the timestamp format used in the history file.
const TimeLayout = "2006-01-02 15:04:05"

// baseColumns are the fixed leading columns of every history file.
// Everything after them is one column per distinct card word.
var baseColumns = []string{"Timestamp", "Set", "Score", "Total", "Accuracy"}

// Log is an append-only CSV record of completed review sessions.
type Log struct {
	path string
}

// NewLog creates a log backed by the given CSV file path.
// The file is created on first append.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Path returns the underlying file path.
func (l *Log) Path() string {
	return l.path
}

// Load reads all well-formed session records from the log.
// A missing file yields an empty history. Rows with too few columns or an
// unparseable timestamp are skipped with a warning rather than failing the
// whole read.
func (l *Log) Load() ([]models.SessionRecord, error) {
	header, rows, err := l.readRaw()
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, nil
	}

	words := header[len(baseColumns):]
	records := make([]models.SessionRecord, 0, len(rows))

	for i, row := range rows {
		if len(row) < len(baseColumns) {
			log.Printf("history: skipping row %d: expected at least %d columns, got %d", i+2, len(baseColumns), len(row))
			continue
		}

		ts, err := parseTimestamp(row[0])
		if err != nil {
			log.Printf("history: skipping row %d: bad timestamp %q", i+2, row[0])
			continue
		}

		score, err := strconv.Atoi(row[2])
		if err != nil {
			log.Printf("history: skipping row %d: bad score %q", i+2, row[2])
			continue
		}
		total, err := strconv.Atoi(row[3])
		if err != nil {
			log.Printf("history: skipping row %d: bad total %q", i+2, row[3])
			continue
		}

		rec := models.SessionRecord{
			Timestamp: ts,
			Set:       row[1],
			Score:     score,
			Total:     total,
			Results:   make(map[string]int),
		}

		for j, word := range words {
			col := len(baseColumns) + j
			if col >= len(row) || row[col] == "" {
				continue
			}
			v, err := strconv.Atoi(row[col])
			if err != nil {
				continue
			}
			rec.Results[word] = v
		}

		records = append(records, rec)
	}

	return records, nil
}

// Append writes one session record to the log. When the record mentions
// words the file has never seen, the file is rewritten with a widened
// header; otherwise the row is appended in place.
func (l *Log) Append(rec models.SessionRecord) error {
	header, rows, err := l.readRaw()
	if err != nil {
		return err
	}

	var known []string
	if header != nil {
		known = header[len(baseColumns):]
	}

	knownSet := make(map[string]bool, len(known))
	for _, w := range known {
		knownSet[w] = true
	}

	var added []string
	for w := range rec.Results {
		if !knownSet[w] {
			added = append(added, w)
		}
	}
	sort.Strings(added)

	words := append(append([]string{}, known...), added...)
	newRow := l.formatRow(rec, words)

	if header == nil || len(added) > 0 {
		return l.rewrite(words, append(rows, newRow))
	}

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(newRow); err != nil {
		return fmt.Errorf("failed to append history row: %v", err)
	}
	writer.Flush()
	return writer.Error()
}

// readRaw returns the header and data rows as raw strings.
// A nil header means the file does not exist yet.
func (l *Log) readRaw() ([]string, [][]string, error) {
	file, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Rows written before a header widening are shorter
	reader.LazyQuotes = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read history file: %v", err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	if len(all[0]) < len(baseColumns) {
		return nil, nil, fmt.Errorf("failed to read history file: malformed header")
	}

	return all[0], all[1:], nil
}

// rewrite replaces the whole file atomically with the given word columns and rows.
func (l *Log) rewrite(words []string, rows [][]string) error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %v", err)
	}

	tmp, err := os.CreateTemp(dir, "history-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %v", err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	header := append(append([]string{}, baseColumns...), words...)
	if err := writer.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write history header: %v", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write history row: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush history file: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp history file: %v", err)
	}

	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("failed to replace history file: %v", err)
	}
	return nil
}

// formatRow renders a session record against the given word column order.
func (l *Log) formatRow(rec models.SessionRecord, words []string) []string {
	accuracy := 0.0
	if rec.Total > 0 {
		accuracy = float64(rec.Score) / float64(rec.Total) * 100
	}

	row := []string{
		rec.Timestamp.Format(TimeLayout),
		rec.Set,
		strconv.Itoa(rec.Score),
		strconv.Itoa(rec.Total),
		fmt.Sprintf("%.2f%%", accuracy),
	}
	for _, w := range words {
		if v, ok := rec.Results[w]; ok {
			row = append(row, strconv.Itoa(v))
		} else {
			row = append(row, "")
		}
	}
	return row
}

// parseTimestamp accepts the native layout and RFC3339 as a fallback.
func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(TimeLayout, s); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, s)
}
