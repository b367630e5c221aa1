// Package activitylog keeps an append-only CSV history of the changes made
// to one expedition file.
package activitylog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Action is the kind of change recorded.
type Action string

const (
	ActionCreate Action = "create"
	ActionAdd    Action = "add"
	ActionSet    Action = "set"
	ActionEdit   Action = "edit"
	ActionFinish Action = "finish"
)

// Entry is one row in the activity log.
type Entry struct {
	Timestamp   time.Time
	ID          uuid.UUID
	Action      Action
	Day         int // 1-based; 0 when the change is not about a cell
	Participant string
	Detail      string
	Delta       decimal.Decimal
}

// Header is the CSV header of an activity log.
const Header = "timestamp,id,action,day,participant,detail,delta"

// Suffix replaces the expedition file's extension to name its log.
const Suffix = ".log.csv"

const (
	numFields      = 7
	colTimestamp   = 0
	colID          = 1
	colAction      = 2
	colDay         = 3
	colParticipant = 4
	colDetail      = 5
	colDelta       = 6
)

// PathFor returns the log path kept next to an expedition file.
func PathFor(expeditionPath string) string {
	return strings.TrimSuffix(expeditionPath, ".json") + Suffix
}

// NewEntry returns an entry stamped with the current time and a fresh ID.
func NewEntry(action Action, day int, participant, detail string, delta decimal.Decimal) Entry {
	return Entry{
		Timestamp:   time.Now().UTC(),
		ID:          uuid.New(),
		Action:      action,
		Day:         day,
		Participant: participant,
		Detail:      detail,
		Delta:       delta,
	}
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colID] = e.ID.String()
	row[colAction] = string(e.Action)
	if e.Day > 0 {
		row[colDay] = strconv.Itoa(e.Day)
	}
	row[colParticipant] = e.Participant
	row[colDetail] = e.Detail
	row[colDelta] = e.Delta.String()
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	id, err := uuid.Parse(record[colID])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}
	day := 0
	if record[colDay] != "" {
		day, err = strconv.Atoi(record[colDay])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing day %q: %w", record[colDay], err)
		}
	}
	delta, err := decimal.NewFromString(record[colDelta])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing delta %q: %w", record[colDelta], err)
	}

	return Entry{
		Timestamp:   ts,
		ID:          id,
		Action:      Action(record[colAction]),
		Day:         day,
		Participant: record[colParticipant],
		Detail:      record[colDetail],
		Delta:       delta,
	}, nil
}

// Append writes entries to the log at path, creating the file and header if
// needed.
func Append(path string, entries ...Entry) error {
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from the log at path.
// Returns an empty slice if the file does not exist.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
