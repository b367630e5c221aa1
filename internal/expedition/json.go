package expedition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trekcalc/trekcalc/internal/cell"
	"github.com/trekcalc/trekcalc/internal/model"
)

// ErrMalformed is returned when a document is not valid JSON, lacks a
// required field, or holds values that cannot describe an expedition.
var ErrMalformed = errors.New("malformed expedition file")

// RequiredFields are the top-level keys every document must carry.
var RequiredFields = []string{
	"hike_name",
	"participants",
	"start_date",
	"end_date",
	"track_days",
	"expenses_data",
}

type document struct {
	HikeName     string            `json:"hike_name"`
	Participants []participantJSON `json:"participants"`
	StartDate    string            `json:"start_date"`
	EndDate      string            `json:"end_date"`
	TrackDays    int               `json:"track_days"`
	ExpensesData [][]cellText      `json:"expenses_data"`
}

type participantJSON struct {
	Name    string      `json:"name"`
	Payment json.Number `json:"payment"`
}

// cellText is a ledger cell as stored. Older files sometimes hold a bare
// number instead of a string; both decode to text.
type cellText string

func (c *cellText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = cellText(cell.Empty)
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = cellText(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("cell must be a string or a number: %s", data)
		}
		*c = cellText(n.String())
		return nil
	}
}

// Decode reads one expedition document. Shape problems in expenses_data are
// not errors: the ledger is rebuilt empty and the problems are returned so
// the caller can report them.
func Decode(r io.Reader) (*Expedition, []ShapeError, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading document: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, nil, fmt.Errorf("%w: invalid JSON: %v", ErrMalformed, err)
	}
	var missing []string
	for _, f := range RequiredFields {
		if _, ok := fields[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, nil, fmt.Errorf("%w: missing fields %s", ErrMalformed, strings.Join(missing, ", "))
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fromDocument(doc)
}

func fromDocument(doc document) (*Expedition, []ShapeError, error) {
	start, err := time.Parse(DateFormat, doc.StartDate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: start_date %q: %v", ErrMalformed, doc.StartDate, err)
	}
	end, err := time.Parse(DateFormat, doc.EndDate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: end_date %q: %v", ErrMalformed, doc.EndDate, err)
	}
	if doc.TrackDays < 1 {
		return nil, nil, fmt.Errorf("%w: track_days %d", ErrMalformed, doc.TrackDays)
	}

	participants := make([]model.Participant, 0, len(doc.Participants)+1)
	for i, p := range doc.Participants {
		if p.Name == model.SharedFundName {
			continue
		}
		payment := decimal.Zero
		if p.Payment != "" {
			payment, err = decimal.NewFromString(p.Payment.String())
			if err != nil {
				return nil, nil, fmt.Errorf("%w: participant %d payment %q: %v", ErrMalformed, i+1, p.Payment, err)
			}
		}
		if payment.IsNegative() {
			return nil, nil, fmt.Errorf("%w: participant %d: %v", ErrMalformed, i+1, ErrInvalidContribution)
		}
		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = model.DefaultParticipantName(len(participants))
		}
		participants = append(participants, model.Participant{Name: name, InitialContribution: payment})
	}
	if len(participants) == 0 {
		return nil, nil, fmt.Errorf("%w: no participants", ErrMalformed)
	}
	participants = append(participants, model.SharedFund())

	rows := make([][]string, len(doc.ExpensesData))
	for d, row := range doc.ExpensesData {
		rows[d] = make([]string, len(row))
		for p, c := range row {
			rows[d][p] = string(c)
		}
	}
	l, shapeErrs, err := Reconcile(rows, doc.TrackDays, len(participants)-1)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return &Expedition{
		Name:         doc.HikeName,
		StartDate:    start,
		EndDate:      end,
		DurationDays: doc.TrackDays,
		Participants: participants,
		Ledger:       l,
	}, shapeErrs, nil
}

// Encode writes exp as an indented JSON document. Text is kept as UTF-8
// rather than escaped.
func Encode(w io.Writer, exp *Expedition) error {
	doc := document{
		HikeName:     exp.Name,
		Participants: make([]participantJSON, len(exp.Participants)),
		StartDate:    exp.StartDate.Format(DateFormat),
		EndDate:      exp.EndDate.Format(DateFormat),
		TrackDays:    exp.DurationDays,
	}
	for i, p := range exp.Participants {
		doc.Participants[i] = participantJSON{Name: p.Name, Payment: json.Number(p.InitialContribution.String())}
	}
	rows := exp.Ledger.Rows()
	doc.ExpensesData = make([][]cellText, len(rows))
	for d, row := range rows {
		doc.ExpensesData[d] = make([]cellText, len(row))
		for p, text := range row {
			doc.ExpensesData[d][p] = cellText(text)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding expedition: %w", err)
	}
	return nil
}
