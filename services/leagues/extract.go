package leagues

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/racingleague/racing-league-app/domain"
)

// ExtractedRow is one line of a result table read from a screenshot.
type ExtractedRow struct {
	Position flexInt `json:"position"`
	Driver   string  `json:"driver"`
	Team     string  `json:"team,omitempty"`
	Time     string  `json:"time,omitempty"`
}

// UnmatchedRow is a row that could not be turned into a result.
type UnmatchedRow struct {
	Row    ExtractedRow `json:"row"`
	Reason string       `json:"reason"`
}

// ResultDraft is a result submission built from extracted rows, ready for
// review before it is submitted.
type ResultDraft struct {
	Results   map[string]domain.ResultInput `json:"results"`
	Unmatched []UnmatchedRow                `json:"unmatched"`
}

// flexInt accepts 3 as well as "3".
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("position must be a number: %s", b)
	}
	s = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(s), "P"), ".")
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("position must be a number: %q", s)
	}
	*f = flexInt(n)
	return nil
}

// ParseExtractedRows reads the JSON array produced by the extraction step.
// Markdown code fences and text around the array are ignored.
func ParseExtractedRows(raw string) ([]ExtractedRow, error) {
	text := strings.TrimSpace(raw)
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no result table found in extracted text: %w", domain.ErrInvalidResults)
	}

	var rows []ExtractedRow
	if err := json.Unmarshal([]byte(text[start:end+1]), &rows); err != nil {
		return nil, fmt.Errorf("extracted results are not valid JSON (%v): %w", err, domain.ErrInvalidResults)
	}
	return rows, nil
}

// MatchRows maps rows to league participants by league user name, display
// name or email, ignoring case.
func MatchRows(l *domain.League, rows []ExtractedRow) *ResultDraft {
	draft := &ResultDraft{
		Results:   map[string]domain.ResultInput{},
		Unmatched: []UnmatchedRow{},
	}

	for _, row := range rows {
		if row.Position < 1 {
			draft.Unmatched = append(draft.Unmatched, UnmatchedRow{Row: row, Reason: "missing position"})
			continue
		}
		email, ok := findParticipant(l, row.Driver)
		if !ok {
			draft.Unmatched = append(draft.Unmatched, UnmatchedRow{Row: row, Reason: "driver is not a participant"})
			continue
		}
		if _, dup := draft.Results[email]; dup {
			draft.Unmatched = append(draft.Unmatched, UnmatchedRow{Row: row, Reason: "driver listed more than once"})
			continue
		}
		draft.Results[email] = domain.ResultInput{
			Position: int(row.Position),
			DNF:      isDNF(row.Time),
		}
	}
	return draft
}

func findParticipant(l *domain.League, driver string) (string, bool) {
	driver = strings.TrimSpace(driver)
	if driver == "" {
		return "", false
	}
	for _, p := range l.Participants {
		if strings.EqualFold(p.LeagueUserName, driver) ||
			strings.EqualFold(p.Email, driver) ||
			strings.EqualFold(l.DisplayName(p.Email), driver) {
			return p.Email, true
		}
	}
	return "", false
}

func isDNF(t string) bool {
	switch strings.ToUpper(strings.TrimSpace(t)) {
	case "DNF", "DNS", "DSQ", "RET":
		return true
	}
	return false
}
