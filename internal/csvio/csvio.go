// Package csvio imports and exports the friend catalog as CSV.
//
// The layout is one row per friend: Name, Intimacy, Dietary_Restrictions, then one
// column per food holding a 1-5 rating (blank = no rating). Restrictions are
// separated by ';'.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/party-optimizer/internal/types"
)

const (
	ColName        = "Name"
	ColIntimacy    = "Intimacy"
	ColDietary     = "Dietary_Restrictions"
	ColTotalPrefs  = "Total_Preferences"
	ColAvgPref     = "Avg_Preference"
	restrictionSep = ";"
	maxSampleRows  = 5
)

var requiredColumns = []string{ColName, ColIntimacy}

// reserved columns are never treated as foods
var reserved = map[string]bool{
	ColName: true, ColIntimacy: true, ColDietary: true, ColTotalPrefs: true, ColAvgPref: true,
}

// ErrEmptyFile is returned when the input has no header row
var ErrEmptyFile = errors.New("CSV file is empty")

// FormatError reports a structural problem with the whole file
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return "invalid CSV format: " + e.Message
}

// ImportError describes one rejected row. Row is the 1-based line number.
type ImportError struct {
	Row     int
	Name    string
	Message string
}

func (e *ImportError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("Row %d (%s): %s", e.Row, e.Name, e.Message)
	}
	return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
}

// header maps column names to positions
type header struct {
	index map[string]int
	foods []string
	cols  []string
}

func parseHeader(cols []string) (*header, error) {
	h := &header{index: make(map[string]int, len(cols)), cols: cols}
	for i, c := range cols {
		c = strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
		h.index[c] = i
		h.cols[i] = c
		if !reserved[c] && c != "" {
			h.foods = append(h.foods, c)
		}
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := h.index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &FormatError{Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}
	return h, nil
}

func (h *header) get(record []string, col string) string {
	i, ok := h.index[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// parseInt accepts "7" and "7.0", the latter being common in spreadsheet exports
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int(f), nil
}

// parseRow converts one record into a friend. Out-of-range or non-numeric ratings
// are dropped rather than rejecting the row.
func (h *header) parseRow(record []string, line int) (types.Friend, *ImportError) {
	name := h.get(record, ColName)
	if name == "" {
		return types.Friend{}, &ImportError{Row: line, Message: "Missing name"}
	}

	intimacy, err := parseInt(h.get(record, ColIntimacy))
	if err != nil {
		return types.Friend{}, &ImportError{Row: line, Name: name, Message: "Intimacy must be a number"}
	}
	if intimacy < types.MinIntimacy || intimacy > types.MaxIntimacy {
		return types.Friend{}, &ImportError{
			Row: line, Name: name,
			Message: fmt.Sprintf("Intimacy must be %d-%d", types.MinIntimacy, types.MaxIntimacy),
		}
	}

	var restrictions []string
	if raw := h.get(record, ColDietary); raw != "" {
		for _, r := range strings.Split(raw, restrictionSep) {
			if r = strings.TrimSpace(r); r != "" {
				restrictions = append(restrictions, r)
			}
		}
	}

	prefs := make(map[string]int)
	for _, food := range h.foods {
		raw := h.get(record, food)
		if raw == "" {
			continue
		}
		v, err := parseInt(raw)
		if err != nil || v < types.MinPreference || v > types.MaxPreference {
			continue
		}
		prefs[food] = v
	}

	return types.Friend{
		Name:                name,
		Intimacy:            intimacy,
		Preferences:         prefs,
		DietaryRestrictions: restrictions,
	}, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// Record is a parsed friend and the line it came from
type Record struct {
	Line   int
	Friend types.Friend
}

// ReadFriends parses every row. Rejected rows are returned as ImportErrors;
// the error return is reserved for problems with the file as a whole.
func ReadFriends(r io.Reader) ([]Record, []*ImportError, error) {
	cr := newReader(r)
	cols, err := cr.Read()
	if err == io.EOF {
		return nil, nil, ErrEmptyFile
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	h, err := parseHeader(cols)
	if err != nil {
		return nil, nil, err
	}

	var (
		records []Record
		rowErrs []*ImportError
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			line := 0
			if errors.As(err, &pe) {
				line = pe.Line
			}
			rowErrs = append(rowErrs, &ImportError{Row: line, Message: err.Error()})
			continue
		}
		line, _ := cr.FieldPos(0)
		if isBlank(record) {
			continue
		}
		f, rowErr := h.parseRow(record, line)
		if rowErr != nil {
			rowErrs = append(rowErrs, rowErr)
			continue
		}
		records = append(records, Record{Line: line, Friend: f})
	}
	return records, rowErrs, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ValidateFormat checks the header and the first few rows. It returns the number of
// sample rows checked.
func ValidateFormat(r io.Reader) (int, error) {
	cr := newReader(r)
	cols, err := cr.Read()
	if err == io.EOF {
		return 0, ErrEmptyFile
	}
	if err != nil {
		return 0, &FormatError{Message: err.Error()}
	}
	h, err := parseHeader(cols)
	if err != nil {
		return 0, err
	}

	checked := 0
	for checked < maxSampleRows {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return checked, &FormatError{Message: err.Error()}
		}
		if isBlank(record) {
			continue
		}
		if _, err := parseInt(h.get(record, ColIntimacy)); err != nil {
			return checked, &FormatError{Message: "Intimacy column must contain numeric values"}
		}
		checked++
	}
	if checked == 0 {
		return 0, &FormatError{Message: "CSV file contains no data rows"}
	}
	return checked, nil
}

// FoodColumns is the union of rated foods and catalog foods, sorted
func FoodColumns(friends []types.Friend, catalogFoods []string) []string {
	set := make(map[string]bool)
	for _, f := range friends {
		for food := range f.Preferences {
			set[food] = true
		}
	}
	for _, food := range catalogFoods {
		set[food] = true
	}
	cols := make([]string, 0, len(set))
	for food := range set {
		cols = append(cols, food)
	}
	sort.Strings(cols)
	return cols
}
