package csvreader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"accessboard/backend/libs/presence"
)

// ErrNoRecognizedColumns means the header row matched none of the known
// export columns, so the file cannot be an access-control export.
var ErrNoRecognizedColumns = errors.New("csv: no recognized columns in header")

// Export column headers as the badge system writes them. Matching is
// case-insensitive after trimming, so minor firmware variations still map.
var headerFields = map[string]func(*presence.RawRecord, string){
	"numéro de badge":  func(r *presence.RawRecord, v string) { r.BadgeNumber = v },
	"numero de badge":  func(r *presence.RawRecord, v string) { r.BadgeNumber = v },
	"date évènements":  func(r *presence.RawRecord, v string) { r.EventDate = v },
	"date evenements":  func(r *presence.RawRecord, v string) { r.EventDate = v },
	"heure évènements": func(r *presence.RawRecord, v string) { r.EventTime = v },
	"heure evenements": func(r *presence.RawRecord, v string) { r.EventTime = v },
	"centrale":         func(r *presence.RawRecord, v string) { r.Central = v },
	"lecteur":          func(r *presence.RawRecord, v string) { r.Reader = v },
	"nature evenement": func(r *presence.RawRecord, v string) { r.EventType = v },
	"nature évènement": func(r *presence.RawRecord, v string) { r.EventType = v },
	"nom":              func(r *presence.RawRecord, v string) { r.LastName = v },
	"prénom":           func(r *presence.RawRecord, v string) { r.FirstName = v },
	"prenom":           func(r *presence.RawRecord, v string) { r.FirstName = v },
	"statut":           func(r *presence.RawRecord, v string) { r.Status = v },
	"groupe":           func(r *presence.RawRecord, v string) { r.Group = v },
}

// Reader parses semicolon-delimited access-control exports into raw
// records. Column order does not matter; unknown columns are ignored.
type Reader struct {
	comma rune
}

// NewReader returns a reader for the standard export format.
func NewReader() *Reader {
	return &Reader{comma: ';'}
}

// Parse reads the whole export. Rows shorter than the header are padded as
// empty; completely blank rows are skipped. Field content is not validated
// here, that is the normalizer's job.
func (r *Reader) Parse(src io.Reader) ([]presence.RawRecord, error) {
	reader := csv.NewReader(src)
	reader.Comma = r.comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoRecognizedColumns
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	setters := make([]func(*presence.RawRecord, string), len(header))
	recognized := 0
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		if setter, ok := headerFields[strings.ToLower(strings.TrimSpace(name))]; ok {
			setters[i] = setter
			recognized++
		}
	}
	if recognized == 0 {
		return nil, ErrNoRecognizedColumns
	}

	var records []presence.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row: %w", err)
		}
		if blankRow(row) {
			continue
		}

		var rec presence.RawRecord
		for i, value := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&rec, strings.TrimSpace(value))
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func blankRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
