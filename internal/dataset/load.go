package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing required column")

// LoadOptions controls how the source file is read.
type LoadOptions struct {
	// Delimiter for delimited text. If 0, '\t' for .tsv files, otherwise ','.
	Delimiter rune
	// Sheet selects the worksheet of an .xlsx file; empty means the first sheet.
	Sheet string
}

// Column headers as they appear in the source file.
const (
	ColName       = "Name"
	ColType1      = "Type 1"
	ColType2      = "Type 2"
	ColGeneration = "Generation"
	ColLegendary  = "Legendary"
)

// RequiredColumns lists every header the loader needs.
var RequiredColumns = []string{
	ColName, ColType1, ColType2, ColGeneration, ColLegendary,
	"HP", "Attack", "Defense", "Sp. Atk", "Sp. Def", "Speed", "Total",
}

// Load reads a table from path. Files ending in .xlsx are read as workbooks,
// anything else as delimited text. The returned table has no derived columns.
func Load(path string, opt LoadOptions) (*Table, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return LoadXLSX(path, opt.Sheet)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	t, err := ReadDelimited(f, delim)
	if err != nil {
		return nil, err
	}
	t.Source = filepath.Base(path)
	return t, nil
}

// ReadDelimited parses delimited text with a header row.
func ReadDelimited(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comma = delim
	// a whitespace delimiter would be eaten as leading space, collapsing empty fields
	cr.TrimLeadingSpace = !unicode.IsSpace(delim)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := indexColumns(header)
	if err != nil {
		return nil, err
	}
	t := &Table{}
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		if blankRow(rec) {
			continue
		}
		r, err := idx.parse(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		t.Records = append(t.Records, r)
	}
	return t, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// columnIndex maps required headers to their position in a row.
type columnIndex map[string]int

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
}

func indexColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}
	idx := columnIndex{}
	var missing []string
	for _, c := range RequiredColumns {
		i, ok := pos[normalizeHeader(c)]
		if !ok {
			missing = append(missing, c)
			continue
		}
		idx[c] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

func (idx columnIndex) cell(rec []string, col string) string {
	i := idx[col]
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (idx columnIndex) parse(rec []string) (Record, error) {
	var r Record
	r.Name = idx.cell(rec, ColName)
	r.Type1 = idx.cell(rec, ColType1)
	if r.Type1 == "" {
		return r, fmt.Errorf("column %q: empty value", ColType1)
	}
	r.Type2 = idx.cell(rec, ColType2)
	if strings.EqualFold(r.Type2, "nan") {
		r.Type2 = ""
	}
	gen, err := parseCount(idx.cell(rec, ColGeneration))
	if err != nil {
		return r, fmt.Errorf("column %q: %w", ColGeneration, err)
	}
	r.Generation = gen
	leg, err := parseBool(idx.cell(rec, ColLegendary))
	if err != nil {
		return r, fmt.Errorf("column %q: %w", ColLegendary, err)
	}
	r.Legendary = leg

	targets := map[Stat]*int{
		HP: &r.HP, Attack: &r.Attack, Defense: &r.Defense,
		SpAtk: &r.SpAtk, SpDef: &r.SpDef, Speed: &r.Speed, Total: &r.Total,
	}
	for _, s := range Stats {
		v, err := parseCount(idx.cell(rec, s.String()))
		if err != nil {
			return r, fmt.Errorf("column %q: %w", s.String(), err)
		}
		*targets[s] = v
	}
	return r, nil
}

func parseCount(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Spreadsheet exports sometimes write integers as "45.0".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("not an integer: %q", s)
		}
		n = int(f)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value: %d", n)
	}
	return n, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "y", "t":
		return true, nil
	case "false", "0", "no", "n", "f":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

func blankRow(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
