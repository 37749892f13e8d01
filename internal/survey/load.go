package survey

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptyFile is returned when the file has no header row.
	ErrEmptyFile = errors.New("empty survey file")
)

// Options controls how a survey file is read.
type Options struct {
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, ',' is used (or '\t' for .tsv files).
	Delimiter rune
	// Sheet selects the XLSX worksheet; empty means the first sheet.
	Sheet string
}

// Load reads a CSV/TSV or XLSX survey file chosen by extension.
func Load(path string, opt Options) (*Dataset, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") {
		return LoadXLSX(path, opt)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open survey: %w", err)
	}
	defer f.Close()
	if opt.Delimiter == 0 && strings.HasSuffix(lower, ".tsv") {
		opt.Delimiter = '\t'
	}
	return LoadCSV(f, filepath.Base(path), opt)
}

// LoadCSV reads survey records from CSV text with a header row.
func LoadCSV(src io.Reader, name string, opt Options) (*Dataset, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if opt.Delimiter != 0 {
		r.Comma = opt.Delimiter
	}

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", name, ErrEmptyFile)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	b, err := newBuilder(name, header)
	if err != nil {
		return nil, err
	}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", b.ds.Rows+1, err)
		}
		if opt.MaxRows > 0 && b.ds.Rows >= opt.MaxRows {
			b.ds.Warnings = append(b.ds.Warnings, fmt.Sprintf("stopped after %d rows due to MaxRows", opt.MaxRows))
			break
		}
		b.add(rec)
	}
	return b.done(), nil
}

// builder turns header-aligned string rows into Records.
type builder struct {
	ds     *Dataset
	header []string
	index  map[string]int
	short  int
}

func newBuilder(name string, header []string) (*builder, error) {
	b := &builder{
		ds:     &Dataset{Name: name},
		header: make([]string, len(header)),
		index:  make(map[string]int, len(header)),
	}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		b.header[i] = h
		b.index[strings.ToLower(h)] = i
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := b.index[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: %w: %s", name, ErrMissingColumn, strings.Join(missing, ", "))
	}
	return b, nil
}

func (b *builder) cell(row []string, col string) string {
	i := b.index[strings.ToLower(col)]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (b *builder) add(row []string) {
	b.ds.Rows++
	if len(row) < len(b.header) {
		b.short++
	}
	rec := Record{
		Age:                ParseNumber(b.cell(row, ColAge)),
		BloodPressure:      ParseNumber(b.cell(row, ColBloodPressure)),
		Cholesterol:        ParseNumber(b.cell(row, ColCholesterol)),
		BMI:                ParseNumber(b.cell(row, ColBMI)),
		Gender:             b.cell(row, ColGender),
		Smoking:            b.cell(row, ColSmoking),
		ExerciseHabits:     b.cell(row, ColExerciseHabits),
		FamilyHeartDisease: b.cell(row, ColFamilyHeartDisease),
		Status:             b.cell(row, ColStatus),
	}
	for i, h := range b.header {
		if isRequired(h) || h == "" {
			continue
		}
		if rec.extra == nil {
			rec.extra = make(map[string]string)
		}
		if i < len(row) {
			rec.extra[h] = strings.TrimSpace(row[i])
		} else {
			rec.extra[h] = ""
		}
	}
	b.ds.Records = append(b.ds.Records, rec)
}

func (b *builder) done() *Dataset {
	if b.short > 0 {
		b.ds.Warnings = append(b.ds.Warnings, fmt.Sprintf("%d rows had fewer fields than the header", b.short))
	}
	return b.ds
}

func isRequired(h string) bool {
	for _, col := range RequiredColumns {
		if strings.EqualFold(col, h) {
			return true
		}
	}
	return false
}

// ParseNumber coerces survey text to a number. Empty or malformed input
// yields NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
