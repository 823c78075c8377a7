package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Required columns. Any extra columns in the file are ignored.
var requiredCols = []string{
	"Type_of_Admission",
	"Illness_Severity",
	"Bed_Grade",
	"Patient_Visitors",
	"Available_Extra_Rooms_in_Hospital",
	"Stay_Days",
}

// CSVReader streams an admissions CSV file and emits one validated
// Record per data row. Unknown categorical values abort the read with
// ErrInvalidInput wrapped; only an empty Bed_Grade cell is tolerated.
type CSVReader struct {
	file   *os.File
	csv    *csv.Reader
	rowNum int64
	colIdx map[string]int
}

func NewCSVReader(filepath string) (*CSVReader, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath, err)
	}

	bufReader := bufio.NewReaderSize(file, 256*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.FieldsPerRecord = -1

	r := &CSVReader{
		file:   file,
		csv:    reader,
		colIdx: make(map[string]int),
	}

	if err := r.readHeader(); err != nil {
		file.Close()
		return nil, err
	}

	return r, nil
}

func (r *CSVReader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}
	r.rowNum++
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	for i, h := range header {
		r.colIdx[strings.TrimSpace(h)] = i
	}

	for _, col := range requiredCols {
		if _, ok := r.colIdx[col]; !ok {
			return fmt.Errorf("missing required column %q", col)
		}
	}
	return nil
}

// Next returns the Record for the next CSV data row.
// Returns io.EOF when done.
func (r *CSVReader) Next() (Record, error) {
	for {
		row, err := r.csv.Read()
		if err != nil {
			return Record{}, err
		}
		r.rowNum++

		// Skip empty rows
		if len(row) == 0 || (len(row) == 1 && row[0] == "") {
			continue
		}

		rec, err := r.parseRow(row)
		if err != nil {
			return Record{}, fmt.Errorf("row %d: %w", r.rowNum, err)
		}
		return rec, nil
	}
}

func (r *CSVReader) parseRow(row []string) (Record, error) {
	var rec Record
	var err error

	if rec.Admission, err = ParseAdmissionType(r.cell(row, "Type_of_Admission")); err != nil {
		return rec, err
	}
	if rec.Severity, err = ParseSeverity(r.cell(row, "Illness_Severity")); err != nil {
		return rec, err
	}
	if rec.Stay, err = ParseStayBucket(r.cell(row, "Stay_Days")); err != nil {
		return rec, err
	}

	// Bed_Grade is the one column where an empty cell is legal.
	if s := r.cell(row, "Bed_Grade"); s != "" {
		g, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return rec, fmt.Errorf("bed grade %q: %w", s, ErrInvalidInput)
		}
		rec.BedGrade = &g
	}

	if rec.Visitors, err = intCell(r.cell(row, "Patient_Visitors"), "patient visitors"); err != nil {
		return rec, err
	}
	if rec.AvailableRooms, err = intCell(r.cell(row, "Available_Extra_Rooms_in_Hospital"), "available rooms"); err != nil {
		return rec, err
	}

	return rec, nil
}

func (r *CSVReader) cell(row []string, col string) string {
	if i, ok := r.colIdx[col]; ok && i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func intCell(s, label string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", label, s, ErrInvalidInput)
	}
	return n, nil
}

// RowNum returns the current CSV row number (1-based, header included).
func (r *CSVReader) RowNum() int64 {
	return r.rowNum
}

func (r *CSVReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ReadAll drains a reader into a slice. Convenience for the batch
// pipeline, which needs the whole dataset in memory for the split.
func ReadAll(path string) ([]Record, error) {
	r, err := NewCSVReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var recs []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
