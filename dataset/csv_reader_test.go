package dataset

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const csvHeader = "Type_of_Admission,Illness_Severity,Bed_Grade,Patient_Visitors,Available_Extra_Rooms_in_Hospital,Stay_Days\n"

// writeCSV creates an admissions CSV test file from data rows.
func writeCSV(t *testing.T, rows ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "admissions.csv")
	content := csvHeader + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write CSV: %v", err)
	}
	return path
}

func TestCSVReaderParsesValidRows(t *testing.T) {
	path := writeCSV(t,
		"Emergency,Extreme,2,4,3,0-10",
		"Trauma,Minor,,2,5,More than 100 Days",
		"Urgent,Moderate,4.0,0,1,41-50",
	)

	recs, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}

	first := recs[0]
	if first.Admission != AdmissionEmergency {
		t.Errorf("Admission = %v, want Emergency", first.Admission)
	}
	if first.Severity != SeverityExtreme {
		t.Errorf("Severity = %v, want Extreme", first.Severity)
	}
	if first.BedGrade == nil || *first.BedGrade != 2 {
		t.Errorf("BedGrade = %v, want 2", first.BedGrade)
	}
	if first.Visitors != 4 || first.AvailableRooms != 3 {
		t.Errorf("Visitors/Rooms = %d/%d, want 4/3", first.Visitors, first.AvailableRooms)
	}
	if first.Stay != Stay0to10 {
		t.Errorf("Stay = %v, want 0-10", first.Stay)
	}

	// Empty Bed_Grade cell is the one tolerated missing value.
	if recs[1].BedGrade != nil {
		t.Errorf("row 2 BedGrade = %v, want nil", *recs[1].BedGrade)
	}
	if recs[1].Stay != StayOver100 {
		t.Errorf("row 2 Stay = %v, want More than 100 Days", recs[1].Stay)
	}
}

func TestCSVReaderSkipsBOMAndEmptyRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.csv")
	content := "\xEF\xBB\xBF" + csvHeader + "Emergency,Minor,1,0,2,11-20\n\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write CSV: %v", err)
	}

	recs, err := ReadAll(path)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
}

func TestCSVReaderRejectsUnknownCategoricals(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"admission", "Elective,Minor,1,0,2,0-10"},
		{"severity", "Emergency,Critical,1,0,2,0-10"},
		{"stay bucket", "Emergency,Minor,1,0,2,0-200"},
		{"bed grade", "Emergency,Minor,high,0,2,0-10"},
		{"visitors", "Emergency,Minor,1,many,2,0-10"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeCSV(t, tc.row)
			_, err := ReadAll(path)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("ReadAll error = %v, want ErrInvalidInput", err)
			}
			// Row numbers make the error actionable.
			if !strings.Contains(err.Error(), "row 2") {
				t.Errorf("error %q does not name the failing row", err)
			}
		})
	}
}

func TestCSVReaderRequiresAllColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.csv")
	content := "Type_of_Admission,Illness_Severity\nEmergency,Minor\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write CSV: %v", err)
	}

	if _, err := NewCSVReader(path); err == nil {
		t.Fatal("NewCSVReader accepted a file missing required columns")
	}
}

func TestCSVReaderStreamsUntilEOF(t *testing.T) {
	path := writeCSV(t,
		"Emergency,Minor,1,0,2,0-10",
		"Urgent,Moderate,2,1,3,11-20",
	)

	r, err := NewCSVReader(path)
	if err != nil {
		t.Fatalf("NewCSVReader: %v", err)
	}
	defer r.Close()

	var count int
	for {
		_, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		count++
	}
	if count != 2 {
		t.Errorf("streamed %d records, want 2", count)
	}
}
