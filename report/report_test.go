package report

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"losreport/dataset"
	"losreport/feature"
	"losreport/regress"
)

func f64(v float64) *float64 { return &v }

func sampleRecords() []dataset.Record {
	return []dataset.Record{
		{Admission: dataset.AdmissionEmergency, Severity: dataset.SeverityMinor, BedGrade: f64(1), Stay: dataset.Stay0to10},
		{Admission: dataset.AdmissionEmergency, Severity: dataset.SeverityExtreme, BedGrade: f64(2), Stay: dataset.Stay11to20},
		{Admission: dataset.AdmissionUrgent, Severity: dataset.SeverityModerate, BedGrade: nil, Stay: dataset.Stay11to20},
		{Admission: dataset.AdmissionTrauma, Severity: dataset.SeverityMinor, BedGrade: f64(3), Stay: dataset.StayOver100},
	}
}

func TestOverviewCountsAndPercentages(t *testing.T) {
	var buf strings.Builder
	Overview(&buf, sampleRecords())
	out := buf.String()

	for _, want := range []string{
		"Admissions: 4 rows",
		"11-20",
		"More than 100 Days",
		"Emergency",
		"Bed_Grade missing: 1 (25.0%)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("overview missing %q:\n%s", want, out)
		}
	}

	// Two of four rows in the 11-20 bucket → 50%.
	if !strings.Contains(out, "50.0%") {
		t.Errorf("overview missing 50.0%% share for 11-20 bucket:\n%s", out)
	}
}

func TestCrosstabCellCounts(t *testing.T) {
	var buf strings.Builder
	Crosstab(&buf, sampleRecords())
	out := buf.String()

	if !strings.Contains(out, "Illness_Severity x Type_of_Admission") {
		t.Fatalf("missing crosstab header:\n%s", out)
	}
	// Minor row: 1 Emergency, 0 Urgent, 1 Trauma.
	var minorLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Minor") {
			minorLine = line
		}
	}
	if fields := strings.Fields(minorLine); len(fields) != 4 ||
		fields[1] != "1" || fields[2] != "0" || fields[3] != "1" {
		t.Errorf("Minor crosstab row = %q, want counts 1 0 1", minorLine)
	}
}

func TestCorrelationsPerfectPredictor(t *testing.T) {
	// SeverityCode tracks the target exactly → correlation +1.
	rows := []feature.Row{
		{SeverityCode: 1, LogStayMidpoint: 1},
		{SeverityCode: 2, LogStayMidpoint: 2},
		{SeverityCode: 3, LogStayMidpoint: 3},
	}
	var buf strings.Builder
	Correlations(&buf, rows)
	out := buf.String()

	if !strings.Contains(out, "illness_severity_code    +1.0000") {
		t.Errorf("expected +1.0000 correlation for severity:\n%s", out)
	}
}

func TestCoefficientTableRendersEveryTerm(t *testing.T) {
	m := &regress.Model{
		Terms: []regress.Term{
			{Name: "const", Coef: 1.5, StdErr: 0.1},
			{Name: "x", Coef: -0.25, StdErr: 0.05},
		},
		N: 10, P: 1, DF: 8,
	}
	var buf strings.Builder
	CoefficientTable(&buf, m)
	out := buf.String()

	for _, want := range []string{"const", "x", "1.5000", "-0.2500", "std err"} {
		if !strings.Contains(out, want) {
			t.Errorf("coefficient table missing %q:\n%s", want, out)
		}
	}
}

func TestMetricsTableFlagsApproximation(t *testing.T) {
	var buf strings.Builder
	MetricsTable(&buf, regress.Metrics{R2: 0.5, AdjR2: 0.45, MAE: 0.2, MSE: 0.08, RMSE: 0.283, N: 20})
	out := buf.String()

	if !strings.Contains(out, "approximation") {
		t.Errorf("exponentiated metrics not labeled as approximation:\n%s", out)
	}
	if !strings.Contains(out, "exp(MAE)") {
		t.Errorf("missing exponentiated MAE row:\n%s", out)
	}
}

func TestSubsampleDeterministicAndBounded(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}

	a := Subsample(values, 10, 11)
	b := Subsample(values, 10, 11)
	if len(a) != 10 {
		t.Fatalf("subsample length = %d, want 10", len(a))
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different sub-samples")
	}

	// No replacement: all drawn values distinct.
	seen := make(map[float64]bool)
	for _, v := range a {
		if seen[v] {
			t.Fatalf("value %v drawn twice", v)
		}
		seen[v] = true
	}

	small := []float64{1, 2, 3}
	if got := Subsample(small, 10, 11); !reflect.DeepEqual(got, small) {
		t.Errorf("Subsample of small input = %v, want input unchanged", got)
	}
}

func TestHistogramBinCountsSumToN(t *testing.T) {
	values := []float64{-1, -0.5, 0, 0.1, 0.2, 0.9, 1}
	var buf strings.Builder
	Histogram(&buf, "residuals", values, 4)
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "residuals" {
		t.Fatalf("missing title line:\n%s", out)
	}
	if got := len(lines) - 1; got != 4 {
		t.Fatalf("got %d bins, want 4:\n%s", got, out)
	}

	total := 0
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		n, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			t.Fatalf("parse count from %q: %v", line, err)
		}
		total += n
	}
	if total != len(values) {
		t.Errorf("bin counts sum to %d, want %d", total, len(values))
	}
}

func TestHistogramDegenerateInput(t *testing.T) {
	var buf strings.Builder
	Histogram(&buf, "empty", nil, 5)
	if !strings.Contains(buf.String(), "(no data)") {
		t.Errorf("empty histogram output = %q", buf.String())
	}

	buf.Reset()
	Histogram(&buf, "constant", []float64{2, 2, 2}, 5)
	if !strings.Contains(buf.String(), "3") {
		t.Errorf("constant-value histogram should report the full count:\n%s", buf.String())
	}
}
