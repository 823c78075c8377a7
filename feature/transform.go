// Package feature turns validated admission records into the numeric
// rows the regression consumes. Every rule is deterministic; the only
// fitted quantity is the bed-grade imputation mean, computed once from
// the training subset and applied verbatim to both subsets.
package feature

import (
	"errors"
	"fmt"
	"math"

	"losreport/dataset"
)

// ErrMissingValue reports that an imputation statistic could not be
// fitted because every source value was missing.
var ErrMissingValue = errors.New("missing value")

// stayMidpoints maps each length-of-stay bucket to its midpoint in days.
// The open-ended top bucket is pinned at 105.
var stayMidpoints = map[dataset.StayBucket]float64{
	dataset.Stay0to10:   5,
	dataset.Stay11to20:  15,
	dataset.Stay21to30:  25,
	dataset.Stay31to40:  35,
	dataset.Stay41to50:  45,
	dataset.Stay51to60:  55,
	dataset.Stay61to70:  65,
	dataset.Stay71to80:  75,
	dataset.Stay81to90:  85,
	dataset.Stay91to100: 95,
	dataset.StayOver100: 105,
}

// StayMidpoint returns the midpoint encoding for a bucket.
func StayMidpoint(b dataset.StayBucket) (float64, error) {
	m, ok := stayMidpoints[b]
	if !ok {
		return 0, fmt.Errorf("stay bucket %v: %w", b, dataset.ErrInvalidInput)
	}
	return m, nil
}

// FittedParams holds transformation parameters derived from the
// training subset. Testing must be transformed with the exact same
// values; recomputing them on the test subset would leak.
type FittedParams struct {
	BedGradeMean float64
}

// FitParams computes the imputation constants from training records:
// the mean of the observed (non-missing) bed grades.
func FitParams(train []dataset.Record) (FittedParams, error) {
	var sum float64
	var n int
	for _, rec := range train {
		if rec.BedGrade != nil {
			sum += *rec.BedGrade
			n++
		}
	}
	if n == 0 {
		return FittedParams{}, fmt.Errorf("bed grade: no observed values to fit imputation mean: %w", ErrMissingValue)
	}
	return FittedParams{BedGradeMean: sum / float64(n)}, nil
}

// Row is one fully-encoded observation. Field order mirrors the model
// formula: the six predictors, then the target and its raw form.
type Row struct {
	SeverityCode    float64 `parquet:"illness_severity_code"`
	BedGrade        float64 `parquet:"bed_grade"`
	Urgent          float64 `parquet:"urgent"`
	Emergency       float64 `parquet:"emergency"`
	Trauma          float64 `parquet:"trauma"`
	Visitors        float64 `parquet:"patient_visitors"`
	AvailableRooms  float64 `parquet:"available_rooms"`
	StayMidpoint    float64 `parquet:"stay_midpoint"`
	LogStayMidpoint float64 `parquet:"log_stay_midpoint"`
}

// PredictorNames lists the model's predictors in design-matrix column
// order. Predictors(), the design matrix, and the coefficient table all
// follow this order.
func PredictorNames() []string {
	return []string{
		"illness_severity_code",
		"bed_grade",
		"urgent",
		"emergency",
		"patient_visitors",
		"available_rooms",
	}
}

// Predictors returns the row's predictor values in PredictorNames order.
// Trauma is the omitted one-hot level (baseline).
func (r Row) Predictors() []float64 {
	return []float64{
		r.SeverityCode,
		r.BedGrade,
		r.Urgent,
		r.Emergency,
		r.Visitors,
		r.AvailableRooms,
	}
}

// Transform encodes one record. Pure function of the record and params.
func Transform(rec dataset.Record, params FittedParams) (Row, error) {
	mid, err := StayMidpoint(rec.Stay)
	if err != nil {
		return Row{}, err
	}
	// Unreachable given the table's range, but ln must stay guarded.
	if mid <= 0 {
		return Row{}, fmt.Errorf("stay midpoint %v not positive: %w", mid, dataset.ErrInvalidInput)
	}

	row := Row{
		SeverityCode:    float64(rec.Severity),
		BedGrade:        params.BedGradeMean,
		Visitors:        float64(rec.Visitors),
		AvailableRooms:  float64(rec.AvailableRooms),
		StayMidpoint:    mid,
		LogStayMidpoint: math.Log(mid),
	}
	if rec.BedGrade != nil {
		row.BedGrade = *rec.BedGrade
	}

	switch rec.Admission {
	case dataset.AdmissionEmergency:
		row.Emergency = 1
	case dataset.AdmissionUrgent:
		row.Urgent = 1
	case dataset.AdmissionTrauma:
		row.Trauma = 1
	}
	// Any other admission value leaves all three indicators at zero.

	return row, nil
}

// TransformAll encodes a whole subset with shared params.
func TransformAll(recs []dataset.Record, params FittedParams) ([]Row, error) {
	rows := make([]Row, 0, len(recs))
	for i, rec := range recs {
		row, err := Transform(rec, params)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
