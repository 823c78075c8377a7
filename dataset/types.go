package dataset

import (
	"errors"
	"fmt"
)

// ErrInvalidInput reports a categorical value that is not part of the
// closed enumeration for its column. Encoding never defaults silently;
// unknown values abort ingestion with this error wrapped.
var ErrInvalidInput = errors.New("invalid input value")

// AdmissionType is the closed set of admission categories.
type AdmissionType int

const (
	AdmissionEmergency AdmissionType = iota
	AdmissionUrgent
	AdmissionTrauma
)

func ParseAdmissionType(s string) (AdmissionType, error) {
	switch s {
	case "Emergency":
		return AdmissionEmergency, nil
	case "Urgent":
		return AdmissionUrgent, nil
	case "Trauma":
		return AdmissionTrauma, nil
	}
	return 0, fmt.Errorf("admission type %q: %w", s, ErrInvalidInput)
}

func (a AdmissionType) String() string {
	switch a {
	case AdmissionEmergency:
		return "Emergency"
	case AdmissionUrgent:
		return "Urgent"
	case AdmissionTrauma:
		return "Trauma"
	}
	return fmt.Sprintf("AdmissionType(%d)", int(a))
}

// Severity is ordinal: Minor < Moderate < Extreme.
type Severity int

const (
	SeverityMinor Severity = iota + 1
	SeverityModerate
	SeverityExtreme
)

func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "Minor":
		return SeverityMinor, nil
	case "Moderate":
		return SeverityModerate, nil
	case "Extreme":
		return SeverityExtreme, nil
	}
	return 0, fmt.Errorf("illness severity %q: %w", s, ErrInvalidInput)
}

func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "Minor"
	case SeverityModerate:
		return "Moderate"
	case SeverityExtreme:
		return "Extreme"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// StayBucket is one of the 11 length-of-stay ranges in the source data.
type StayBucket int

const (
	Stay0to10 StayBucket = iota
	Stay11to20
	Stay21to30
	Stay31to40
	Stay41to50
	Stay51to60
	Stay61to70
	Stay71to80
	Stay81to90
	Stay91to100
	StayOver100
)

var stayBucketNames = [...]string{
	"0-10", "11-20", "21-30", "31-40", "41-50", "51-60",
	"61-70", "71-80", "81-90", "91-100", "More than 100 Days",
}

func ParseStayBucket(s string) (StayBucket, error) {
	for i, name := range stayBucketNames {
		if s == name {
			return StayBucket(i), nil
		}
	}
	return 0, fmt.Errorf("stay bucket %q: %w", s, ErrInvalidInput)
}

func (b StayBucket) String() string {
	if b >= 0 && int(b) < len(stayBucketNames) {
		return stayBucketNames[b]
	}
	return fmt.Sprintf("StayBucket(%d)", int(b))
}

// StayBuckets returns all recognized buckets in ascending order.
func StayBuckets() []StayBucket {
	out := make([]StayBucket, len(stayBucketNames))
	for i := range out {
		out[i] = StayBucket(i)
	}
	return out
}

// Record is one hospital admission, validated at ingestion.
// BedGrade is nil when the source cell was empty; the missing value is
// handled later by training-mean imputation, never by failure here.
type Record struct {
	Admission      AdmissionType
	Severity       Severity
	BedGrade       *float64 // 1-4 when present
	Visitors       int
	AvailableRooms int
	Stay           StayBucket
}
