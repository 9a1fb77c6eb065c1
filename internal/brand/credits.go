package brand

import (
	"fmt"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

// Credit brands.
const (
	MajorCredits types.Tag = "MajorCredits"
	MinorCredits types.Tag = "MinorCredits"
)

// Graduation thresholds.
const (
	MajorRequired = 120
	MinorRequired = 30
)

// Credits is a branded credit count.
type Credits = types.Branded[int]

// Major brands n as major credits.
func Major(n int) Credits { return Wrap(MajorCredits, n) }

// Minor brands n as minor credits.
func Minor(n int) Credits { return Wrap(MinorCredits, n) }

// GraduationStatus is the outcome of CheckGraduation.
type GraduationStatus struct {
	Major    int  `json:"major"`
	Minor    int  `json:"minor"`
	MajorMet bool `json:"major_met"`
	MinorMet bool `json:"minor_met"`
}

// Met reports whether both thresholds are reached.
func (s GraduationStatus) Met() bool { return s.MajorMet && s.MinorMet }

func (s GraduationStatus) String() string {
	if s.Met() {
		return fmt.Sprintf("Graduation Requirements Met! Major: %d/%d, Minor: %d/%d",
			s.Major, MajorRequired, s.Minor, MinorRequired)
	}
	return fmt.Sprintf("More credits needed. Major: %d/%d, Minor: %d/%d",
		s.Major, MajorRequired, s.Minor, MinorRequired)
}

// CheckGraduation compares major and minor credit totals with the
// thresholds. Passing the brands in the wrong slots is a mismatch.
func CheckGraduation(major, minor Credits) (GraduationStatus, error) {
	if !Is(major, MajorCredits) {
		return GraduationStatus{}, &MismatchError{Left: MajorCredits, Right: major.Tag}
	}
	if !Is(minor, MinorCredits) {
		return GraduationStatus{}, &MismatchError{Left: MinorCredits, Right: minor.Tag}
	}
	return GraduationStatus{
		Major:    major.Payload,
		Minor:    minor.Payload,
		MajorMet: major.Payload >= MajorRequired,
		MinorMet: minor.Payload >= MinorRequired,
	}, nil
}

// CreditSummary describes a credit value by its brand.
func CreditSummary(c Credits) (string, error) {
	switch c.Tag {
	case MajorCredits:
		return fmt.Sprintf("Major Credits: %d (toward primary degree)", c.Payload), nil
	case MinorCredits:
		return fmt.Sprintf("Minor Credits: %d (toward specialization)", c.Payload), nil
	default:
		return "", fmt.Errorf("%w: unknown credit brand %q (valid: %q, %q)",
			types.ErrBrandMismatch, c.Tag, MajorCredits, MinorCredits)
	}
}
