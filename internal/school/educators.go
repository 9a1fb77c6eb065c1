package school

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mesh-intelligence/shapes/internal/variant"
	"github.com/mesh-intelligence/shapes/pkg/types"
)

// PrintTeacherFunc formats a teacher's name.
type PrintTeacherFunc func(firstName, lastName string) string

// PrintTeacher renders "J. Doe".
func PrintTeacher(firstName, lastName string) string {
	return initial(firstName) + ". " + lastName
}

// PrintTeacherFormal renders "J. DOE".
func PrintTeacherFormal(firstName, lastName string) string {
	return initial(firstName) + ". " + strings.ToUpper(lastName)
}

// PrintTeacherCasual renders the first initial and the last name as given.
func PrintTeacherCasual(firstName, lastName string) string {
	return initial(firstName) + ". " + lastName
}

func initial(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return ""
	}
	return strings.ToUpper(string(r))
}

// Educator tags.
const (
	TagTeacher  = "Teacher"
	TagDirector = "Director"
)

// IsDirector reports whether an educator record carries numberOfReports.
var IsDirector = variant.HasField("numberOfReports")

// Educators tells directors from teachers by the presence of
// numberOfReports. The set is exhaustive and mutually exclusive.
var Educators = types.VariantSet[types.Record, string]{
	Name: "Educator",
	Variants: []types.Variant[types.Record, string]{
		{Tag: TagTeacher, Predicate: variant.Not(IsDirector), Handler: describeTeacher},
		{Tag: TagDirector, Predicate: IsDirector, Handler: describeDirector},
	},
}

func describeTeacher(r types.Record) (string, error) {
	return fmt.Sprintf("%s is a Teacher", str(r, "firstName")), nil
}

func describeDirector(r types.Record) (string, error) {
	return fmt.Sprintf("%s is a Director managing %v faculty members",
		str(r, "firstName"), r["numberOfReports"]), nil
}

// Employment tags.
const (
	TagFullTime = "full-time"
	TagPartTime = "part-time"
)

// Employment tells full-time from part-time educators. A record not
// flagged full-time falls through to part-time.
var Employment = types.VariantSet[types.Record, string]{
	Name: "Employment",
	Variants: []types.Variant[types.Record, string]{
		{Tag: TagFullTime, Predicate: variant.FieldEquals("fullTimeEmployee", true)},
		{Tag: TagPartTime, Predicate: variant.Always[types.Record]},
	},
}

func employment(r types.Record) string {
	tag, err := variant.Classify(r, Employment)
	if err != nil {
		return TagPartTime
	}
	return tag
}

// Describe classifies an educator record and describes it.
func Describe(r types.Record) (string, error) {
	return variant.Dispatch(r, Educators)
}

// IntroduceEducator introduces any Teacher record, directors included.
func IntroduceEducator(r types.Record) string {
	experience := ""
	if years, ok := number(r["yearsOfExperience"]); ok && years != 0 {
		experience = fmt.Sprintf(" with %v years of experience", r["yearsOfExperience"])
	}
	return fmt.Sprintf("Salaam! I'm %s %s, a %s educator at our institution in %s%s.",
		str(r, "firstName"), str(r, "lastName"), employment(r), str(r, "location"), experience)
}

// IntroduceDirector extends IntroduceEducator with the report count.
func IntroduceDirector(r types.Record) string {
	return fmt.Sprintf("%s I oversee %v faculty members.", IntroduceEducator(r), r["numberOfReports"])
}

// EmailSignature builds a multi-line signature for an educator.
func EmailSignature(r types.Record, institution string) string {
	var b strings.Builder
	b.WriteString(PrintTeacher(str(r, "firstName"), str(r, "lastName")))
	if dept := str(r, "department"); dept != "" {
		b.WriteString("\n" + dept)
	}
	status := "Part-time Faculty"
	if employment(r) == TagFullTime {
		status = "Full-time Faculty"
	}
	fmt.Fprintf(&b, "\n%s\n%s\n%s", status, institution, str(r, "location"))
	return b.String()
}

func str(r types.Record, name string) string {
	s, _ := r[name].(string)
	return s
}

// number converts the numeric types a record may hold, including the
// float64 that JSON decoding produces.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
