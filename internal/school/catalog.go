// Package school is the worked catalog built on the shapes core: student
// and educator record types, employees dispatched by discriminator, and
// subjects whose Teacher type is merged from one contribution per subject.
package school

import (
	"fmt"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

// Registered type names.
const (
	TypeStudent        = "Student"
	TypeTeacher        = "Teacher"
	TypeDirectors      = "Directors"
	TypeRowElement     = "RowElement"
	TypeSubjectTeacher = "Subjects.Teacher"
)

// Registrar is the part of *schema.Registry the catalog needs.
type Registrar interface {
	RegisterContribution(typeName string, c types.Contribution) error
}

// Validator is the part of *schema.Registry subjects need.
type Validator interface {
	Validate(typeName string, record types.Record) error
}

func req(name string) types.FieldSpec { return types.FieldSpec{Name: name, Required: true} }

func opt(name string) types.FieldSpec { return types.FieldSpec{Name: name} }

func readonly(f types.FieldSpec) types.FieldSpec {
	f.Readonly = true
	return f
}

// site is one independent registration of the catalog.
type site struct {
	name     string
	typeName string
	contrib  types.Contribution
}

// sites lists every catalog registration. The Subjects.Teacher entries
// come from four separate sites that do not reference each other.
var sites = []site{
	{"students", TypeStudent, types.Contribution{
		Fields: []types.FieldSpec{req("firstName"), req("lastName"), req("age"), req("location")},
	}},
	{"educators", TypeTeacher, types.Contribution{
		Fields: []types.FieldSpec{
			readonly(req("firstName")),
			readonly(req("lastName")),
			req("fullTimeEmployee"),
			opt("yearsOfExperience"),
			req("location"),
		},
		Open: true,
	}},
	{"educators", TypeDirectors, types.Contribution{
		Fields:  []types.FieldSpec{req("numberOfReports")},
		Extends: []string{TypeTeacher},
	}},
	{"crud", TypeRowElement, types.Contribution{
		Fields: []types.FieldSpec{req("firstName"), req("lastName"), opt("age")},
	}},
	{"subjects/teacher", TypeSubjectTeacher, types.Contribution{
		Fields: []types.FieldSpec{req("firstName"), req("lastName")},
	}},
	{"subjects/cpp", TypeSubjectTeacher, types.Contribution{
		Fields: []types.FieldSpec{opt(Cpp.experienceField)},
	}},
	{"subjects/java", TypeSubjectTeacher, types.Contribution{
		Fields: []types.FieldSpec{opt(Java.experienceField)},
	}},
	{"subjects/react", TypeSubjectTeacher, types.Contribution{
		Fields: []types.FieldSpec{opt(React.experienceField)},
	}},
}

// Register adds every catalog type to reg.
func Register(reg Registrar) error {
	for _, s := range sites {
		c := s.contrib
		c.Site = s.name
		if err := reg.RegisterContribution(s.typeName, c); err != nil {
			return fmt.Errorf("register %s from %s: %w", s.typeName, s.name, err)
		}
	}
	return nil
}
