package school

import (
	"fmt"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

// SubjectKind describes one subject and the Teacher field it contributes.
type SubjectKind struct {
	Name            string
	experienceField string
}

// Subject kinds. Each contributes its experience field to Subjects.Teacher.
var (
	Cpp   = SubjectKind{Name: "Cpp", experienceField: "experienceTeachingC"}
	Java  = SubjectKind{Name: "Java", experienceField: "experienceTeachingJava"}
	React = SubjectKind{Name: "React", experienceField: "experienceTeachingReact"}
)

// ExperienceField returns the Teacher field the subject reads.
func (k SubjectKind) ExperienceField() string { return k.experienceField }

// Subject is a course with an optional assigned teacher.
type Subject struct {
	kind      SubjectKind
	validator Validator
	teacher   types.Record
}

// NewSubject creates a subject whose teachers are checked against the
// Subjects.Teacher schema in v.
func NewSubject(kind SubjectKind, v Validator) *Subject {
	return &Subject{kind: kind, validator: v}
}

// Kind returns the subject kind.
func (s *Subject) Kind() SubjectKind { return s.kind }

// SetTeacher assigns teacher after validating it. On failure the current
// teacher is kept.
func (s *Subject) SetTeacher(teacher types.Record) error {
	if err := s.validator.Validate(TypeSubjectTeacher, teacher); err != nil {
		return fmt.Errorf("set %s teacher: %w", s.kind.Name, err)
	}
	s.teacher = teacher.Clone()
	return nil
}

// Requirements describes what the subject requires.
func (s *Subject) Requirements() string {
	return "Here is the list of requirements for " + s.kind.Name
}

// AvailableTeacher names the teacher when they have positive experience
// in this subject.
func (s *Subject) AvailableTeacher() string {
	if s.teacher != nil {
		if n, ok := number(s.teacher[s.kind.experienceField]); ok && n > 0 {
			return "Available Teacher: " + str(s.teacher, "firstName")
		}
	}
	return "No available teacher"
}
