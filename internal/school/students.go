package school

import "fmt"

// StudentClassInterface is the contract StudentClass satisfies.
type StudentClassInterface interface {
	WorkOnHomework() string
	DisplayName() string
}

// StudentClass is a student known by name.
type StudentClass struct {
	firstName string
	lastName  string
}

// NewStudentClass creates a student.
func NewStudentClass(firstName, lastName string) *StudentClass {
	return &StudentClass{firstName: firstName, lastName: lastName}
}

func (s *StudentClass) WorkOnHomework() string { return "Currently working" }

func (s *StudentClass) DisplayName() string { return s.firstName }

// FullName returns "first last".
func (s *StudentClass) FullName() string {
	return s.firstName + " " + s.lastName
}

// FormattedName returns the name in PrintTeacher form.
func (s *StudentClass) FormattedName() string {
	return PrintTeacher(s.firstName, s.lastName)
}

// HomeworkStatus reports each student's homework line.
func HomeworkStatus(students []StudentClassInterface) []string {
	out := make([]string, 0, len(students))
	for _, s := range students {
		out = append(out, fmt.Sprintf("%s: %s", s.DisplayName(), s.WorkOnHomework()))
	}
	return out
}

// ClassRoster returns the formatted names of students.
func ClassRoster(students []*StudentClass) []string {
	out := make([]string, 0, len(students))
	for _, s := range students {
		out = append(out, s.FormattedName())
	}
	return out
}
