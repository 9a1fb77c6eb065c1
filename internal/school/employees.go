package school

import (
	"github.com/mesh-intelligence/shapes/internal/variant"
	"github.com/mesh-intelligence/shapes/pkg/types"
)

// Employee is either a *Director or a *Teacher.
type Employee interface {
	WorkFromHome() string
	GetCoffeeBreak() string
}

// Director is the managing employee.
type Director struct{}

func (Director) WorkFromHome() string      { return "Working from home" }
func (Director) GetCoffeeBreak() string    { return "Getting a coffee break" }
func (Director) WorkDirectorTasks() string { return "Getting to director tasks" }

// Teacher is the teaching employee.
type Teacher struct{}

func (Teacher) WorkFromHome() string     { return "Cannot work from home" }
func (Teacher) GetCoffeeBreak() string   { return "Cannot have a break" }
func (Teacher) WorkTeacherTasks() string { return "Getting to work" }

// teacherSalaryLimit is the salary below which CreateEmployee hires a teacher.
const teacherSalaryLimit = 500

// CreateEmployee hires a Teacher for a numeric salary below 500 and a
// Director for anything else, including salaries given as strings.
func CreateEmployee(salary any) Employee {
	if n, ok := number(salary); ok && n < teacherSalaryLimit {
		return Teacher{}
	}
	return Director{}
}

// IsDirectorEmployee reports whether e is a Director.
func IsDirectorEmployee(e Employee) bool {
	_, ok := e.(Director)
	return ok
}

// IsTeacherEmployee reports whether e is a Teacher.
func IsTeacherEmployee(e Employee) bool {
	_, ok := e.(Teacher)
	return ok
}

// Employees dispatches work by employee kind.
var Employees = types.VariantSet[Employee, string]{
	Name: "Employee",
	Variants: []types.Variant[Employee, string]{
		{
			Tag:       TagDirector,
			Predicate: IsDirectorEmployee,
			Handler:   func(e Employee) (string, error) { return e.(Director).WorkDirectorTasks(), nil },
		},
		{
			Tag:       TagTeacher,
			Predicate: IsTeacherEmployee,
			Handler:   func(e Employee) (string, error) { return e.(Teacher).WorkTeacherTasks(), nil },
		},
	},
}

// ExecuteWork runs the tasks of e's kind. An Employee that is neither a
// Director nor a Teacher fails with ErrNoMatchingVariant.
func ExecuteWork(e Employee) (string, error) {
	return variant.Dispatch(e, Employees)
}

// Subject literals accepted by TeachClass.
const (
	Math    = "Math"
	History = "History"
)

// Lessons is the closed set of subjects that can be taught today.
var Lessons = variant.Enum("Subjects", func(subject string) (string, error) {
	return "Teaching " + subject, nil
}, Math, History)

// TeachClass returns "Teaching <subject>". Subjects outside Lessons fail
// with ErrNoMatchingVariant.
func TeachClass(subject string) (string, error) {
	return variant.Dispatch(subject, Lessons)
}
