package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shapes/internal/brand"
	"github.com/mesh-intelligence/shapes/internal/rows"
	"github.com/mesh-intelligence/shapes/internal/schema"
	"github.com/mesh-intelligence/shapes/internal/school"
	"github.com/mesh-intelligence/shapes/pkg/types"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through the school catalog",
		Long:  "Demo validates the sample educators and students, dispatches employees and\nlessons, assigns subject teachers, stores a RowElement through the façade, and\nchecks branded credits.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := out(cmd)
			steps := []func(io.Writer) error{
				func(w io.Writer) error { return a.demoEducators(cmd.Context(), w) },
				demoStudents,
				demoEmployees,
				a.demoSubjects,
				demoCredits,
			}
			for _, step := range steps {
				if err := step(w); err != nil {
					return err
				}
			}
			return a.withFacade(school.TypeRowElement, func(f *rows.Facade) error {
				return demoRows(w, f)
			})
		},
	}
}

func (a *app) demoEducators(ctx context.Context, w io.Writer) error {
	fmt.Fprintln(w, "=== EDUCATORS ===")
	teacher, err := a.registry.Lookup(school.TypeTeacher)
	if err != nil {
		return err
	}
	educators := school.SampleEducators()
	for i, err := range schema.ValidateAll(ctx, educators, teacher, 0) {
		if err != nil {
			return fmt.Errorf("educator %d: %w", i+1, err)
		}
	}
	fmt.Fprintf(w, "%d educators valid as %s\n", len(educators), teacher.Name)

	for i, r := range educators {
		desc, err := school.Describe(r)
		if err != nil {
			return err
		}
		intro := school.IntroduceEducator(r)
		if school.IsDirector(r) {
			intro = school.IntroduceDirector(r)
		}
		fmt.Fprintf(w, "%d. %s\n   %s\n", i+1, intro, desc)
	}
	fmt.Fprintf(w, "printTeacher(\"John\", \"Doe\"): %s\n", school.PrintTeacher("John", "Doe"))
	fmt.Fprintf(w, "formal: %s\n", school.PrintTeacherFormal("John", "Doe"))
	fmt.Fprintf(w, "casual: %s\n", school.PrintTeacherCasual("michael", "Johnson"))
	fmt.Fprintf(w, "signature:\n%s\n", school.EmailSignature(educators[len(educators)-1], "Columbia University"))
	return nil
}

func demoStudents(w io.Writer) error {
	fmt.Fprintln(w, "=== STUDENTS ===")
	students := []*school.StudentClass{
		school.NewStudentClass("Alice", "Johnson"),
		school.NewStudentClass("Bob", "Smith"),
	}
	ifaces := make([]school.StudentClassInterface, 0, len(students))
	for _, s := range students {
		ifaces = append(ifaces, s)
	}
	for _, line := range school.HomeworkStatus(ifaces) {
		fmt.Fprintln(w, line)
	}
	for i, name := range school.ClassRoster(students) {
		fmt.Fprintf(w, "%d. %s\n", i+1, name)
	}
	return nil
}

func demoEmployees(w io.Writer) error {
	fmt.Fprintln(w, "=== EMPLOYEES ===")
	for _, salary := range []any{200, 1000, "$500"} {
		work, err := school.ExecuteWork(school.CreateEmployee(salary))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "createEmployee(%v): %s\n", salary, work)
	}
	for _, subject := range []string{school.Math, school.History} {
		lesson, err := school.TeachClass(subject)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, lesson)
	}
	return nil
}

func (a *app) demoSubjects(w io.Writer) error {
	fmt.Fprintln(w, "=== SUBJECTS ===")
	teacher := school.SampleSubjectTeachers()[0]
	for _, kind := range []school.SubjectKind{school.Cpp, school.Java, school.React} {
		s := school.NewSubject(kind, a.registry)
		if err := s.SetTeacher(teacher); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n%s\n%s\n", kind.Name, s.Requirements(), s.AvailableTeacher())
	}
	return nil
}

func demoCredits(w io.Writer) error {
	fmt.Fprintln(w, "=== CREDITS ===")
	major, err := brand.Sum(brand.MajorCredits, brand.Major(30), brand.Major(25), brand.Major(28))
	if err != nil {
		return err
	}
	minor, err := brand.Sum(brand.MinorCredits, brand.Minor(12), brand.Minor(15), brand.Minor(10))
	if err != nil {
		return err
	}
	status, err := brand.CheckGraduation(major, minor)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, status)
	if _, err := brand.Combine(major, minor, brand.Add[int]); err != nil {
		fmt.Fprintf(w, "major + minor: %v\n", err)
	}
	return nil
}

func demoRows(w io.Writer, f *rows.Facade) error {
	fmt.Fprintln(w, "=== ROWS ===")
	id, err := f.Insert(types.Record{"firstName": "Guillaume", "lastName": "Salva"})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "inserted %s\n", id)
	if _, err := f.Update(id, types.Record{"firstName": "Guillaume", "lastName": "Salva", "age": 23}); err != nil {
		return err
	}
	fmt.Fprintf(w, "updated %s\n", id)
	if err := f.Delete(id); err != nil {
		return err
	}
	fmt.Fprintf(w, "deleted %s\n", id)
	return nil
}
