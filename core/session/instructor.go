package session

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/classroom"
)

// InstructorDesk is the command set of a signed-in instructor.
// Every lookup is scoped to the instructor's own courses.
type InstructorDesk struct {
	base
	instr *classroom.Instructor
}

func (d *InstructorDesk) ListCourses() ([]classroom.CourseInfo, error) {
	if err := d.active(); err != nil {
		return nil, err
	}
	return listCourses(d.instr.Courses()), nil
}

// CreateCourse creates a course owned by the instructor. Codes are unique across the directory.
func (d *InstructorDesk) CreateCourse(name, code string) (classroom.CourseInfo, error) {
	if err := d.active(); err != nil {
		return classroom.CourseInfo{}, err
	}
	nc := classroom.NewCourse{Name: name, Code: code}
	if err := nc.Validate(); err != nil {
		return classroom.CourseInfo{}, err
	}

	var c *classroom.Course
	if err := d.s.dir.CheckCourseUniqueness(nc.Code); err != nil {
		if err == classroom.ErrCourseExists {
			return classroom.CourseInfo{}, core.NewValidationError(err, core.FieldError{Field: "code", Error: err.Error()})
		}
		return classroom.CourseInfo{}, err
	}
	_ = d.s.dir.Atomically(func() error {
		c = d.instr.CreateCourse(nc.Name, nc.Code)
		return nil
	})
	d.logInfo("course created", "code", c.Code)
	return c.Info(), nil
}

// ViewCourse summarizes one of the instructor's courses.
func (d *InstructorDesk) ViewCourse(code string) (classroom.Summary, error) {
	if err := d.active(); err != nil {
		return classroom.Summary{}, err
	}
	c, err := d.instr.Course(core.CleanString(code))
	if err != nil {
		return classroom.Summary{}, err
	}
	return c.Summary(null.Int{}), nil
}

func (d *InstructorDesk) CreateAssignment(code, name string) (classroom.AssignmentInfo, error) {
	if err := d.active(); err != nil {
		return classroom.AssignmentInfo{}, err
	}
	c, err := d.instr.Course(core.CleanString(code))
	if err != nil {
		return classroom.AssignmentInfo{}, err
	}
	name = core.CleanString(name)
	if err := core.Validate.Var(name, "required,notblank"); err != nil {
		return classroom.AssignmentInfo{}, core.NewValidationError(
			classroom.ErrInvalidAssignment,
			core.FieldError{Field: "name", Error: classroom.ErrInvalidAssignment.Error()},
		)
	}

	var a *classroom.Assignment
	_ = d.s.dir.Atomically(func() error {
		a = c.CreateAssignment(name)
		return nil
	})
	d.logInfo("assignment created", "code", c.Code, "assignment", a.Name)
	return a.Info(), nil
}

func (d *InstructorDesk) assignment(code, name string) (*classroom.Assignment, error) {
	if err := d.active(); err != nil {
		return nil, err
	}
	c, err := d.instr.Course(core.CleanString(code))
	if err != nil {
		return nil, err
	}
	return c.Assignment(core.CleanString(name))
}

func (d *InstructorDesk) ViewAssignment(code, name string) (classroom.AssignmentInfo, error) {
	a, err := d.assignment(code, name)
	if err != nil {
		return classroom.AssignmentInfo{}, err
	}
	return a.Info(), nil
}

// AssignmentGrades lists the recorded grades of an assignment.
func (d *InstructorDesk) AssignmentGrades(code, name string) ([]classroom.GradeEntry, error) {
	a, err := d.assignment(code, name)
	if err != nil {
		return nil, err
	}
	return a.Grades(), nil
}

// ListSolutions lists every submitted solution, including those of learners who since unregistered.
func (d *InstructorDesk) ListSolutions(code, name string) ([]classroom.Solution, error) {
	a, err := d.assignment(code, name)
	if err != nil {
		return nil, err
	}
	return a.Solutions(), nil
}

func (d *InstructorDesk) ViewSolution(code, name string, studentID int) (classroom.Solution, error) {
	a, err := d.assignment(code, name)
	if err != nil {
		return classroom.Solution{}, err
	}
	text, ok := a.Solution(studentID)
	if !ok {
		return classroom.Solution{}, core.NewNotFoundError(classroom.ErrSubmissionNotFound, strconv.Itoa(studentID))
	}
	return classroom.Solution{StudentID: studentID, Text: text, Grade: a.Grade(studentID)}, nil
}

// SetGrade grades studentID's solution to one assignment. rawGrade must be a whole number.
func (d *InstructorDesk) SetGrade(code, name string, studentID int, rawGrade string) error {
	a, err := d.assignment(code, name)
	if err != nil {
		return err
	}
	grade, err := classroom.ParseGrade(rawGrade)
	if err != nil {
		return err
	}
	err = d.s.dir.Atomically(func() error {
		return d.instr.GradeSolution(a, studentID, grade)
	})
	if err != nil {
		return err
	}
	d.logInfo("grade set", "code", a.CourseCode, "assignment", a.Name, "student_id", studentID, "grade", grade)
	return nil
}

// GradeCourse grades studentID on every assignment of the course they submitted to.
// It returns how many grades were written.
func (d *InstructorDesk) GradeCourse(code string, studentID int, rawGrade string) (int, error) {
	if err := d.active(); err != nil {
		return 0, err
	}
	grade, err := classroom.ParseGrade(rawGrade)
	if err != nil {
		return 0, err
	}
	code = core.CleanString(code)

	var n int
	err = d.s.dir.Atomically(func() error {
		var err error
		n, err = d.instr.SetGrade(code, studentID, grade)
		return err
	})
	if err != nil {
		return 0, err
	}
	d.logInfo("course graded", "code", code, "student_id", studentID, "grade", grade, "count", n)
	return n, nil
}

// PendingSubmissions lists every solution of a course, ready for GradePending.
func (d *InstructorDesk) PendingSubmissions(code string) ([]classroom.PendingGrade, error) {
	if err := d.active(); err != nil {
		return nil, err
	}
	return d.instr.PendingGrades(core.CleanString(code))
}

func (d *InstructorDesk) GradePending(p classroom.PendingGrade, rawGrade string) error {
	if err := d.active(); err != nil {
		return err
	}
	grade, err := classroom.ParseGrade(rawGrade)
	if err != nil {
		return err
	}
	err = d.s.dir.Atomically(func() error {
		return d.instr.GradePending(p, grade)
	})
	if err != nil {
		return errors.Wrapf(err, "grading %s", p.AssignmentName)
	}
	d.logInfo("grade set", "assignment", p.AssignmentName, "student_id", p.StudentID, "grade", grade)
	return nil
}
