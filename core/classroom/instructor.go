package classroom

import (
	"strconv"

	"github.com/trezcool/lms/core"
)

// PendingGrade is one submitted solution of a course awaiting (re)grading.
type PendingGrade struct {
	AssignmentName string
	StudentID      int
	Current        Solution
	assignment     *Assignment
}

// CreateCourse registers a new course under code in i's own courses.
// An existing course with the same code is replaced.
func (i *Instructor) CreateCourse(name, code string) *Course {
	c := newCourse(name, code, i)
	i.courses[code] = c
	return c
}

// Courses lists i's courses ordered by code.
func (i *Instructor) Courses() []*Course {
	courses := make([]*Course, 0, len(i.courses))
	for _, c := range i.courses {
		courses = append(courses, c)
	}
	return sortCourses(courses)
}

// Course returns i's course with the given code.
func (i *Instructor) Course(code string) (*Course, error) {
	if c, ok := i.courses[code]; ok {
		return c, nil
	}
	return nil, core.NewNotFoundError(ErrCourseNotFound, code, Suggest(code, i.courseCodes()))
}

func (i *Instructor) courseCodes() []string {
	codes := make([]string, 0, len(i.courses))
	for code := range i.courses {
		codes = append(codes, code)
	}
	return codes
}

// SetGrade records grade for studentID on every assignment of the course they submitted to.
// It returns how many grades were written.
func (i *Instructor) SetGrade(code string, studentID, grade int) (int, error) {
	c, err := i.Course(code)
	if err != nil {
		return 0, err
	}
	var n int
	for _, a := range c.assignments {
		if a.HasSubmitted(studentID) {
			a.SetGrade(studentID, grade)
			n++
		}
	}
	if n == 0 {
		return 0, core.NewNotFoundError(ErrSubmissionNotFound, strconv.Itoa(studentID))
	}
	return n, nil
}

// PendingGrades lists every submission of the course, assignment by assignment, for bulk grading.
func (i *Instructor) PendingGrades(code string) ([]PendingGrade, error) {
	c, err := i.Course(code)
	if err != nil {
		return nil, err
	}
	pending := make([]PendingGrade, 0)
	for _, a := range c.assignments {
		for _, sol := range a.Solutions() {
			pending = append(pending, PendingGrade{AssignmentName: a.Name, StudentID: sol.StudentID, Current: sol, assignment: a})
		}
	}
	return pending, nil
}

// GradeSolution records grade for studentID's solution to a.
func (i *Instructor) GradeSolution(a *Assignment, studentID, grade int) error {
	if !a.HasSubmitted(studentID) {
		return core.NewNotFoundError(ErrSubmissionNotFound, strconv.Itoa(studentID))
	}
	a.SetGrade(studentID, grade)
	return nil
}

// GradePending records grade for a solution listed by PendingGrades.
func (i *Instructor) GradePending(p PendingGrade, grade int) error {
	if p.assignment == nil {
		return core.NewNotFoundError(ErrSubmissionNotFound, strconv.Itoa(p.StudentID))
	}
	if _, err := i.Course(p.assignment.CourseCode); err != nil {
		return err
	}
	return i.GradeSolution(p.assignment, p.StudentID, grade)
}

// ParseGrade converts raw shell input into a grade.
func ParseGrade(raw string) (int, error) {
	return parseInt("grade", raw)
}

// ParseStudentID converts raw shell input into a learner id.
func ParseStudentID(raw string) (int, error) {
	return parseInt("student id", raw)
}

func parseInt(field, raw string) (int, error) {
	raw = core.CleanString(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.NewFormatError(field, raw, err)
	}
	return n, nil
}
