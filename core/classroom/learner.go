package classroom

import (
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/lms/core"
)

type (
	GradeLine struct {
		CourseCode      string
		AssignmentCount int
		TotalGrade      int
	}

	CourseView struct {
		Code           string
		Name           string
		InstructorName string
		Grades         []AssignmentGrade
	}

	AssignmentGrade struct {
		Name  string
		Grade null.Int
	}
)

// RegisterCourse enrolls l in c, updating both the enrollment set and the roster.
// It reports false when l was already enrolled.
func (l *Learner) RegisterCourse(c *Course) bool {
	if _, ok := l.enrollments[c.Code]; ok {
		return false
	}
	l.enrollments[c.Code] = c
	c.AddStudent(l)
	return true
}

// UnregisterCourse drops the enrollment on both sides.
// Submissions and grades stay on the course's assignments.
// It reports false when l was not enrolled.
func (l *Learner) UnregisterCourse(code string) bool {
	c, ok := l.enrollments[code]
	if !ok {
		return false
	}
	delete(l.enrollments, code)
	c.RemoveStudent(l)
	return true
}

func (l *Learner) IsEnrolled(code string) bool {
	_, ok := l.enrollments[code]
	return ok
}

// Course returns the enrolled course with the given code.
func (l *Learner) Course(code string) (*Course, error) {
	if c, ok := l.enrollments[code]; ok {
		return c, nil
	}
	return nil, core.NewNotFoundError(ErrNotEnrolled, code)
}

// Enrollments lists the enrolled courses ordered by code.
func (l *Learner) Enrollments() []*Course {
	courses := make([]*Course, 0, len(l.enrollments))
	for _, c := range l.enrollments {
		courses = append(courses, c)
	}
	return sortCourses(courses)
}

// GradesReport totals l's grades per enrolled course. Ungraded assignments count as zero.
func (l *Learner) GradesReport() []GradeLine {
	courses := l.Enrollments()
	report := make([]GradeLine, 0, len(courses))
	for _, c := range courses {
		line := GradeLine{CourseCode: c.Code, AssignmentCount: len(c.assignments)}
		for _, a := range c.assignments {
			line.TotalGrade += a.Grade(l.ID).Int
		}
		report = append(report, line)
	}
	return report
}

// CourseListing describes every enrolled course with l's grade per assignment.
func (l *Learner) CourseListing() []CourseView {
	courses := l.Enrollments()
	views := make([]CourseView, 0, len(courses))
	for _, c := range courses {
		v := CourseView{
			Code:           c.Code,
			Name:           c.Name,
			InstructorName: c.InstructorName(),
			Grades:         make([]AssignmentGrade, 0, len(c.assignments)),
		}
		for _, a := range c.assignments {
			v.Grades = append(v.Grades, AssignmentGrade{Name: a.Name, Grade: a.Grade(l.ID)})
		}
		views = append(views, v)
	}
	return views
}

// SubmitSolution stores text as l's solution to a, replacing any earlier one.
func (l *Learner) SubmitSolution(a *Assignment, text string) {
	a.SubmitSolution(l.ID, text)
}
