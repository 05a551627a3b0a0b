package classroom

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/lms/core"
)

var (
	// errors
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseExists       = errors.New("a course with this code already exists")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("solution not found")
	ErrNotEnrolled        = errors.New("not registered in course")
	ErrInvalidCourse      = errors.New("invalid course")
	ErrInvalidAssignment  = errors.New("invalid assignment name")
)

// Submission statuses shown in course summaries.
const (
	StatusSubmitted     = "Submitted"
	StatusNotSubmitted  = "Not submitted"
	StatusNotApplicable = "n/a"
)

type (
	Course struct {
		Code        string
		Name        string
		Instructor  *Instructor // owner, not owned
		roster      map[int]*Learner
		assignments []*Assignment
	}

	// Summary is a course report seen either by one learner or, with no viewer, by the instructor.
	Summary struct {
		Code           string
		Name           string
		InstructorName string
		Viewer         null.Int
		Enrolled       int
		Assignments    []AssignmentStatus
	}

	// CourseInfo is a read-only listing entry for a course.
	CourseInfo struct {
		Code           string
		Name           string
		InstructorName string
		Enrolled       int
		Assignments    int
	}

	// AssignmentInfo is a read-only description of an assignment.
	AssignmentInfo struct {
		Name        string
		CourseCode  string
		Submissions int
		Graded      int
	}

	// NewCourse contains information needed to create a course.
	NewCourse struct {
		Name string `field:"name" validate:"required,notblank"`
		Code string `field:"code" validate:"required,notblank"`
	}

	AssignmentStatus struct {
		Name        string
		Status      string
		Grade       null.Int // null: not graded, or no viewer
		Submissions int
		Graded      int
	}
)

func newCourse(name, code string, owner *Instructor) *Course {
	return &Course{
		Code:       code,
		Name:       name,
		Instructor: owner,
		roster:     make(map[int]*Learner),
	}
}

// InstructorName is the owner's full name, empty for an orphan course.
func (c *Course) InstructorName() string {
	if c.Instructor == nil {
		return ""
	}
	return c.Instructor.FullName
}

func (c *Course) Info() CourseInfo {
	return CourseInfo{
		Code:           c.Code,
		Name:           c.Name,
		InstructorName: c.InstructorName(),
		Enrolled:       len(c.roster),
		Assignments:    len(c.assignments),
	}
}

// AddStudent puts l on the roster. Adding twice is a no-op.
func (c *Course) AddStudent(l *Learner) {
	c.roster[l.ID] = l
}

// RemoveStudent takes l off the roster if present.
func (c *Course) RemoveStudent(l *Learner) {
	delete(c.roster, l.ID)
}

func (c *Course) HasStudent(id int) bool {
	_, ok := c.roster[id]
	return ok
}

// Roster lists the enrolled learners ordered by id.
func (c *Course) Roster() []*Learner {
	learners := make([]*Learner, 0, len(c.roster))
	for _, l := range c.roster {
		learners = append(learners, l)
	}
	sort.Slice(learners, func(i, j int) bool { return learners[i].ID < learners[j].ID })
	return learners
}

// CreateAssignment appends a new empty assignment. Names are not required to be unique.
func (c *Course) CreateAssignment(name string) *Assignment {
	a := newAssignment(name, c.Code)
	c.assignments = append(c.assignments, a)
	return a
}

// Assignments returns the assignments in creation order.
func (c *Course) Assignments() []*Assignment {
	return append([]*Assignment(nil), c.assignments...)
}

// Assignment returns the first assignment called name.
func (c *Course) Assignment(name string) (*Assignment, error) {
	for _, a := range c.assignments {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, core.NewNotFoundError(ErrAssignmentNotFound, name)
}

// Summary reports every assignment in creation order as seen by viewer.
// A null viewer yields the instructor view, where status and grade do not apply.
func (c *Course) Summary(viewer null.Int) Summary {
	sum := Summary{
		Code:           c.Code,
		Name:           c.Name,
		InstructorName: c.InstructorName(),
		Viewer:         viewer,
		Enrolled:       len(c.roster),
		Assignments:    make([]AssignmentStatus, 0, len(c.assignments)),
	}
	for _, a := range c.assignments {
		st := AssignmentStatus{
			Name:        a.Name,
			Status:      StatusNotApplicable,
			Submissions: a.SubmissionCount(),
			Graded:      a.GradedCount(),
		}
		if viewer.Valid {
			st.Status = StatusNotSubmitted
			if a.HasSubmitted(viewer.Int) {
				st.Status = StatusSubmitted
			}
			st.Grade = a.Grade(viewer.Int)
		}
		sum.Assignments = append(sum.Assignments, st)
	}
	return sum
}

// Validate cleans nc and checks it, returning a *core.ValidationError on failure.
func (nc *NewCourse) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Code = core.CleanString(nc.Code)
	if err := core.Validate.Struct(nc); err != nil {
		if fldErrs := core.FieldErrors(err); fldErrs != nil {
			return core.NewValidationError(ErrInvalidCourse, fldErrs...)
		}
		return err
	}
	return nil
}

func sortCourses(courses []*Course) []*Course {
	sort.Slice(courses, func(i, j int) bool { return courses[i].Code < courses[j].Code })
	return courses
}
