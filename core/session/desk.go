package session

import (
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/classroom"
)

// Desk is the command set of a signed-in member.
// It is implemented by *InstructorDesk, *LearnerDesk and *AssistantDesk only,
// so a command of another role cannot be called on it.
type Desk interface {
	Member() classroom.Member
	SignOut()
	desk()
}

type base struct {
	s *Session
	m classroom.Member
}

func newDesk(s *Session, m classroom.Member) Desk {
	b := base{s: s, m: m}
	switch v := m.(type) {
	case *classroom.Instructor:
		return &InstructorDesk{base: b, instr: v}
	case *classroom.Learner:
		return &LearnerDesk{base: b, lrn: v}
	default:
		return &AssistantDesk{base: b}
	}
}

func (b *base) Member() classroom.Member { return b.m }

// SignOut signs the desk's member out. It does nothing once another sign-in took over.
func (b *base) SignOut() {
	if b.s.current == b.m {
		b.s.SignOut()
	}
}

func (*base) desk() {}

// active fails once the desk's member is no longer signed in.
func (b *base) active() error {
	if b.s.closed {
		return ErrClosed
	}
	if b.s.current != b.m {
		return ErrSignedOut
	}
	return nil
}

func (b *base) logInfo(msg string, kv ...interface{}) {
	b.s.log.Info(msg, b.m.Profile(), b.s.fields(kv...))
}

func listCourses(courses []*classroom.Course) []classroom.CourseInfo {
	infos := make([]classroom.CourseInfo, 0, len(courses))
	for _, c := range courses {
		infos = append(infos, c.Info())
	}
	return infos
}

// AssistantDesk has read-only access to the course catalogue.
type AssistantDesk struct {
	base
}

// ListCourses lists every course of every instructor.
func (d *AssistantDesk) ListCourses() ([]classroom.CourseInfo, error) {
	if err := d.active(); err != nil {
		return nil, err
	}
	return listCourses(d.s.dir.AvailableCourses()), nil
}

// LearnerDesk is the command set of a signed-in learner.
type LearnerDesk struct {
	base
	lrn *classroom.Learner
}

// AvailableCourses lists the courses the learner is not enrolled in.
func (d *LearnerDesk) AvailableCourses() ([]classroom.CourseInfo, error) {
	if err := d.active(); err != nil {
		return nil, err
	}
	courses := make([]*classroom.Course, 0)
	for _, c := range d.s.dir.AvailableCourses() {
		if !d.lrn.IsEnrolled(c.Code) {
			courses = append(courses, c)
		}
	}
	return listCourses(courses), nil
}

// Register enrolls the learner in the course with the given code. Registering twice is a no-op.
func (d *LearnerDesk) Register(code string) (classroom.CourseInfo, error) {
	if err := d.active(); err != nil {
		return classroom.CourseInfo{}, err
	}
	code = core.CleanString(code)
	c, err := d.s.dir.GetCourse(code)
	if err != nil {
		return classroom.CourseInfo{}, err
	}

	var registered bool
	_ = d.s.dir.Atomically(func() error {
		registered = d.lrn.RegisterCourse(c)
		return nil
	})
	if registered {
		d.logInfo("registered in course", "code", code)
	}
	return c.Info(), nil
}

// Unregister drops the learner's enrollment. Their submissions and grades are kept.
func (d *LearnerDesk) Unregister(code string) error {
	if err := d.active(); err != nil {
		return err
	}
	code = core.CleanString(code)
	if !d.lrn.IsEnrolled(code) {
		return core.NewNotFoundError(classroom.ErrNotEnrolled, code)
	}
	_ = d.s.dir.Atomically(func() error {
		d.lrn.UnregisterCourse(code)
		return nil
	})
	d.logInfo("unregistered from course", "code", code)
	return nil
}

func (d *LearnerDesk) MyCourses() ([]classroom.CourseView, error) {
	if err := d.active(); err != nil {
		return nil, err
	}
	return d.lrn.CourseListing(), nil
}

// ViewCourse summarizes an enrolled course from the learner's point of view.
func (d *LearnerDesk) ViewCourse(code string) (classroom.Summary, error) {
	if err := d.active(); err != nil {
		return classroom.Summary{}, err
	}
	c, err := d.lrn.Course(core.CleanString(code))
	if err != nil {
		return classroom.Summary{}, err
	}
	return c.Summary(null.IntFrom(d.lrn.ID)), nil
}

func (d *LearnerDesk) GradesReport() ([]classroom.GradeLine, error) {
	if err := d.active(); err != nil {
		return nil, err
	}
	return d.lrn.GradesReport(), nil
}

// Submit stores text as the learner's solution to the named assignment of an enrolled course.
func (d *LearnerDesk) Submit(code, assignment, text string) error {
	if err := d.active(); err != nil {
		return err
	}
	c, err := d.lrn.Course(core.CleanString(code))
	if err != nil {
		return err
	}
	a, err := c.Assignment(core.CleanString(assignment))
	if err != nil {
		return err
	}
	_ = d.s.dir.Atomically(func() error {
		d.lrn.SubmitSolution(a, text)
		return nil
	})
	d.logInfo("solution submitted", "code", c.Code, "assignment", a.Name)
	return nil
}
