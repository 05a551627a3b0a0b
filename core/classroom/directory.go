package classroom

// Directory is the registry of every member and, through the instructors, every course.
type Directory interface {
	CheckUsernameUniqueness(username string) error
	CreateMember(m Member) error
	GetMemberByUsername(username string) (Member, error)
	// QueryAllMembers lists members ordered by role then id.
	QueryAllMembers() []Member
	CheckCourseUniqueness(code string) error
	// AvailableCourses aggregates the courses of every instructor, ordered by code.
	AvailableCourses() []*Course
	GetCourse(code string) (*Course, error)
	// Atomically runs fn as one mutation of the entity graph.
	Atomically(fn func() error) error
}
