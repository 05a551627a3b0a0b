package inmemdb

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/classroom"
	"github.com/trezcool/lms/core/user"
)

func setup(t *testing.T) classroom.Directory {
	db, err := Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return NewDirectory(db)
}

func createMember(t *testing.T, dir classroom.Directory, id int, uname string, role user.Role) classroom.Member {
	m, err := classroom.NewMember(user.Account{ID: id, Username: uname, Password: "pw", FullName: uname, Email: uname + "@test.io", Role: role})
	if err != nil {
		t.Fatalf("createMember() failed: %v", err)
	}
	if err := dir.CreateMember(m); err != nil {
		t.Fatalf("createMember() failed: %v", err)
	}
	return m
}

func TestDirectory_members(t *testing.T) {
	dir := setup(t)
	doc := createMember(t, dir, 1, "doc", user.RoleInstructor)
	ta := createMember(t, dir, 1, "ta", user.RoleAssistant)
	bob := createMember(t, dir, 2, "bob", user.RoleLearner)
	amy := createMember(t, dir, 1, "amy", user.RoleLearner)

	tests := []struct {
		name    string
		uname   string
		want    classroom.Member
		wantErr error
	}{
		{name: "instructor", uname: "doc", want: doc},
		{name: "learner", uname: "bob", want: bob},
		{name: "case sensitive", uname: "Bob", wantErr: user.ErrNotFound},
		{name: "unknown", uname: "zed", wantErr: user.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := dir.GetMemberByUsername(tt.uname)
			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.want, m)
		})
	}

	assert.Equal(t, []classroom.Member{doc, amy, bob, ta}, dir.QueryAllMembers())

	assert.Equal(t, user.ErrUsernameExists, dir.CheckUsernameUniqueness("bob"))
	assert.NoError(t, dir.CheckUsernameUniqueness("carl"))

	dup, _ := classroom.NewMember(user.Account{ID: 9, Username: "bob", Role: user.RoleAssistant})
	assert.Equal(t, user.ErrUsernameExists, dir.CreateMember(dup))
	got, err := dir.GetMemberByUsername("bob")
	require.NoError(t, err)
	assert.Same(t, bob, got, "existing account must not be overwritten")
}

func TestDirectory_courses(t *testing.T) {
	dir := setup(t)
	john := createMember(t, dir, 1, "john", user.RoleInstructor).(*classroom.Instructor)
	jane := createMember(t, dir, 2, "jane", user.RoleInstructor).(*classroom.Instructor)
	createMember(t, dir, 1, "bob", user.RoleLearner)

	phys := jane.CreateCourse("Physics 101", "PHYS101")
	math := john.CreateCourse("Math 101", "MATH101")
	stat := john.CreateCourse("Statistics", "STAT211")

	assert.Equal(t, []*classroom.Course{math, phys, stat}, dir.AvailableCourses())

	assert.Equal(t, classroom.ErrCourseExists, dir.CheckCourseUniqueness("PHYS101"))
	assert.NoError(t, dir.CheckCourseUniqueness("BIO100"))

	c, err := dir.GetCourse("STAT211")
	require.NoError(t, err)
	assert.Same(t, stat, c)

	_, err = dir.GetCourse("PHYS110")
	assert.True(t, errors.Is(err, classroom.ErrCourseNotFound))
	nfe, ok := err.(*core.NotFoundError)
	require.True(t, ok)
	assert.Equal(t, "PHYS101", nfe.Suggestion)
}

func TestDirectory_Atomically(t *testing.T) {
	dir := setup(t)
	john := createMember(t, dir, 1, "john", user.RoleInstructor).(*classroom.Instructor)

	errBoom := errors.New("boom")
	err := dir.Atomically(func() error {
		john.CreateCourse("Math 101", "MATH101")
		return errBoom
	})
	assert.Equal(t, errBoom, err)

	// the lock is released afterwards
	assert.Len(t, dir.AvailableCourses(), 1)
}

func TestSeed(t *testing.T) {
	dir := setup(t)
	require.NoError(t, Seed(dir))

	assert.Len(t, dir.QueryAllMembers(), 6)

	courses := dir.AvailableCourses()
	require.Len(t, courses, 3)
	for i, code := range []string{"MATH101", "PHYS101", "STAT211"} {
		c := courses[i]
		assert.Equal(t, code, c.Code)
		require.Len(t, c.Assignments(), 1)
		assert.Equal(t, 1, c.Assignments()[0].SubmissionCount())
		require.Len(t, c.Roster(), 1)
		_, ok := c.Assignments()[0].Solution(c.Roster()[0].ID)
		assert.True(t, ok)
	}

	m, err := dir.GetMemberByUsername("studavid")
	require.NoError(t, err)
	assert.True(t, m.(*classroom.Learner).IsEnrolled("MATH101"))

	assert.Error(t, Seed(dir), "seeding twice collides on usernames")
}
