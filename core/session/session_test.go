package session

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/classroom"
	"github.com/trezcool/lms/core/user"
	"github.com/trezcool/lms/tests"
)

func setup(t *testing.T, seed bool) *Session {
	return New(testutil.PrepareDirectory(t, seed), testutil.Logger())
}

func signUp(t *testing.T, s *Session, role string, id int, uname string) {
	t.Helper()
	_, err := s.SignUp(user.NewUser{Role: role, ID: id, Username: uname, Password: "pw", FullName: uname, Email: uname + "@x.com"})
	require.NoError(t, err)
}

func signIn(t *testing.T, s *Session, uname string) Desk {
	t.Helper()
	return signInAs(t, s, uname, "pw")
}

func signInAs(t *testing.T, s *Session, uname, pwd string) Desk {
	t.Helper()
	desk, err := s.SignIn(uname, pwd)
	require.NoError(t, err)
	return desk
}

func TestSession_auth(t *testing.T) {
	s := setup(t, false)
	assert.Equal(t, Anonymous, s.State())

	bob, err := s.SignUp(user.NewUser{Role: "student", ID: 9, Username: "bob", Password: "pw", FullName: "Bob B", Email: "bob@x.com"})
	require.NoError(t, err)
	assert.Equal(t, Anonymous, s.State(), "sign-up does not sign in")
	assert.IsType(t, &classroom.Learner{}, bob)

	_, err = s.SignIn("bob", "wrong")
	assert.Equal(t, ErrAuthFailure, err)
	assert.Nil(t, s.Current())
	assert.Equal(t, Anonymous, s.State())

	_, err = s.SignIn("nobody", "pw")
	assert.Equal(t, ErrAuthFailure, err)

	_, err = s.SignIn("Bob", "pw")
	assert.Equal(t, ErrAuthFailure, err, "usernames are case sensitive")

	desk, err := s.SignIn("bob", "pw")
	require.NoError(t, err)
	assert.Same(t, bob, s.Current())
	assert.Same(t, bob, desk.Member())
	assert.IsType(t, &LearnerDesk{}, desk)
	assert.Equal(t, AuthenticatedLearner, s.State())

	_, err = s.SignIn("bob", "pw")
	assert.Equal(t, ErrAlreadySignedIn, err)
	_, err = s.SignIn("bob", "wrong")
	assert.Equal(t, ErrAlreadySignedIn, err)
	assert.Same(t, bob, s.Current(), "current identity unchanged")

	s.SignOut()
	assert.Nil(t, s.Current())
	assert.Nil(t, s.Desk())
	s.SignOut()
	assert.Equal(t, Anonymous, s.State())
}

func TestSession_SignUp(t *testing.T) {
	s := setup(t, true)

	tests := []struct {
		name    string
		nu      user.NewUser
		wantErr error
		field   string
	}{
		{
			name: "instructor",
			nu:   user.NewUser{Role: "instructor", ID: 4, Username: "docnew", Password: "pw", FullName: "Dr. New", Email: "new@example.com"},
		},
		{
			name: "assistant alias",
			nu:   user.NewUser{Role: "ta", ID: 1, Username: "helper", Password: "pw", FullName: "Helper", Email: "helper@example.com"},
		},
		{
			name:    "invalid email",
			nu:      user.NewUser{Role: "student", ID: 10, Username: "eve", Password: "pw", FullName: "Eve", Email: "eve@example"},
			wantErr: user.ErrInvalidEmail,
			field:   "email",
		},
		{
			name:    "unknown role",
			nu:      user.NewUser{Role: "dean", ID: 11, Username: "dean", Password: "pw", FullName: "Dean", Email: "dean@example.com"},
			wantErr: user.ErrInvalidRole,
			field:   "role",
		},
		{
			name:    "username taken",
			nu:      user.NewUser{Role: "student", ID: 12, Username: "studavid", Password: "pw", FullName: "Impostor", Email: "imp@example.com"},
			wantErr: user.ErrUsernameExists,
			field:   "username",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(s.dir.QueryAllMembers())
			m, err := s.SignUp(tt.nu)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.nu.Username, m.Profile().Username)
				assert.Len(t, s.dir.QueryAllMembers(), before+1)
				return
			}
			assert.Nil(t, m)
			assert.Len(t, s.dir.QueryAllMembers(), before, "no account created")
			vErr, ok := err.(*core.ValidationError)
			require.True(t, ok, "SignUp() error = %T, want *core.ValidationError", err)
			assert.Equal(t, tt.wantErr, vErr.Err)
			require.NotEmpty(t, vErr.Fields)
			assert.Equal(t, tt.field, vErr.Fields[len(vErr.Fields)-1].Field)
		})
	}

	// the original account survives
	m, err := s.dir.GetMemberByUsername("studavid")
	require.NoError(t, err)
	assert.Equal(t, "David Johnson", m.Profile().FullName)
}

func TestSession_Shutdown(t *testing.T) {
	s := setup(t, false)
	signUp(t, s, "assistant", 1, "tara")
	desk := signIn(t, s, "tara")
	assert.Equal(t, AuthenticatedAssistant, s.State())

	assert.Equal(t, ErrSignedIn, s.Shutdown())
	desk.SignOut()
	require.NoError(t, s.Shutdown())
	assert.Equal(t, Closed, s.State())
	assert.NoError(t, s.Shutdown())

	_, err := s.SignIn("tara", "pw")
	assert.Equal(t, ErrClosed, err)
	_, err = s.SignUp(user.NewUser{Role: "ta", Username: "x", Password: "x", FullName: "x", Email: "x@x.io"})
	assert.Equal(t, ErrClosed, err)
	_, err = desk.(*AssistantDesk).ListCourses()
	assert.Equal(t, ErrClosed, err)
}

func TestDesk_stale(t *testing.T) {
	s := setup(t, true)
	stale := signInAs(t, s, "docjohn", "john123").(*InstructorDesk)
	stale.SignOut()
	assert.Equal(t, Anonymous, s.State())

	_, err := stale.ListCourses()
	assert.Equal(t, ErrSignedOut, err)

	fresh := signInAs(t, s, "docjane", "doc456")
	stale.SignOut() // must not sign docjane out
	assert.Same(t, fresh.Member(), s.Current())
	_, err = stale.CreateCourse("Hijack", "HJK1")
	assert.Equal(t, ErrSignedOut, err)
}

func TestAssistantDesk_ListCourses(t *testing.T) {
	s := setup(t, true)
	testutil.CreateMember(t, s.dir, user.RoleAssistant, 1, "tara", "pw")
	desk := signIn(t, s, "tara").(*AssistantDesk)

	courses, err := desk.ListCourses()
	require.NoError(t, err)
	codes := make([]string, 0, len(courses))
	for _, c := range courses {
		codes = append(codes, c.Code)
	}
	assert.Equal(t, []string{"MATH101", "PHYS101", "STAT211"}, codes)
	assert.Equal(t, "Dr. John Smith", courses[0].InstructorName)
}

func TestInstructorDesk(t *testing.T) {
	s := setup(t, true)
	desk := signInAs(t, s, "docjohn", "john123").(*InstructorDesk)
	assert.Equal(t, AuthenticatedInstructor, s.State())

	t.Run("list courses", func(t *testing.T) {
		courses, err := desk.ListCourses()
		require.NoError(t, err)
		require.Len(t, courses, 1)
		assert.Equal(t, classroom.CourseInfo{Code: "MATH101", Name: "Math 101", InstructorName: "Dr. John Smith", Enrolled: 1, Assignments: 1}, courses[0])
	})

	t.Run("create course", func(t *testing.T) {
		info, err := desk.CreateCourse(" Calculus ", " CALC201 ")
		require.NoError(t, err)
		assert.Equal(t, "CALC201", info.Code)
		assert.Equal(t, "Calculus", info.Name)

		_, err = desk.CreateCourse("Physics again", "PHYS101")
		vErr, ok := err.(*core.ValidationError)
		require.True(t, ok)
		assert.Equal(t, classroom.ErrCourseExists, vErr.Err, "codes are unique across instructors")

		_, err = desk.CreateCourse("Calc again", "CALC201")
		assert.True(t, errors.Is(err, classroom.ErrCourseExists))

		_, err = desk.CreateCourse("", "X1")
		assert.True(t, errors.Is(err, classroom.ErrInvalidCourse))

		courses, _ := desk.ListCourses()
		assert.Len(t, courses, 2)
	})

	t.Run("foreign course", func(t *testing.T) {
		_, err := desk.ViewCourse("PHYS101")
		assert.True(t, errors.Is(err, classroom.ErrCourseNotFound))
	})

	t.Run("assignments", func(t *testing.T) {
		info, err := desk.CreateAssignment("MATH101", "Geometry Quiz")
		require.NoError(t, err)
		assert.Equal(t, classroom.AssignmentInfo{Name: "Geometry Quiz", CourseCode: "MATH101"}, info)

		_, err = desk.CreateAssignment("MATH101", "  ")
		assert.True(t, errors.Is(err, classroom.ErrInvalidAssignment))

		sum, err := desk.ViewCourse("MATH101")
		require.NoError(t, err)
		assert.False(t, sum.Viewer.Valid)
		require.Len(t, sum.Assignments, 2)
		assert.Equal(t, "Algebra Homework", sum.Assignments[0].Name)
		assert.Equal(t, classroom.StatusNotApplicable, sum.Assignments[0].Status)
		assert.Equal(t, 1, sum.Assignments[0].Submissions)

		info, err = desk.ViewAssignment("MATH101", "Algebra Homework")
		require.NoError(t, err)
		assert.Equal(t, 1, info.Submissions)
		assert.Equal(t, 0, info.Graded)

		_, err = desk.ViewAssignment("MATH101", "Nope")
		assert.True(t, errors.Is(err, classroom.ErrAssignmentNotFound))
	})

	t.Run("solutions and grades", func(t *testing.T) {
		sols, err := desk.ListSolutions("MATH101", "Algebra Homework")
		require.NoError(t, err)
		assert.Equal(t, []classroom.Solution{{StudentID: 1, Text: "Algebra Homework Solution by David"}}, sols)

		_, err = desk.ViewSolution("MATH101", "Algebra Homework", 2)
		assert.True(t, errors.Is(err, classroom.ErrSubmissionNotFound))

		err = desk.SetGrade("MATH101", "Algebra Homework", 1, "ninety")
		fErr, ok := err.(*core.FormatError)
		require.True(t, ok, "SetGrade() error = %T, want *core.FormatError", err)
		assert.Equal(t, "ninety", fErr.Value)

		require.NoError(t, desk.SetGrade("MATH101", "Algebra Homework", 1, "90"))
		sol, err := desk.ViewSolution("MATH101", "Algebra Homework", 1)
		require.NoError(t, err)
		assert.Equal(t, null.IntFrom(90), sol.Grade)

		err = desk.SetGrade("MATH101", "Algebra Homework", 2, "50")
		assert.True(t, errors.Is(err, classroom.ErrSubmissionNotFound), "only submitters are graded")

		grades, err := desk.AssignmentGrades("MATH101", "Algebra Homework")
		require.NoError(t, err)
		assert.Equal(t, []classroom.GradeEntry{{StudentID: 1, Grade: 90}}, grades)
	})

	t.Run("grade course", func(t *testing.T) {
		_, err := desk.GradeCourse("MATH101", 1, "9x")
		_, ok := err.(*core.FormatError)
		assert.True(t, ok)

		n, err := desk.GradeCourse("MATH101", 1, "77")
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		_, err = desk.GradeCourse("MATH101", 3, "77")
		assert.True(t, errors.Is(err, classroom.ErrSubmissionNotFound))
	})

	t.Run("pending submissions", func(t *testing.T) {
		pending, err := desk.PendingSubmissions("MATH101")
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "Algebra Homework", pending[0].AssignmentName)
		assert.Equal(t, null.IntFrom(77), pending[0].Current.Grade)

		_, ok := desk.GradePending(pending[0], "abc").(*core.FormatError)
		assert.True(t, ok)
		require.NoError(t, desk.GradePending(pending[0], "81"))

		grades, _ := desk.AssignmentGrades("MATH101", "Algebra Homework")
		assert.Equal(t, []classroom.GradeEntry{{StudentID: 1, Grade: 81}}, grades)
	})
}

func TestLearnerDesk(t *testing.T) {
	s := setup(t, true)
	desk := signInAs(t, s, "studavid", "password123").(*LearnerDesk)

	t.Run("available courses", func(t *testing.T) {
		courses, err := desk.AvailableCourses()
		require.NoError(t, err)
		codes := make([]string, 0, len(courses))
		for _, c := range courses {
			codes = append(codes, c.Code)
		}
		assert.Equal(t, []string{"PHYS101", "STAT211"}, codes)
	})

	t.Run("register", func(t *testing.T) {
		info, err := desk.Register("PHYS101")
		require.NoError(t, err)
		assert.Equal(t, 2, info.Enrolled)

		info, err = desk.Register("PHYS101")
		require.NoError(t, err)
		assert.Equal(t, 2, info.Enrolled, "registering twice is a no-op")

		_, err = desk.Register("PHYS11")
		assert.True(t, errors.Is(err, classroom.ErrCourseNotFound))
		nfe, ok := err.(*core.NotFoundError)
		require.True(t, ok)
		assert.Equal(t, "PHYS101", nfe.Suggestion)

		views, err := desk.MyCourses()
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "MATH101", views[0].Code)
		assert.Equal(t, "Dr. Jane Doe", views[1].InstructorName)
	})

	t.Run("submit and view", func(t *testing.T) {
		require.NoError(t, desk.Submit("PHYS101", "Physics Lab", "my lab report"))
		assert.True(t, errors.Is(desk.Submit("PHYS101", "Chemistry Lab", "x"), classroom.ErrAssignmentNotFound))
		assert.True(t, errors.Is(desk.Submit("STAT211", "Statistics Project", "x"), classroom.ErrNotEnrolled))

		sum, err := desk.ViewCourse("PHYS101")
		require.NoError(t, err)
		assert.Equal(t, null.IntFrom(1), sum.Viewer)
		require.Len(t, sum.Assignments, 1)
		assert.Equal(t, classroom.StatusSubmitted, sum.Assignments[0].Status)
		assert.False(t, sum.Assignments[0].Grade.Valid)

		_, err = desk.ViewCourse("STAT211")
		assert.True(t, errors.Is(err, classroom.ErrNotEnrolled))
	})

	t.Run("grades report", func(t *testing.T) {
		report, err := desk.GradesReport()
		require.NoError(t, err)
		assert.Equal(t, []classroom.GradeLine{
			{CourseCode: "MATH101", AssignmentCount: 1, TotalGrade: 0},
			{CourseCode: "PHYS101", AssignmentCount: 1, TotalGrade: 0},
		}, report)
	})

	t.Run("unregister", func(t *testing.T) {
		require.NoError(t, desk.Unregister("PHYS101"))
		assert.True(t, errors.Is(desk.Unregister("PHYS101"), classroom.ErrNotEnrolled))

		courses, _ := desk.AvailableCourses()
		assert.Len(t, courses, 2)
	})
}

func TestGradingAcrossRoles(t *testing.T) {
	s := setup(t, false)
	signUp(t, s, "instructor", 1, "doc")
	signUp(t, s, "student", 5, "lena")

	doc := signIn(t, s, "doc").(*InstructorDesk)
	_, err := doc.CreateCourse("Course One", "C1")
	require.NoError(t, err)
	_, err = doc.CreateAssignment("C1", "A1")
	require.NoError(t, err)
	doc.SignOut()

	lena := signIn(t, s, "lena").(*LearnerDesk)
	_, err = lena.Register("C1")
	require.NoError(t, err)
	require.NoError(t, lena.Submit("C1", "A1", "hello"))
	lena.SignOut()

	doc = signIn(t, s, "doc").(*InstructorDesk)
	n, err := doc.GradeCourse("C1", 5, "90")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	doc.SignOut()

	lena = signIn(t, s, "lena").(*LearnerDesk)
	report, err := lena.GradesReport()
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, "C1", report[0].CourseCode)
	assert.GreaterOrEqual(t, report[0].TotalGrade, 90)

	// unregistering keeps the history
	require.NoError(t, lena.Unregister("C1"))
	lena.SignOut()

	doc = signIn(t, s, "doc").(*InstructorDesk)
	sum, err := doc.ViewCourse("C1")
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Enrolled)
	sol, err := doc.ViewSolution("C1", "A1", 5)
	require.NoError(t, err)
	assert.Equal(t, "hello", sol.Text)
	assert.Equal(t, null.IntFrom(90), sol.Grade)
}
