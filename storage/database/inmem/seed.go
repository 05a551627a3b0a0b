package inmemdb

import (
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core/classroom"
	"github.com/trezcool/lms/core/user"
)

type seedCourse struct {
	instructor string
	name, code string
	assignment string
	learner    string
	solution   string
}

var (
	seedAccounts = []user.Account{
		{ID: 1, Username: "docjohn", Password: "john123", FullName: "Dr. John Smith", Email: "john.smith@example.com", Role: user.RoleInstructor},
		{ID: 2, Username: "docjane", Password: "doc456", FullName: "Dr. Jane Doe", Email: "jane.doe@example.com", Role: user.RoleInstructor},
		{ID: 3, Username: "aliaa", Password: "aliaa11", FullName: "Dr. Aliaa Emad", Email: "aliaa.doe@example.com", Role: user.RoleInstructor},
		{ID: 1, Username: "studavid", Password: "password123", FullName: "David Johnson", Email: "david.johnson@example.com", Role: user.RoleLearner},
		{ID: 2, Username: "stulisa", Password: "123456", FullName: "Lisa Wong", Email: "lisa.wong@example.com", Role: user.RoleLearner},
		{ID: 3, Username: "Alia", Password: "pass123", FullName: "Alia Ahmed", Email: "aaa.wong@example.com", Role: user.RoleLearner},
	}

	seedCourses = []seedCourse{
		{instructor: "docjohn", name: "Math 101", code: "MATH101", assignment: "Algebra Homework", learner: "studavid", solution: "Algebra Homework Solution by David"},
		{instructor: "docjane", name: "Physics 101", code: "PHYS101", assignment: "Physics Lab", learner: "stulisa", solution: "Physics Lab Report by Lisa"},
		{instructor: "aliaa", name: "Statistics", code: "STAT211", assignment: "Statistics Project", learner: "Alia", solution: "Statistics Project by AAA"},
	}
)

// Seed loads the demo dataset: three instructors, three learners and one course per instructor,
// each with one assignment and one learner's submitted solution.
func Seed(dir classroom.Directory) error {
	for _, acc := range seedAccounts {
		m, err := classroom.NewMember(acc)
		if err != nil {
			return errors.Wrapf(err, "seeding %s", acc.Username)
		}
		if err := dir.CreateMember(m); err != nil {
			return errors.Wrapf(err, "seeding %s", acc.Username)
		}
	}

	for _, sc := range seedCourses {
		instr, err := seedMember(dir, sc.instructor)
		if err != nil {
			return err
		}
		lrn, err := seedMember(dir, sc.learner)
		if err != nil {
			return err
		}
		doc, ok := instr.(*classroom.Instructor)
		if !ok {
			return errors.Errorf("seeding %s: %s is not an instructor", sc.code, sc.instructor)
		}
		stu, ok := lrn.(*classroom.Learner)
		if !ok {
			return errors.Errorf("seeding %s: %s is not a learner", sc.code, sc.learner)
		}

		err = dir.Atomically(func() error {
			c := doc.CreateCourse(sc.name, sc.code)
			stu.RegisterCourse(c)
			stu.SubmitSolution(c.CreateAssignment(sc.assignment), sc.solution)
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "seeding %s", sc.code)
		}
	}
	return nil
}

func seedMember(dir classroom.Directory, username string) (classroom.Member, error) {
	m, err := dir.GetMemberByUsername(username)
	if err != nil {
		return nil, errors.Wrapf(err, "seeding %s", username)
	}
	return m, nil
}
