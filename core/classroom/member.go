package classroom

import (
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core/user"
)

// Member is a signed-up account together with its role-specific state.
// It is implemented by *Instructor, *Learner and *Assistant only.
type Member interface {
	Profile() user.Account
	member()
}

// Instructor owns courses and grades their assignments.
type Instructor struct {
	user.Account
	courses map[string]*Course
}

// Learner enrolls in courses and submits solutions.
type Learner struct {
	user.Account
	enrollments map[string]*Course
}

// Assistant has read-only access to the course catalogue.
type Assistant struct {
	user.Account
}

var (
	_ Member = (*Instructor)(nil)
	_ Member = (*Learner)(nil)
	_ Member = (*Assistant)(nil)
)

// NewMember builds the Member variant matching acc.Role.
func NewMember(acc user.Account) (Member, error) {
	switch acc.Role {
	case user.RoleInstructor:
		return NewInstructor(acc), nil
	case user.RoleLearner:
		return NewLearner(acc), nil
	case user.RoleAssistant:
		return NewAssistant(acc), nil
	default:
		return nil, errors.Wrapf(user.ErrInvalidRole, "%q", acc.Role)
	}
}

func NewInstructor(acc user.Account) *Instructor {
	acc.Role = user.RoleInstructor
	return &Instructor{Account: acc, courses: make(map[string]*Course)}
}

func NewLearner(acc user.Account) *Learner {
	acc.Role = user.RoleLearner
	return &Learner{Account: acc, enrollments: make(map[string]*Course)}
}

func NewAssistant(acc user.Account) *Assistant {
	acc.Role = user.RoleAssistant
	return &Assistant{Account: acc}
}

func (i *Instructor) Profile() user.Account { return i.Account }
func (l *Learner) Profile() user.Account    { return l.Account }
func (a *Assistant) Profile() user.Account  { return a.Account }

func (*Instructor) member() {}
func (*Learner) member()    {}
func (*Assistant) member()  {}
