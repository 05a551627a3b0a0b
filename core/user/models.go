package user

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
)

type Role string

// Roles
const (
	RoleInstructor Role = "instructor"
	RoleLearner    Role = "learner"
	RoleAssistant  Role = "assistant"
)

var (
	AllRoles = []Role{RoleInstructor, RoleLearner, RoleAssistant}

	// legacy names still accepted at sign-up
	roleAliases = map[string]Role{
		"doctor":  RoleInstructor,
		"teacher": RoleInstructor,
		"student": RoleLearner,
		"ta":      RoleAssistant,
	}

	// errors
	ErrNotFound       = errors.New("user not found")
	ErrUsernameExists = errors.New("a user with this username already exists")
	ErrInvalidEmail   = errors.New("invalid email format")
	ErrInvalidRole    = errors.New("invalid user type")
	ErrInvalidUser    = errors.New("invalid user")
)

func (r Role) String() string { return string(r) }

func (r Role) Title() string {
	switch r {
	case RoleInstructor:
		return "Instructor"
	case RoleLearner:
		return "Learner"
	case RoleAssistant:
		return "Assistant"
	default:
		return "Unknown"
	}
}

// ParseRole maps a role name, or one of its legacy aliases, to a Role.
func ParseRole(s string) (Role, error) {
	s = core.CleanString(s, true /* lower */)
	for _, role := range AllRoles {
		if s == string(role) {
			return role, nil
		}
	}
	if role, ok := roleAliases[s]; ok {
		return role, nil
	}
	return "", errors.Wrapf(ErrInvalidRole, "%q", s)
}

// Account holds the identity fields shared by every kind of member.
type Account struct {
	ID       int
	Username string
	Password string
	FullName string
	Email    string
	Role     Role
}

// CheckPassword compares pwd verbatim with the stored password.
func (a Account) CheckPassword(pwd string) bool {
	return a.Password == pwd
}

// NewUser contains information needed to sign up a new member.
type NewUser struct {
	Role     string `field:"role" validate:"required,role"`
	ID       int    `field:"id" validate:"gte=0"`
	Username string `field:"username" validate:"required,notblank"`
	Password string `field:"password" validate:"required"`
	FullName string `field:"full_name" validate:"required,notblank"`
	Email    string `field:"email" validate:"required,emailshape"`
}

// Validate cleans nu and checks it, returning a *core.ValidationError on failure.
// The wrapped error is ErrInvalidEmail or ErrInvalidRole when those fields are at fault.
func (nu *NewUser) Validate() error {
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	nu.Username = core.CleanString(nu.Username)
	nu.FullName = core.CleanString(nu.FullName)
	nu.Email = core.CleanString(nu.Email)

	err := core.Validate.Struct(nu)
	if err == nil {
		return nil
	}
	fldErrs := core.FieldErrors(err)
	if fldErrs == nil {
		return err
	}

	cause := ErrInvalidUser
	for _, fe := range fldErrs {
		switch fe.Field {
		case "email":
			cause = ErrInvalidEmail
		case "role":
			if cause != ErrInvalidEmail {
				cause = ErrInvalidRole
			}
		}
	}
	return core.NewValidationError(cause, fldErrs...)
}

// Account builds the Account described by a validated NewUser.
func (nu NewUser) Account() Account {
	role, _ := ParseRole(nu.Role)
	return Account{
		ID:       nu.ID,
		Username: nu.Username,
		Password: nu.Password,
		FullName: nu.FullName,
		Email:    nu.Email,
		Role:     role,
	}
}

// Label renders the account for listings, e.g. "Dr. John Smith <docjohn>".
func (a Account) Label() string {
	return strings.TrimSpace(a.FullName) + " <" + a.Username + ">"
}
