// Package session tracks who is signed in and hands out the command set of their role.
package session

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/classroom"
	"github.com/trezcool/lms/core/user"
)

type State int

const (
	Anonymous State = iota
	AuthenticatedInstructor
	AuthenticatedLearner
	AuthenticatedAssistant
	Closed
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case AuthenticatedInstructor:
		return "instructor"
	case AuthenticatedLearner:
		return "learner"
	case AuthenticatedAssistant:
		return "assistant"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

var (
	// errors
	ErrAuthFailure     = errors.New("invalid username or password")
	ErrAlreadySignedIn = errors.New("already signed in")
	ErrSignedIn        = errors.New("sign out before shutting down")
	ErrSignedOut       = errors.New("signed out")
	ErrClosed          = errors.New("session closed")
)

// Session is the single interactive session over a Directory.
// It is not safe for concurrent use.
type Session struct {
	ID      uuid.UUID
	dir     classroom.Directory
	log     core.Logger
	current classroom.Member
	desk    Desk
	closed  bool
}

func New(dir classroom.Directory, logger core.Logger) *Session {
	return &Session{
		ID:  uuid.New(),
		dir: dir,
		log: logger,
	}
}

func (s *Session) State() State {
	switch {
	case s.closed:
		return Closed
	case s.current == nil:
		return Anonymous
	}
	switch s.current.(type) {
	case *classroom.Instructor:
		return AuthenticatedInstructor
	case *classroom.Learner:
		return AuthenticatedLearner
	default:
		return AuthenticatedAssistant
	}
}

// Current returns the signed-in member, or nil.
func (s *Session) Current() classroom.Member { return s.current }

// Desk returns the command set of the signed-in member, or nil.
func (s *Session) Desk() Desk { return s.desk }

func (s *Session) fields(kv ...interface{}) map[string]interface{} {
	flds := map[string]interface{}{"session": s.ID.String()}
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			flds[k] = kv[i+1]
		}
	}
	return flds
}

func (s *Session) checkUniqueness(uname string) error {
	if err := s.dir.CheckUsernameUniqueness(uname); err != nil {
		if err == user.ErrUsernameExists {
			return core.NewValidationError(err, core.FieldError{Field: "username", Error: err.Error()})
		}
		return err
	}
	return nil
}

// SignUp creates a new member. It does not sign them in.
func (s *Session) SignUp(nu user.NewUser) (classroom.Member, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if err := nu.Validate(); err != nil {
		s.log.Warn("sign-up rejected", err, s.fields("username", nu.Username))
		return nil, err
	}
	if err := s.checkUniqueness(nu.Username); err != nil {
		s.log.Warn("sign-up rejected", err, s.fields("username", nu.Username))
		return nil, err
	}

	m, err := classroom.NewMember(nu.Account())
	if err != nil {
		return nil, err
	}
	if err := s.dir.CreateMember(m); err != nil {
		if err == user.ErrUsernameExists {
			return nil, core.NewValidationError(err, core.FieldError{Field: "username", Error: err.Error()})
		}
		return nil, errors.Wrap(err, "creating member")
	}
	s.log.Info("signed up", m.Profile(), s.fields())
	return m, nil
}

// SignIn authenticates username with password and returns the member's desk.
// On failure the session stays anonymous.
func (s *Session) SignIn(username, password string) (Desk, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.current != nil {
		return nil, ErrAlreadySignedIn
	}

	m, err := s.dir.GetMemberByUsername(username)
	if err != nil && err != user.ErrNotFound {
		return nil, errors.Wrap(err, "looking up member")
	}
	if m == nil || !m.Profile().CheckPassword(password) {
		s.log.Warn("sign-in failed", ErrAuthFailure, s.fields("username", username))
		return nil, ErrAuthFailure
	}

	s.current = m
	s.desk = newDesk(s, m)
	s.log.Info("signed in", m.Profile(), s.fields("state", s.State().String()))
	return s.desk, nil
}

// SignOut returns the session to anonymous. Signing out twice is a no-op.
func (s *Session) SignOut() {
	if s.current == nil {
		return
	}
	s.log.Info("signed out", s.current.Profile(), s.fields())
	s.current = nil
	s.desk = nil
}

// Shutdown closes an anonymous session for good.
func (s *Session) Shutdown() error {
	if s.closed {
		return nil
	}
	if s.current != nil {
		return ErrSignedIn
	}
	s.closed = true
	s.log.Info("session closed", s.fields())
	return nil
}
