package inmemdb

import (
	"sort"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/classroom"
	"github.com/trezcool/lms/core/user"
)

var rolePriorities = map[user.Role]int{
	user.RoleInstructor: 1,
	user.RoleLearner:    2,
	user.RoleAssistant:  3,
}

type directory struct {
	db *memberTable
}

var _ classroom.Directory = (*directory)(nil) // interface compliance check

func NewDirectory(db *DB) classroom.Directory {
	return &directory{db: db.member}
}

func (dir *directory) query() []classroom.Member {
	members := make([]classroom.Member, 0, len(dir.db.table))
	for _, m := range dir.db.table {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		pi, pj := members[i].Profile(), members[j].Profile()
		if pi.Role != pj.Role {
			return rolePriorities[pi.Role] < rolePriorities[pj.Role]
		}
		if pi.ID != pj.ID {
			return pi.ID < pj.ID
		}
		return pi.Username < pj.Username
	})
	return members
}

func (dir *directory) courses() []*classroom.Course {
	courses := make([]*classroom.Course, 0)
	for _, m := range dir.db.table {
		if instr, ok := m.(*classroom.Instructor); ok {
			courses = append(courses, instr.Courses()...)
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Code < courses[j].Code })
	return courses
}

func (dir *directory) CheckUsernameUniqueness(username string) error {
	dir.db.RLock()
	defer dir.db.RUnlock()

	if _, ok := dir.db.table[username]; ok {
		return user.ErrUsernameExists
	}
	return nil
}

func (dir *directory) CreateMember(m classroom.Member) error {
	dir.db.Lock()
	defer dir.db.Unlock()

	uname := m.Profile().Username
	if _, ok := dir.db.table[uname]; ok {
		return user.ErrUsernameExists
	}
	dir.db.table[uname] = m
	return nil
}

func (dir *directory) GetMemberByUsername(username string) (classroom.Member, error) {
	dir.db.RLock()
	defer dir.db.RUnlock()

	if m, ok := dir.db.table[username]; ok {
		return m, nil
	}
	return nil, user.ErrNotFound
}

func (dir *directory) QueryAllMembers() []classroom.Member {
	dir.db.RLock()
	defer dir.db.RUnlock()
	return dir.query()
}

func (dir *directory) CheckCourseUniqueness(code string) error {
	dir.db.RLock()
	defer dir.db.RUnlock()

	for _, c := range dir.courses() {
		if c.Code == code {
			return classroom.ErrCourseExists
		}
	}
	return nil
}

func (dir *directory) AvailableCourses() []*classroom.Course {
	dir.db.RLock()
	defer dir.db.RUnlock()
	return dir.courses()
}

func (dir *directory) GetCourse(code string) (*classroom.Course, error) {
	dir.db.RLock()
	defer dir.db.RUnlock()

	courses := dir.courses()
	codes := make([]string, 0, len(courses))
	for _, c := range courses {
		if c.Code == code {
			return c, nil
		}
		codes = append(codes, c.Code)
	}
	return nil, core.NewNotFoundError(classroom.ErrCourseNotFound, code, classroom.Suggest(code, codes))
}

func (dir *directory) Atomically(fn func() error) error {
	dir.db.Lock()
	defer dir.db.Unlock()
	return fn()
}
