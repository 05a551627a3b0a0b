package inmemdb

import (
	"sync"

	"github.com/trezcool/lms/core/classroom"
)

type (
	// DB holds every member of a session. Courses hang off their instructors.
	DB struct {
		member *memberTable
	}

	memberTable struct {
		sync.RWMutex
		table map[string]classroom.Member // {username: Member}
	}
)

func Open() (*DB, error) {
	db := &DB{
		member: &memberTable{table: make(map[string]classroom.Member)},
	}
	return db, nil
}
