package testutil

import (
	"io"
	"testing"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/classroom"
	"github.com/trezcool/lms/core/user"
	logsvc "github.com/trezcool/lms/services/logger"
	inmemdb "github.com/trezcool/lms/storage/database/inmem"
)

// PrepareDirectory returns an empty in-memory directory, loaded with the demo dataset when seed is set.
func PrepareDirectory(t *testing.T, seed bool) classroom.Directory {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("PrepareDirectory() failed: %v", err)
	}
	dir := inmemdb.NewDirectory(db)
	if seed {
		if err := inmemdb.Seed(dir); err != nil {
			t.Fatalf("PrepareDirectory() failed: %v", err)
		}
	}
	return dir
}

// Logger discards everything.
func Logger() core.Logger {
	return logsvc.NewZeroLogger(io.Discard, &core.Config{TestMode: true})
}

func CreateMember(t *testing.T, dir classroom.Directory, role user.Role, id int, uname, pwd string) classroom.Member {
	m, err := classroom.NewMember(user.Account{
		ID:       id,
		Username: uname,
		Password: pwd,
		FullName: uname,
		Email:    uname + "@test.cd",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("CreateMember() failed: %v", err)
	}
	if err := dir.CreateMember(m); err != nil {
		t.Fatalf("CreateMember() failed: %v", err)
	}
	return m
}
