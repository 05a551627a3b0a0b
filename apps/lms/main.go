package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/session"
	logsvc "github.com/trezcool/lms/services/logger"
	inmemdb "github.com/trezcool/lms/storage/database/inmem"
)

var logger core.Logger

func main() {
	conf, err := core.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
	logger = logsvc.New(os.Stderr, conf)

	// set up directory
	db, err := inmemdb.Open()
	errAndDie(err)
	dir := inmemdb.NewDirectory(db)

	// start shell
	sess := session.New(dir, logger)
	cli := newCommandLine(conf, dir, sess, os.Stdin, os.Stdout)
	cli.fd = int(os.Stdin.Fd())
	cli.terminal = term.IsTerminal(cli.fd)

	if err := cli.run(os.Args); err != nil {
		switch {
		case err == errHelp:
			os.Exit(2)
		case core.IsShutdown(err):
			logger.Info("shutdown", map[string]interface{}{"session": sess.ID.String()})
		default:
			logger.Error("shell stopped", err)
			os.Exit(1)
		}
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal("startup failed", err)
	}
}
