package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/labstack/gommon/color"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
	"golang.org/x/term"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/classroom"
	"github.com/trezcool/lms/core/session"
	"github.com/trezcool/lms/core/user"
	inmemdb "github.com/trezcool/lms/storage/database/inmem"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf *core.Config
	dir  classroom.Directory
	sess *session.Session

	in  *bufio.Scanner
	out io.Writer
	clr *color.Color

	// fd and terminal are set when input comes from a TTY; passwords are then read unechoed.
	fd       int
	terminal bool
}

func newCommandLine(conf *core.Config, dir classroom.Directory, sess *session.Session, in io.Reader, out io.Writer) *commandLine {
	clr := color.New()
	clr.SetOutput(out)
	return &commandLine{
		conf: conf,
		dir:  dir,
		sess: sess,
		in:   bufio.NewScanner(in),
		out:  out,
		clr:  clr,
	}
}

func (cli *commandLine) printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  lms [-seed] [-no-color] - start the interactive learning management shell")
	fs.PrintDefaults()
}

func (cli *commandLine) run(args []string) error {
	fs := flag.NewFlagSet("lms", flag.ContinueOnError)
	fs.SetOutput(cli.out)
	seed := fs.Bool("seed", cli.conf.Seed, "load the demo dataset")
	noColor := fs.Bool("no-color", cli.conf.Log.NoColor, "disable coloured output")
	fs.Usage = func() { cli.printUsage(fs) }

	if len(args) > 1 {
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return errHelp
			}
			return err
		}
		if fs.NArg() > 0 {
			cli.printUsage(fs)
			return errHelp
		}
	}
	if *noColor {
		cli.clr.Disable()
	}
	if *seed {
		if err := inmemdb.Seed(cli.dir); err != nil {
			return errors.Wrap(err, "loading demo data")
		}
	}

	cli.println(cli.clr.Bold("Welcome to the Learning Management System!"))
	for {
		var err error
		switch desk := cli.sess.Desk().(type) {
		case *session.InstructorDesk:
			err = cli.instructorMenu(desk)
		case *session.LearnerDesk:
			err = cli.learnerMenu(desk)
		case *session.AssistantDesk:
			err = cli.assistantMenu(desk)
		default:
			err = cli.mainMenu()
		}
		if err != nil {
			return err
		}
	}
}

func (cli *commandLine) println(a ...interface{}) {
	fmt.Fprintln(cli.out, a...)
}

func (cli *commandLine) printf(format string, a ...interface{}) {
	fmt.Fprintf(cli.out, format, a...)
}

// prompt reads one line of input. Closed input shuts the session down.
func (cli *commandLine) prompt(label string) (string, error) {
	fmt.Fprint(cli.out, label)
	if !cli.in.Scan() {
		if err := cli.in.Err(); err != nil {
			return "", errors.Wrap(err, "reading input")
		}
		cli.println()
		return "", cli.shutdown()
	}
	return strings.TrimSpace(cli.in.Text()), nil
}

func (cli *commandLine) promptPassword(label string) (string, error) {
	if !cli.terminal {
		return cli.prompt(label)
	}
	fmt.Fprint(cli.out, label)
	pwd, err := readPasswordFunc(cli.fd)
	cli.println()
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(pwd), nil
}

func (cli *commandLine) choose(title string, options ...string) (string, error) {
	cli.printf("\n%s\n", title)
	for i, opt := range options {
		cli.printf("%d. %s\n", i+1, opt)
	}
	return cli.prompt("Enter choice: ")
}

func (cli *commandLine) invalidChoice() {
	cli.println(cli.clr.Yellow("Please Enter Valid Input"))
}

func (cli *commandLine) success(format string, a ...interface{}) {
	cli.println(cli.clr.Green(fmt.Sprintf(format, a...)))
}

// fail reports a recoverable error and keeps the shell running.
func (cli *commandLine) fail(err error) {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		for _, fld := range vErr.Fields {
			cli.println(cli.clr.Red(fmt.Sprintf("%s: %s", fld.Field, fld.Error)))
		}
		return
	}
	cli.println(cli.clr.Red("Error: " + err.Error()))
}

// shutdown signs out whoever is still signed in, closes the session and ends the shell loop.
func (cli *commandLine) shutdown() error {
	cli.sess.SignOut()
	if err := cli.sess.Shutdown(); err != nil {
		return err
	}
	cli.println("Goodbye!")
	return core.NewShutdownError("shutdown requested")
}

func (cli *commandLine) mainMenu() error {
	choice, err := cli.choose("Please Enter An Action:", "Sign In", "Sign Up", "Shutdown System")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		return cli.signIn()
	case "2":
		return cli.signUp()
	case "3":
		return cli.shutdown()
	default:
		cli.invalidChoice()
	}
	return nil
}

func (cli *commandLine) signIn() error {
	uname, err := cli.prompt("Username: ")
	if err != nil {
		return err
	}
	pwd, err := cli.promptPassword("Password: ")
	if err != nil {
		return err
	}
	desk, err := cli.sess.SignIn(uname, pwd)
	if err != nil {
		cli.fail(err)
		return nil
	}
	cli.success("\nWelcome %s. You are logged in.", desk.Member().Profile().FullName)
	return nil
}

func (cli *commandLine) signUp() error {
	var (
		nu    user.NewUser
		rawID string
	)
	fields := []struct {
		label string
		dest  *string
	}{
		{"User Type (instructor/learner/assistant): ", &nu.Role},
		{"ID: ", &rawID},
		{"Username: ", &nu.Username},
		{"Password: ", &nu.Password},
		{"Full Name: ", &nu.FullName},
		{"Email: ", &nu.Email},
	}
	for _, fld := range fields {
		val, err := cli.prompt(fld.label)
		if err != nil {
			return err
		}
		*fld.dest = val
	}

	id, err := strconv.Atoi(rawID)
	if err != nil {
		cli.fail(core.NewFormatError("id", rawID, err))
		return nil
	}
	nu.ID = id

	m, err := cli.sess.SignUp(nu)
	if err != nil {
		cli.fail(err)
		return nil
	}
	acc := m.Profile()
	cli.success("Account created for %s (%s). You can now sign in.", acc.Label(), acc.Role.Title())
	return nil
}

func (cli *commandLine) assistantMenu(desk *session.AssistantDesk) error {
	choice, err := cli.choose("Please Make a Choice:", "List Courses", "Log Out")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		courses, err := desk.ListCourses()
		if err != nil {
			cli.fail(err)
			return nil
		}
		cli.printCourses(courses)
	case "2":
		desk.SignOut()
	default:
		cli.invalidChoice()
	}
	return nil
}

func (cli *commandLine) printCourses(courses []classroom.CourseInfo) {
	if len(courses) == 0 {
		cli.println("No courses.")
		return
	}
	for _, c := range courses {
		cli.printf("Course Name: %s, Code: %s, Taught by: %s, Enrolled: %d, Assignments: %d\n",
			c.Name, c.Code, c.InstructorName, c.Enrolled, c.Assignments)
	}
}

func formatGrade(g null.Int) string {
	if !g.Valid {
		return "N/A"
	}
	return strconv.Itoa(g.Int)
}

func (cli *commandLine) printSummary(sum classroom.Summary) {
	cli.printf("Course: %s (%s) - Taught by: %s - Enrolled: %d\n", sum.Name, sum.Code, sum.InstructorName, sum.Enrolled)
	if len(sum.Assignments) == 0 {
		cli.println("No assignments.")
	}
	for _, a := range sum.Assignments {
		if a.Status == classroom.StatusNotApplicable {
			cli.printf("Assignment: %s, Submissions: %d, Graded: %d\n", a.Name, a.Submissions, a.Graded)
			continue
		}
		cli.printf("Assignment: %s, Status: %s, Grade: %s\n", a.Name, a.Status, formatGrade(a.Grade))
	}
}
