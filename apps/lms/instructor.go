package main

import (
	"fmt"

	"github.com/trezcool/lms/core/classroom"
	"github.com/trezcool/lms/core/session"
)

func (cli *commandLine) instructorMenu(desk *session.InstructorDesk) error {
	choice, err := cli.choose("Please Make a Choice:",
		"List Courses", "Create Course", "View Course", "Grade Course Submissions", "Grade Student", "Log Out")
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
		name, err := cli.prompt("Course Name: ")
		if err != nil {
			return err
		}
		code, err := cli.prompt("Course Code: ")
		if err != nil {
			return err
		}
		info, err := desk.CreateCourse(name, code)
		if err != nil {
			cli.fail(err)
			return nil
		}
		cli.success("Course %s (%s) created.", info.Name, info.Code)
	case "3":
		code, err := cli.prompt("Course Code: ")
		if err != nil {
			return err
		}
		return cli.courseMenu(desk, code)
	case "4":
		code, err := cli.prompt("Course Code: ")
		if err != nil {
			return err
		}
		return cli.gradeSubmissions(desk, code)
	case "5":
		return cli.gradeStudent(desk)
	case "6":
		desk.SignOut()
	default:
		cli.invalidChoice()
	}
	return nil
}

// courseMenu manages one course until the instructor goes back.
func (cli *commandLine) courseMenu(desk *session.InstructorDesk, code string) error {
	sum, err := desk.ViewCourse(code)
	if err != nil {
		cli.fail(err)
		return nil
	}
	code = sum.Code
	cli.printSummary(sum)

	for {
		choice, err := cli.choose("Please Make a Choice:", "List Assignments", "Create Assignment", "View Assignment", "Back")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			sum, err := desk.ViewCourse(code)
			if err != nil {
				cli.fail(err)
				return nil
			}
			cli.printSummary(sum)
		case "2":
			name, err := cli.prompt("Assignment Name: ")
			if err != nil {
				return err
			}
			info, err := desk.CreateAssignment(code, name)
			if err != nil {
				cli.fail(err)
				continue
			}
			cli.success("Assignment %s created.", info.Name)
		case "3":
			name, err := cli.prompt("Enter assignment name: ")
			if err != nil {
				return err
			}
			if err := cli.assignmentMenu(desk, code, name); err != nil {
				return err
			}
		case "4":
			return nil
		default:
			cli.invalidChoice()
		}
	}
}

func (cli *commandLine) assignmentMenu(desk *session.InstructorDesk, code, name string) error {
	if _, err := desk.ViewAssignment(code, name); err != nil {
		cli.fail(err)
		return nil
	}

	for {
		choice, err := cli.choose("Please Make a Choice:",
			"Show Info", "Show Grades Report", "List Solutions", "View Solution", "Set Grade", "Back")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			info, err := desk.ViewAssignment(code, name)
			if err != nil {
				cli.fail(err)
				continue
			}
			cli.printf("Assignment Name: %s, Course Code: %s, Submissions: %d, Graded: %d\n",
				info.Name, info.CourseCode, info.Submissions, info.Graded)
		case "2":
			grades, err := desk.AssignmentGrades(code, name)
			if err != nil {
				cli.fail(err)
				continue
			}
			if len(grades) == 0 {
				cli.println("No grades yet.")
			}
			for _, g := range grades {
				cli.printf("Student ID: %d, Grade: %d\n", g.StudentID, g.Grade)
			}
		case "3":
			sols, err := desk.ListSolutions(code, name)
			if err != nil {
				cli.fail(err)
				continue
			}
			if len(sols) == 0 {
				cli.println("No solutions yet.")
			}
			for _, sol := range sols {
				cli.printf("Student ID: %d, Solution: %s\n", sol.StudentID, sol.Text)
			}
		case "4":
			id, ok, err := cli.promptStudentID("Enter student ID to view solution: ")
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			sol, err := desk.ViewSolution(code, name, id)
			if err != nil {
				cli.fail(err)
				continue
			}
			cli.printf("Solution: %s\nGrade: %s\n", sol.Text, formatGrade(sol.Grade))
		case "5":
			id, ok, err := cli.promptStudentID("Enter student ID to set grade: ")
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			raw, err := cli.prompt("Enter grade: ")
			if err != nil {
				return err
			}
			if err := desk.SetGrade(code, name, id, raw); err != nil {
				cli.fail(err)
				continue
			}
			cli.success("Grade set.")
		case "6":
			return nil
		default:
			cli.invalidChoice()
		}
	}
}

// promptStudentID reports ok=false after telling the user about a malformed id.
func (cli *commandLine) promptStudentID(label string) (int, bool, error) {
	raw, err := cli.prompt(label)
	if err != nil {
		return 0, false, err
	}
	id, err := classroom.ParseStudentID(raw)
	if err != nil {
		cli.fail(err)
		return 0, false, nil
	}
	return id, true, nil
}

// gradeSubmissions walks every submission of a course and asks for a grade; an empty answer skips it.
func (cli *commandLine) gradeSubmissions(desk *session.InstructorDesk, code string) error {
	pending, err := desk.PendingSubmissions(code)
	if err != nil {
		cli.fail(err)
		return nil
	}
	if len(pending) == 0 {
		cli.println("No submissions to grade.")
		return nil
	}

	var graded int
	for _, p := range pending {
		for {
			raw, err := cli.prompt(fmt.Sprintf("Enter grade for student %d for assignment %s (current: %s): ",
				p.StudentID, p.AssignmentName, formatGrade(p.Current.Grade)))
			if err != nil {
				return err
			}
			if raw == "" {
				break
			}
			if err := desk.GradePending(p, raw); err != nil {
				cli.fail(err)
				continue
			}
			graded++
			break
		}
	}
	cli.success("%d of %d submissions graded.", graded, len(pending))
	return nil
}

func (cli *commandLine) gradeStudent(desk *session.InstructorDesk) error {
	code, err := cli.prompt("Course Code: ")
	if err != nil {
		return err
	}
	id, ok, err := cli.promptStudentID("Student ID: ")
	if err != nil || !ok {
		return err
	}
	raw, err := cli.prompt("Enter grade: ")
	if err != nil {
		return err
	}
	n, err := desk.GradeCourse(code, id, raw)
	if err != nil {
		cli.fail(err)
		return nil
	}
	cli.success("%d grade(s) set.", n)
	return nil
}
