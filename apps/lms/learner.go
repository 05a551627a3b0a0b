package main

import (
	"github.com/trezcool/lms/core/session"
)

func (cli *commandLine) learnerMenu(desk *session.LearnerDesk) error {
	choice, err := cli.choose("Please Make a Choice:", "Register in Course", "List My Courses", "View a Course", "Grades Report", "Log Out")
	if err != nil {
		return err
	}
	switch choice {
	case "1":
		return cli.register(desk)
	case "2":
		views, err := desk.MyCourses()
		if err != nil {
			cli.fail(err)
			return nil
		}
		if len(views) == 0 {
			cli.println("You are not registered in any course.")
		}
		for _, v := range views {
			cli.printf("Course Name: %s, Code: %s, Taught by: %s\n", v.Name, v.Code, v.InstructorName)
			for _, g := range v.Grades {
				cli.printf("  Assignment: %s, Grade: %s\n", g.Name, formatGrade(g.Grade))
			}
		}
	case "3":
		code, err := cli.prompt("Course Code: ")
		if err != nil {
			return err
		}
		return cli.enrolledCourseMenu(desk, code)
	case "4":
		report, err := desk.GradesReport()
		if err != nil {
			cli.fail(err)
			return nil
		}
		if len(report) == 0 {
			cli.println("You are not registered in any course.")
		}
		for _, line := range report {
			cli.printf("Course: %s - Total Assignments: %d - Total Grade: %d\n", line.CourseCode, line.AssignmentCount, line.TotalGrade)
		}
	case "5":
		desk.SignOut()
	default:
		cli.invalidChoice()
	}
	return nil
}

func (cli *commandLine) register(desk *session.LearnerDesk) error {
	courses, err := desk.AvailableCourses()
	if err != nil {
		cli.fail(err)
		return nil
	}
	if len(courses) == 0 {
		cli.println("No courses available.")
		return nil
	}
	for _, c := range courses {
		cli.printf("%s: %s\n", c.Code, c.Name)
	}
	code, err := cli.prompt("Enter course code to register: ")
	if err != nil {
		return err
	}
	info, err := desk.Register(code)
	if err != nil {
		cli.fail(err)
		return nil
	}
	cli.success("Successfully registered in %s", info.Name)
	return nil
}

// enrolledCourseMenu shows one enrolled course until the learner goes back or unregisters.
func (cli *commandLine) enrolledCourseMenu(desk *session.LearnerDesk, code string) error {
	sum, err := desk.ViewCourse(code)
	if err != nil {
		cli.fail(err)
		return nil
	}
	code = sum.Code
	cli.printSummary(sum)

	for {
		choice, err := cli.choose("Please Make a Choice:", "Unregister from Course", "Submit Assignment Solution", "Back")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			if err := desk.Unregister(code); err != nil {
				cli.fail(err)
				continue
			}
			cli.success("You have been unregistered from %s.", code)
			return nil
		case "2":
			name, err := cli.prompt("Enter assignment name: ")
			if err != nil {
				return err
			}
			text, err := cli.prompt("Enter solution text: ")
			if err != nil {
				return err
			}
			if err := desk.Submit(code, name, text); err != nil {
				cli.fail(err)
				continue
			}
			cli.success("Solution submitted.")
		case "3":
			return nil
		default:
			cli.invalidChoice()
		}
	}
}
