package classroom

import (
	"sort"

	"github.com/volatiletech/null/v8"
)

type (
	Assignment struct {
		Name       string
		CourseCode string
		solutions  map[int]string // learner id -> text
		grades     map[int]int    // learner id -> grade
	}

	Solution struct {
		StudentID int
		Text      string
		Grade     null.Int
	}

	GradeEntry struct {
		StudentID int
		Grade     int
	}
)

func newAssignment(name, courseCode string) *Assignment {
	return &Assignment{
		Name:       name,
		CourseCode: courseCode,
		solutions:  make(map[int]string),
		grades:     make(map[int]int),
	}
}

// SubmitSolution stores text as studentID's solution, replacing any earlier one.
func (a *Assignment) SubmitSolution(studentID int, text string) {
	a.solutions[studentID] = text
}

// SetGrade records grade for studentID, replacing any earlier one.
func (a *Assignment) SetGrade(studentID, grade int) {
	a.grades[studentID] = grade
}

func (a *Assignment) HasSubmitted(studentID int) bool {
	_, ok := a.solutions[studentID]
	return ok
}

// Solution returns studentID's solution text.
func (a *Assignment) Solution(studentID int) (string, bool) {
	text, ok := a.solutions[studentID]
	return text, ok
}

// Grade returns studentID's grade, null when not graded yet.
func (a *Assignment) Grade(studentID int) null.Int {
	if g, ok := a.grades[studentID]; ok {
		return null.IntFrom(g)
	}
	return null.Int{}
}

func (a *Assignment) Info() AssignmentInfo {
	return AssignmentInfo{
		Name:        a.Name,
		CourseCode:  a.CourseCode,
		Submissions: len(a.solutions),
		Graded:      len(a.grades),
	}
}

func (a *Assignment) SubmissionCount() int { return len(a.solutions) }
func (a *Assignment) GradedCount() int     { return len(a.grades) }

// Solutions lists every submitted solution ordered by student id.
func (a *Assignment) Solutions() []Solution {
	sols := make([]Solution, 0, len(a.solutions))
	for id, text := range a.solutions {
		sols = append(sols, Solution{StudentID: id, Text: text, Grade: a.Grade(id)})
	}
	sort.Slice(sols, func(i, j int) bool { return sols[i].StudentID < sols[j].StudentID })
	return sols
}

// Grades lists every recorded grade ordered by student id.
func (a *Assignment) Grades() []GradeEntry {
	entries := make([]GradeEntry, 0, len(a.grades))
	for id, g := range a.grades {
		entries = append(entries, GradeEntry{StudentID: id, Grade: g})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].StudentID < entries[j].StudentID })
	return entries
}
