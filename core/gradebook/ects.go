package gradebook

import "github.com/volatiletech/null/v8"

// Grade is an ECTS letter grade.
type Grade string

// ECTS grades
const (
	GradeA  Grade = "A"
	GradeB  Grade = "B"
	GradeC  Grade = "C"
	GradeD  Grade = "D"
	GradeE  Grade = "E"
	GradeFX Grade = "FX"
	GradeF  Grade = "F"
	GradeNA Grade = "N/A"
)

type gradeBand struct {
	grade    Grade
	min, max int // inclusive
}

// gradeBands are ordered by rank; they cover 0..100 without overlap.
var gradeBands = [...]gradeBand{
	{GradeA, 90, 100},
	{GradeB, 82, 89},
	{GradeC, 75, 81},
	{GradeD, 67, 74},
	{GradeE, 60, 66},
	{GradeFX, 35, 59},
	{GradeF, 0, 34},
}

// Grades lists all grades by rank, N/A last.
var Grades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeE, GradeFX, GradeF, GradeNA}

// Classify maps a score to its ECTS grade. Scores outside 0..100 are N/A.
func Classify(value int) Grade {
	for _, b := range gradeBands {
		if value >= b.min && value <= b.max {
			return b.grade
		}
	}
	return GradeNA
}

// ClassifyNull is Classify for a nullable score; a missing score is N/A.
func ClassifyNull(value null.Int) Grade {
	if !value.Valid {
		return GradeNA
	}
	return Classify(value.Int)
}

// Rank orders grades for reports: A=1 ... F=7, anything else 8.
func (g Grade) Rank() int {
	for i, b := range gradeBands {
		if b.grade == g {
			return i + 1
		}
	}
	return len(gradeBands) + 1
}

func (g Grade) String() string { return string(g) }
