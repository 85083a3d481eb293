package gradebook

import (
	"sort"

	"github.com/volatiletech/null/v8"
)

// CourseScore is one grade value of a course, as read from the store.
type CourseScore struct {
	CourseID int      `db:"course_id"`
	Title    string   `db:"title"`
	Semester int      `db:"semester"`
	Value    null.Int `db:"value"`
}

// StudentSemesterScore is one grade value of a student in a semester, as read from the store.
type StudentSemesterScore struct {
	StudentID   int      `db:"student_id"`
	StudentName string   `db:"student_name"`
	Semester    int      `db:"semester"`
	Value       null.Int `db:"value"`
}

// CountGradesByCourse buckets scores with Classify and counts them per (course, grade).
// Only pairs with at least one score are returned, ordered by semester, title, then grade rank.
func CountGradesByCourse(scores []CourseScore) []CourseGradeCount {
	type key struct {
		courseID int
		grade    Grade
	}

	idx := make(map[key]int)
	counts := make([]CourseGradeCount, 0)
	for _, s := range scores {
		k := key{courseID: s.CourseID, grade: ClassifyNull(s.Value)}
		if i, ok := idx[k]; ok {
			counts[i].Count++
			continue
		}
		idx[k] = len(counts)
		counts = append(counts, CourseGradeCount{
			CourseID: s.CourseID,
			Title:    s.Title,
			Semester: s.Semester,
			Grade:    k.grade,
			Count:    1,
		})
	}

	sort.Slice(counts, func(i, j int) bool {
		a, b := counts[i], counts[j]
		switch {
		case a.Semester != b.Semester:
			return a.Semester < b.Semester
		case a.Title != b.Title:
			return a.Title < b.Title
		case a.CourseID != b.CourseID:
			return a.CourseID < b.CourseID
		}
		return a.Grade.Rank() < b.Grade.Rank()
	})
	return counts
}

// CountGradesByStudentSemester buckets scores with Classify and counts them per
// (student, semester, grade). Ordered by student name, semester, then grade rank.
func CountGradesByStudentSemester(scores []StudentSemesterScore) []StudentSemesterGradeCount {
	type key struct {
		studentID int
		semester  int
		grade     Grade
	}

	idx := make(map[key]int)
	counts := make([]StudentSemesterGradeCount, 0)
	for _, s := range scores {
		k := key{studentID: s.StudentID, semester: s.Semester, grade: ClassifyNull(s.Value)}
		if i, ok := idx[k]; ok {
			counts[i].Count++
			continue
		}
		idx[k] = len(counts)
		counts = append(counts, StudentSemesterGradeCount{
			StudentID:   s.StudentID,
			StudentName: s.StudentName,
			Semester:    s.Semester,
			Grade:       k.grade,
			Count:       1,
		})
	}

	sort.Slice(counts, func(i, j int) bool {
		a, b := counts[i], counts[j]
		switch {
		case a.StudentName != b.StudentName:
			return a.StudentName < b.StudentName
		case a.StudentID != b.StudentID:
			return a.StudentID < b.StudentID
		case a.Semester != b.Semester:
			return a.Semester < b.Semester
		}
		return a.Grade.Rank() < b.Grade.Rank()
	})
	return counts
}
