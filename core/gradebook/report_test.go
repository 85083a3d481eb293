package gradebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func TestCountGradesByCourse(t *testing.T) {
	score := func(id int, title string, semester int, value null.Int) CourseScore {
		return CourseScore{CourseID: id, Title: title, Semester: semester, Value: value}
	}

	tests := []struct {
		name   string
		scores []CourseScore
		want   []CourseGradeCount
	}{
		{name: "no scores", want: []CourseGradeCount{}},
		{
			name: "grouped and ordered",
			scores: []CourseScore{
				score(2, "Zoology", 1, null.IntFrom(10)),
				score(1, "Art", 2, null.IntFrom(95)),
				score(2, "Zoology", 1, null.IntFrom(91)),
				score(2, "Zoology", 1, null.IntFrom(20)),
				score(1, "Art", 2, null.IntFrom(-3)),
				score(3, "Art", 1, null.Int{}),
			},
			want: []CourseGradeCount{
				{CourseID: 3, Title: "Art", Semester: 1, Grade: GradeNA, Count: 1},
				{CourseID: 2, Title: "Zoology", Semester: 1, Grade: GradeA, Count: 1},
				{CourseID: 2, Title: "Zoology", Semester: 1, Grade: GradeF, Count: 2},
				{CourseID: 1, Title: "Art", Semester: 2, Grade: GradeA, Count: 1},
				{CourseID: 1, Title: "Art", Semester: 2, Grade: GradeNA, Count: 1},
			},
		},
		{
			name: "same title and semester, different courses",
			scores: []CourseScore{
				score(7, "Math", 1, null.IntFrom(70)),
				score(4, "Math", 1, null.IntFrom(70)),
			},
			want: []CourseGradeCount{
				{CourseID: 4, Title: "Math", Semester: 1, Grade: GradeD, Count: 1},
				{CourseID: 7, Title: "Math", Semester: 1, Grade: GradeD, Count: 1},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountGradesByCourse(tt.scores))
		})
	}
}

func TestCountGradesByStudentSemester(t *testing.T) {
	scores := []StudentSemesterScore{
		{StudentID: 1, StudentName: "Bob", Semester: 2, Value: null.IntFrom(60)},
		{StudentID: 2, StudentName: "Alice", Semester: 1, Value: null.IntFrom(40)},
		{StudentID: 1, StudentName: "Bob", Semester: 1, Value: null.IntFrom(83)},
		{StudentID: 2, StudentName: "Alice", Semester: 1, Value: null.IntFrom(99)},
		{StudentID: 2, StudentName: "Alice", Semester: 1, Value: null.IntFrom(45)},
	}
	want := []StudentSemesterGradeCount{
		{StudentID: 2, StudentName: "Alice", Semester: 1, Grade: GradeA, Count: 1},
		{StudentID: 2, StudentName: "Alice", Semester: 1, Grade: GradeFX, Count: 2},
		{StudentID: 1, StudentName: "Bob", Semester: 1, Grade: GradeB, Count: 1},
		{StudentID: 1, StudentName: "Bob", Semester: 2, Grade: GradeE, Count: 1},
	}
	assert.Equal(t, want, CountGradesByStudentSemester(scores))
	assert.Equal(t, []StudentSemesterGradeCount{}, CountGradesByStudentSemester(nil))
}
