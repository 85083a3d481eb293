package sqlxrepos

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core/gradebook"
	"github.com/trezcool/gradebook/testutil"
)

func setup(t *testing.T) *gradebookRepository {
	return NewGradebookRepository(testutil.OpenDB(t))
}

func Test_gradebookRepository_lists(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()

	bob := testutil.CreateStudent(t, repo, "Bob")
	alice := testutil.CreateStudent(t, repo, "Alice")
	db2 := testutil.CreateCourse(t, repo, "Databases", 2)
	alg := testutil.CreateCourse(t, repo, "Algebra", 2)
	prog := testutil.CreateCourse(t, repo, "Programming", 1)

	students, err := repo.ListStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []gradebook.Student{alice, bob}, students)

	courses, err := repo.ListCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []gradebook.Course{prog, alg, db2}, courses)

	p1 := testutil.CreatePoint(t, repo, bob, prog, 70)
	p2 := testutil.CreatePoint(t, repo, alice, db2, 95)
	p3 := testutil.CreatePoint(t, repo, alice, alg, 40)
	p4 := testutil.CreatePoint(t, repo, alice, prog, 81)

	rows, err := repo.ListAllPoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, []gradebook.PointRow{
		{ID: p4.ID, StudentName: "Alice", CourseTitle: "Programming", Semester: 1, Value: 81},
		{ID: p3.ID, StudentName: "Alice", CourseTitle: "Algebra", Semester: 2, Value: 40},
		{ID: p2.ID, StudentName: "Alice", CourseTitle: "Databases", Semester: 2, Value: 95},
		{ID: p1.ID, StudentName: "Bob", CourseTitle: "Programming", Semester: 1, Value: 70},
	}, rows)

	cnt, err := repo.CountPoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, cnt)
}

func Test_gradebookRepository_emptyLists(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()

	students, err := repo.ListStudents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)

	rows, err := repo.ListAllPoints(ctx)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	cnt, err := repo.CountPoints(ctx)
	require.NoError(t, err)
	assert.Zero(t, cnt)
}

func Test_gradebookRepository_PointsForStudent(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()

	st := testutil.CreateStudent(t, repo, "Alice")
	other := testutil.CreateStudent(t, repo, "Bob")
	c1 := testutil.CreateCourse(t, repo, "Physics", 3)
	c2 := testutil.CreateCourse(t, repo, "Calculus", 1)
	p1 := testutil.CreatePoint(t, repo, st, c1, 88)
	p2 := testutil.CreatePoint(t, repo, st, c2, 60)
	testutil.CreatePoint(t, repo, other, c1, 99)
	idle := testutil.CreateStudent(t, repo, "Carl")

	tests := []struct {
		name      string
		studentID int
		want      gradebook.StudentPoints
	}{
		{name: "unknown student", studentID: 9999, want: gradebook.StudentPoints{Rows: []gradebook.StudentPointRow{}}},
		{
			name:      "student without points",
			studentID: idle.ID,
			want:      gradebook.StudentPoints{Student: &idle, Rows: []gradebook.StudentPointRow{}},
		},
		{
			name:      "rows by semester",
			studentID: st.ID,
			want: gradebook.StudentPoints{
				Student: &st,
				Rows: []gradebook.StudentPointRow{
					{ID: p2.ID, CourseTitle: "Calculus", Semester: 1, Value: 60},
					{ID: p1.ID, CourseTitle: "Physics", Semester: 3, Value: 88},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.PointsForStudent(ctx, tt.studentID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_gradebookRepository_RatingForCourse(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()

	c := testutil.CreateCourse(t, repo, "Networks", 4)
	empty := testutil.CreateCourse(t, repo, "Compilers", 5)
	for _, sc := range []struct {
		name  string
		value int
	}{{"Zed", 77}, {"Amy", 90}, {"Bea", 77}} {
		testutil.CreatePoint(t, repo, testutil.CreateStudent(t, repo, sc.name), c, sc.value)
	}

	got, err := repo.RatingForCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, &c, got.Course)
	assert.Equal(t, []gradebook.RatingRow{
		{StudentName: "Amy", Value: 90},
		{StudentName: "Bea", Value: 77},
		{StudentName: "Zed", Value: 77},
	}, got.Rows)

	got, err = repo.RatingForCourse(ctx, empty.ID)
	require.NoError(t, err)
	assert.Equal(t, &empty, got.Course)
	assert.Empty(t, got.Rows)

	got, err = repo.RatingForCourse(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, got.Course)
}

func Test_gradebookRepository_pointWrites(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()

	st := testutil.CreateStudent(t, repo, "Alice")
	st2 := testutil.CreateStudent(t, repo, "Bob")
	c := testutil.CreateCourse(t, repo, "Logic", 1)

	t.Run("create then get", func(t *testing.T) {
		p, err := repo.CreatePoint(ctx, gradebook.PointInput{StudentID: st.ID, CourseID: c.ID, Value: 91})
		require.NoError(t, err)
		got, err := repo.GetPoint(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, gradebook.Point{ID: p.ID, StudentID: st.ID, CourseID: c.ID, Value: 91}, got)

		row, err := repo.GetPointRow(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, gradebook.PointRow{ID: p.ID, StudentName: "Alice", CourseTitle: "Logic", Semester: 1, Value: 91}, row)
	})

	t.Run("create with missing references", func(t *testing.T) {
		_, err := repo.CreatePoint(ctx, gradebook.PointInput{StudentID: 9999, CourseID: c.ID, Value: 50})
		assert.Equal(t, gradebook.ErrStudentNotFound, errors.Cause(err))

		_, err = repo.CreatePoint(ctx, gradebook.PointInput{StudentID: st.ID, CourseID: 9999, Value: 50})
		assert.Equal(t, gradebook.ErrCourseNotFound, errors.Cause(err))
	})

	t.Run("update", func(t *testing.T) {
		p := testutil.CreatePoint(t, repo, st, c, 10)
		updated, err := repo.UpdatePoint(ctx, p.ID, gradebook.PointInput{StudentID: st2.ID, CourseID: c.ID, Value: 66})
		require.NoError(t, err)
		assert.Equal(t, gradebook.Point{ID: p.ID, StudentID: st2.ID, CourseID: c.ID, Value: 66}, updated)

		got, err := repo.GetPoint(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("update missing point", func(t *testing.T) {
		_, err := repo.UpdatePoint(ctx, 9999, gradebook.PointInput{StudentID: st.ID, CourseID: c.ID, Value: 1})
		assert.Equal(t, gradebook.ErrPointNotFound, errors.Cause(err))

		// missing point is reported before missing references
		_, err = repo.UpdatePoint(ctx, 9999, gradebook.PointInput{StudentID: 9999, CourseID: 9999, Value: 1})
		assert.Equal(t, gradebook.ErrPointNotFound, errors.Cause(err))
	})

	t.Run("update with missing course keeps the row", func(t *testing.T) {
		p := testutil.CreatePoint(t, repo, st, c, 33)
		_, err := repo.UpdatePoint(ctx, p.ID, gradebook.PointInput{StudentID: st.ID, CourseID: 9999, Value: 1})
		assert.Equal(t, gradebook.ErrCourseNotFound, errors.Cause(err))

		got, err := repo.GetPoint(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 33, got.Value)
	})

	t.Run("delete", func(t *testing.T) {
		p := testutil.CreatePoint(t, repo, st, c, 20)
		require.NoError(t, repo.DeletePoint(ctx, p.ID))

		_, err := repo.GetPoint(ctx, p.ID)
		assert.Equal(t, gradebook.ErrPointNotFound, err)
		_, err = repo.GetPointRow(ctx, p.ID)
		assert.Equal(t, gradebook.ErrPointNotFound, err)

		// deleting twice is a no-op
		assert.NoError(t, repo.DeletePoint(ctx, p.ID))
	})
}

func Test_gradebookRepository_AverageByCourse(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()

	st := testutil.CreateStudent(t, repo, "Alice")
	st2 := testutil.CreateStudent(t, repo, "Bob")
	math := testutil.CreateCourse(t, repo, "Math", 1)
	art := testutil.CreateCourse(t, repo, "Art", 2)
	testutil.CreateCourse(t, repo, "Music", 1)
	testutil.CreatePoint(t, repo, st, math, 90)
	testutil.CreatePoint(t, repo, st2, math, 81)
	testutil.CreatePoint(t, repo, st2, math, 70)
	testutil.CreatePoint(t, repo, st, art, 50)

	avgs, err := repo.AverageByCourse(ctx)
	require.NoError(t, err)
	assert.Equal(t, []gradebook.CourseAverage{
		{Title: "Math", Semester: 1, Avg: null.Float64From(80.33), Count: 3},
		{Title: "Music", Semester: 1, Avg: null.Float64{}, Count: 0},
		{Title: "Art", Semester: 2, Avg: null.Float64From(50), Count: 1},
	}, avgs)
}

func Test_gradebookRepository_histograms(t *testing.T) {
	repo := setup(t)
	ctx := context.Background()

	alice := testutil.CreateStudent(t, repo, "Alice")
	bob := testutil.CreateStudent(t, repo, "Bob")
	c1 := testutil.CreateCourse(t, repo, "Chemistry", 1)
	c2 := testutil.CreateCourse(t, repo, "Biology", 2)
	testutil.CreateCourse(t, repo, "Empty", 1)

	testutil.CreatePoint(t, repo, alice, c1, 95)
	testutil.CreatePoint(t, repo, bob, c1, 20)
	testutil.CreatePoint(t, repo, bob, c1, 100)
	testutil.CreatePoint(t, repo, alice, c2, 120)
	testutil.CreatePoint(t, repo, alice, c2, 59)

	byCourse, err := repo.ECTSHistogramByCourse(ctx)
	require.NoError(t, err)
	assert.Equal(t, []gradebook.CourseGradeCount{
		{CourseID: c1.ID, Title: "Chemistry", Semester: 1, Grade: gradebook.GradeA, Count: 2},
		{CourseID: c1.ID, Title: "Chemistry", Semester: 1, Grade: gradebook.GradeF, Count: 1},
		{CourseID: c2.ID, Title: "Biology", Semester: 2, Grade: gradebook.GradeFX, Count: 1},
		{CourseID: c2.ID, Title: "Biology", Semester: 2, Grade: gradebook.GradeNA, Count: 1},
	}, byCourse)

	byStudent, err := repo.ECTSHistogramByStudentSemester(ctx)
	require.NoError(t, err)
	assert.Equal(t, []gradebook.StudentSemesterGradeCount{
		{StudentID: alice.ID, StudentName: "Alice", Semester: 1, Grade: gradebook.GradeA, Count: 1},
		{StudentID: alice.ID, StudentName: "Alice", Semester: 2, Grade: gradebook.GradeFX, Count: 1},
		{StudentID: alice.ID, StudentName: "Alice", Semester: 2, Grade: gradebook.GradeNA, Count: 1},
		{StudentID: bob.ID, StudentName: "Bob", Semester: 1, Grade: gradebook.GradeA, Count: 1},
		{StudentID: bob.ID, StudentName: "Bob", Semester: 1, Grade: gradebook.GradeF, Count: 1},
	}, byStudent)
}
