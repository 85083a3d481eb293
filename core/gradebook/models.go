package gradebook

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core"
)

type Student struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Course struct {
	ID       int    `db:"id" json:"id"`
	Title    string `db:"title" json:"title"`
	Semester int    `db:"semester" json:"semester"`
}

// Point is a single grade record linking one student to one course.
type Point struct {
	ID        int `db:"id" json:"id"`
	StudentID int `db:"id_student" json:"student_id"`
	CourseID  int `db:"id_course" json:"course_id"`
	Value     int `db:"value" json:"value"`
}

// PointRow is a Point joined with its student and course.
type PointRow struct {
	ID          int    `db:"id" json:"id"`
	StudentName string `db:"student_name" json:"student_name"`
	CourseTitle string `db:"course_title" json:"course_title"`
	Semester    int    `db:"semester" json:"semester"`
	Value       int    `db:"value" json:"value"`
}

type StudentPointRow struct {
	ID          int    `db:"id" json:"id"`
	CourseTitle string `db:"course_title" json:"course_title"`
	Semester    int    `db:"semester" json:"semester"`
	Value       int    `db:"value" json:"value"`
}

// StudentPoints is a student with their grade rows. Student is nil when it does not exist.
type StudentPoints struct {
	Student *Student          `json:"student"`
	Rows    []StudentPointRow `json:"rows"`
}

type RatingRow struct {
	StudentName string `db:"student_name" json:"student_name"`
	Value       int    `db:"value" json:"value"`
}

// CourseRating is a course with its grade rows, best first. Course is nil when it does not exist.
type CourseRating struct {
	Course *Course     `json:"course"`
	Rows   []RatingRow `json:"rows"`
}

// CourseAverage holds the average score of a course; Avg is null when the course has no grades.
type CourseAverage struct {
	Title    string       `db:"title" json:"title"`
	Semester int          `db:"semester" json:"semester"`
	Avg      null.Float64 `db:"avg_value" json:"avg_value"`
	Count    int          `db:"cnt" json:"cnt"`
}

type CourseGradeCount struct {
	CourseID int    `json:"course_id"`
	Title    string `json:"title"`
	Semester int    `json:"semester"`
	Grade    Grade  `json:"ects"`
	Count    int    `json:"cnt"`
}

type StudentSemesterGradeCount struct {
	StudentID   int    `json:"student_id"`
	StudentName string `json:"student_name"`
	Semester    int    `json:"semester"`
	Grade       Grade  `json:"ects"`
	Count       int    `json:"cnt"`
}

// PointInput contains the information needed to create or overwrite a Point.
type PointInput struct {
	StudentID int
	CourseID  int
	Value     int
}

// PointForm is the raw form data of a Point, as submitted by a user.
type PointForm struct {
	StudentID string `form:"student_id" validate:"required,digits"`
	CourseID  string `form:"course_id" validate:"required,digits"`
	Value     string `form:"value" validate:"required,integer"`
}

// Parse cleans and validates the form and converts it to a PointInput.
func (pf *PointForm) Parse(validate *validator.Validate) (PointInput, error) {
	pf.StudentID = core.CleanString(pf.StudentID)
	pf.CourseID = core.CleanString(pf.CourseID)
	pf.Value = core.CleanString(pf.Value)

	if err := validate.Struct(pf); err != nil {
		return PointInput{}, err
	}

	var (
		in      PointInput
		fldErrs []core.FieldError
	)
	for _, fld := range []struct {
		name  string
		value string
		dest  *int
	}{
		{"student_id", pf.StudentID, &in.StudentID},
		{"course_id", pf.CourseID, &in.CourseID},
		{"value", pf.Value, &in.Value},
	} {
		// columns are 32-bit INTEGERs
		n, err := strconv.ParseInt(fld.value, 10, 32)
		if err != nil {
			fldErrs = append(fldErrs, core.FieldError{Field: fld.name, Error: "number out of range"})
			continue
		}
		*fld.dest = int(n)
	}
	if fldErrs != nil {
		return PointInput{}, core.NewValidationError(errors.New("invalid point"), fldErrs...)
	}
	return in, nil
}

// FormFromPoint pre-fills a PointForm with an existing Point.
func FormFromPoint(p Point) PointForm {
	return PointForm{
		StudentID: strconv.Itoa(p.StudentID),
		CourseID:  strconv.Itoa(p.CourseID),
		Value:     strconv.Itoa(p.Value),
	}
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name string `json:"name" yaml:"name" validate:"required"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	return validate.Struct(ns)
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title    string `json:"title" yaml:"title" validate:"required"`
	Semester int    `json:"semester" yaml:"semester" validate:"min=1"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	return validate.Struct(nc)
}
