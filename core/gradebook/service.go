package gradebook

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
)

var (
	// errors
	ErrStudentNotFound = errors.New("student not found")
	ErrCourseNotFound  = errors.New("course not found")
	ErrPointNotFound   = errors.New("point not found")
)

type (
	Repository interface {
		CountPoints(ctx context.Context) (int, error)
		ListStudents(ctx context.Context) ([]Student, error)
		ListCourses(ctx context.Context) ([]Course, error)
		CreateStudent(ctx context.Context, ns NewStudent) (Student, error)
		CreateCourse(ctx context.Context, nc NewCourse) (Course, error)

		// ListAllPoints orders rows by student name, semester, course title.
		ListAllPoints(ctx context.Context) ([]PointRow, error)
		GetPoint(ctx context.Context, id int) (Point, error)
		GetPointRow(ctx context.Context, id int) (PointRow, error)
		// PointsForStudent returns a nil Student (and no error) when the student does not exist.
		PointsForStudent(ctx context.Context, studentID int) (StudentPoints, error)
		// RatingForCourse returns a nil Course (and no error) when the course does not exist.
		RatingForCourse(ctx context.Context, courseID int) (CourseRating, error)

		// CreatePoint and UpdatePoint fail with ErrStudentNotFound or ErrCourseNotFound
		// when the referenced rows do not exist.
		CreatePoint(ctx context.Context, in PointInput) (Point, error)
		UpdatePoint(ctx context.Context, id int, in PointInput) (Point, error)
		// DeletePoint is a no-op when the point does not exist.
		DeletePoint(ctx context.Context, id int) error

		AverageByCourse(ctx context.Context) ([]CourseAverage, error)
		ECTSHistogramByCourse(ctx context.Context) ([]CourseGradeCount, error)
		ECTSHistogramByStudentSemester(ctx context.Context) ([]StudentSemesterGradeCount, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// trapReferenceErr turns a missing student/course reference into a field level validation error.
func (svc *Service) trapReferenceErr(err error, msg string) error {
	var field string
	switch errors.Cause(err) {
	case ErrStudentNotFound:
		field = "student_id"
	case ErrCourseNotFound:
		field = "course_id"
	default:
		return errors.Wrap(err, msg)
	}
	cause := errors.Cause(err)
	return core.NewValidationError(cause, core.FieldError{Field: field, Error: cause.Error()})
}

func (svc *Service) CountPoints(ctx context.Context) (int, error) {
	return svc.repo.CountPoints(ctx)
}

func (svc *Service) ListStudents(ctx context.Context) ([]Student, error) {
	return svc.repo.ListStudents(ctx)
}

func (svc *Service) ListCourses(ctx context.Context) ([]Course, error) {
	return svc.repo.ListCourses(ctx)
}

func (svc *Service) CreateStudent(ctx context.Context, ns NewStudent) (Student, error) {
	return svc.repo.CreateStudent(ctx, ns)
}

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	return svc.repo.CreateCourse(ctx, nc)
}

func (svc *Service) ListAllPoints(ctx context.Context) ([]PointRow, error) {
	return svc.repo.ListAllPoints(ctx)
}

func (svc *Service) GetPoint(ctx context.Context, id int) (Point, error) {
	return svc.repo.GetPoint(ctx, id)
}

func (svc *Service) GetPointRow(ctx context.Context, id int) (PointRow, error) {
	return svc.repo.GetPointRow(ctx, id)
}

func (svc *Service) PointsForStudent(ctx context.Context, studentID int) (StudentPoints, error) {
	sp, err := svc.repo.PointsForStudent(ctx, studentID)
	if err != nil {
		return StudentPoints{}, err
	}
	if sp.Student == nil {
		return StudentPoints{}, ErrStudentNotFound
	}
	return sp, nil
}

func (svc *Service) RatingForCourse(ctx context.Context, courseID int) (CourseRating, error) {
	cr, err := svc.repo.RatingForCourse(ctx, courseID)
	if err != nil {
		return CourseRating{}, err
	}
	if cr.Course == nil {
		return CourseRating{}, ErrCourseNotFound
	}
	return cr, nil
}

func (svc *Service) CreatePoint(ctx context.Context, in PointInput) (Point, error) {
	p, err := svc.repo.CreatePoint(ctx, in)
	if err != nil {
		return Point{}, svc.trapReferenceErr(err, "creating point")
	}
	return p, nil
}

func (svc *Service) UpdatePoint(ctx context.Context, id int, in PointInput) (Point, error) {
	p, err := svc.repo.UpdatePoint(ctx, id, in)
	if err != nil {
		if errors.Cause(err) == ErrPointNotFound {
			return Point{}, ErrPointNotFound
		}
		return Point{}, svc.trapReferenceErr(err, "updating point")
	}
	return p, nil
}

func (svc *Service) DeletePoint(ctx context.Context, id int) error {
	return svc.repo.DeletePoint(ctx, id)
}

func (svc *Service) AverageByCourse(ctx context.Context) ([]CourseAverage, error) {
	return svc.repo.AverageByCourse(ctx)
}

func (svc *Service) ECTSHistogramByCourse(ctx context.Context) ([]CourseGradeCount, error) {
	return svc.repo.ECTSHistogramByCourse(ctx)
}

func (svc *Service) ECTSHistogramByStudentSemester(ctx context.Context) ([]StudentSemesterGradeCount, error) {
	return svc.repo.ECTSHistogramByStudentSemester(ctx)
}
