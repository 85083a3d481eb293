package gradebook

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/gradebook/core"
)

// stubRepository returns err from every write and empty results from every read.
type stubRepository struct {
	Repository
	err error
}

func (r stubRepository) CreatePoint(context.Context, PointInput) (Point, error) {
	return Point{}, r.err
}

func (r stubRepository) UpdatePoint(context.Context, int, PointInput) (Point, error) {
	return Point{}, r.err
}

func (r stubRepository) PointsForStudent(context.Context, int) (StudentPoints, error) {
	return StudentPoints{}, r.err
}

func (r stubRepository) RatingForCourse(context.Context, int) (CourseRating, error) {
	return CourseRating{}, r.err
}

func TestService_writes(t *testing.T) {
	ctx := context.Background()
	storageErr := errors.New("database is locked")

	tests := []struct {
		name       string
		repoErr    error
		wantCause  error
		wantFields []core.FieldError
	}{
		{name: "ok"},
		{name: "missing student", repoErr: ErrStudentNotFound, wantFields: []core.FieldError{{Field: "student_id", Error: "student not found"}}},
		{name: "missing course", repoErr: errors.Wrap(ErrCourseNotFound, "ctx"), wantFields: []core.FieldError{{Field: "course_id", Error: "course not found"}}},
		{name: "storage fault", repoErr: storageErr, wantCause: storageErr},
	}
	for _, tt := range tests {
		svc := NewService(stubRepository{err: tt.repoErr})

		t.Run(tt.name, func(t *testing.T) {
			for _, write := range []func() error{
				func() error { _, err := svc.CreatePoint(ctx, PointInput{}); return err },
				func() error { _, err := svc.UpdatePoint(ctx, 1, PointInput{}); return err },
			} {
				err := write()
				switch {
				case tt.wantFields != nil:
					vErr, ok := err.(*core.ValidationError)
					if assert.True(t, ok, "want *core.ValidationError, got %v", err) {
						assert.Equal(t, tt.wantFields, vErr.Fields)
					}
				case tt.wantCause != nil:
					assert.Equal(t, tt.wantCause, errors.Cause(err))
				default:
					assert.NoError(t, err)
				}
			}
		})
	}
}

func TestService_UpdatePoint_notFound(t *testing.T) {
	svc := NewService(stubRepository{err: errors.Wrap(ErrPointNotFound, "updating")})
	_, err := svc.UpdatePoint(context.Background(), 1, PointInput{})
	assert.Equal(t, ErrPointNotFound, err)
}

func TestService_missingEntities(t *testing.T) {
	ctx := context.Background()
	svc := NewService(stubRepository{})

	_, err := svc.PointsForStudent(ctx, 1)
	assert.Equal(t, ErrStudentNotFound, err)

	_, err = svc.RatingForCourse(ctx, 1)
	assert.Equal(t, ErrCourseNotFound, err)
}
