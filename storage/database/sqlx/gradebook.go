package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/gradebook"
)

type gradebookRepository struct {
	sess core.DBSession
}

var _ gradebook.Repository = (*gradebookRepository)(nil) // interface compliance check

// NewGradebookRepository binds a repository to a store session (usually one per request).
func NewGradebookRepository(sess core.DBSession) *gradebookRepository {
	return &gradebookRepository{sess: sess}
}

func (repo gradebookRepository) get(ctx context.Context, exec core.DBExecutor, dest interface{}, query string, args ...interface{}) error {
	return sqlx.GetContext(ctx, exec, dest, exec.Rebind(query), args...)
}

func (repo gradebookRepository) selectAll(ctx context.Context, exec core.DBExecutor, dest interface{}, query string, args ...interface{}) error {
	return sqlx.SelectContext(ctx, exec, dest, exec.Rebind(query), args...)
}

// trapNoRowsErr maps sql "no rows" err to notFoundErr
func (repo gradebookRepository) trapNoRowsErr(err error, notFoundErr error, msg string) error {
	if err == sql.ErrNoRows {
		return notFoundErr
	}
	return errors.Wrap(err, msg)
}

func (repo gradebookRepository) exists(ctx context.Context, exec core.DBExecutor, table string, id int) (bool, error) {
	var exists bool
	err := repo.get(ctx, exec, &exists, "SELECT EXISTS (SELECT 1 FROM "+table+" WHERE id = ?)", id)
	return exists, err
}

// checkReferences makes sure the student and the course of a point exist.
func (repo gradebookRepository) checkReferences(ctx context.Context, exec core.DBExecutor, in gradebook.PointInput) error {
	ok, err := repo.exists(ctx, exec, "student", in.StudentID)
	if err != nil {
		return errors.Wrap(err, "checking student")
	}
	if !ok {
		return gradebook.ErrStudentNotFound
	}

	ok, err = repo.exists(ctx, exec, "course", in.CourseID)
	if err != nil {
		return errors.Wrap(err, "checking course")
	}
	if !ok {
		return gradebook.ErrCourseNotFound
	}
	return nil
}

func (repo gradebookRepository) CountPoints(ctx context.Context) (int, error) {
	var cnt int
	if err := repo.get(ctx, repo.sess, &cnt, "SELECT COUNT(*) FROM points"); err != nil {
		return 0, errors.Wrap(err, "counting points")
	}
	return cnt, nil
}

func (repo gradebookRepository) ListStudents(ctx context.Context) ([]gradebook.Student, error) {
	students := make([]gradebook.Student, 0)
	if err := repo.selectAll(ctx, repo.sess, &students, "SELECT id, name FROM student ORDER BY name, id"); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (repo gradebookRepository) ListCourses(ctx context.Context) ([]gradebook.Course, error) {
	courses := make([]gradebook.Course, 0)
	if err := repo.selectAll(ctx, repo.sess, &courses, "SELECT id, title, semester FROM course ORDER BY semester, title, id"); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return courses, nil
}

func (repo gradebookRepository) CreateStudent(ctx context.Context, ns gradebook.NewStudent) (gradebook.Student, error) {
	st := gradebook.Student{Name: ns.Name}
	err := core.InTx(ctx, repo.sess, func(tx *sqlx.Tx) error {
		return repo.get(ctx, tx, &st.ID, "INSERT INTO student (name) VALUES (?) RETURNING id", st.Name)
	})
	if err != nil {
		return gradebook.Student{}, errors.Wrap(err, "inserting student")
	}
	return st, nil
}

func (repo gradebookRepository) CreateCourse(ctx context.Context, nc gradebook.NewCourse) (gradebook.Course, error) {
	c := gradebook.Course{Title: nc.Title, Semester: nc.Semester}
	err := core.InTx(ctx, repo.sess, func(tx *sqlx.Tx) error {
		return repo.get(ctx, tx, &c.ID, "INSERT INTO course (title, semester) VALUES (?, ?) RETURNING id", c.Title, c.Semester)
	})
	if err != nil {
		return gradebook.Course{}, errors.Wrap(err, "inserting course")
	}
	return c, nil
}

const pointRowsQuery = `
	SELECT p.id,
	       s.name  AS student_name,
	       c.title AS course_title,
	       c.semester,
	       p.value
	FROM points p
	JOIN student s ON s.id = p.id_student
	JOIN course  c ON c.id = p.id_course`

func (repo gradebookRepository) ListAllPoints(ctx context.Context) ([]gradebook.PointRow, error) {
	rows := make([]gradebook.PointRow, 0)
	q := pointRowsQuery + " ORDER BY s.name, c.semester, c.title, p.id"
	if err := repo.selectAll(ctx, repo.sess, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying points")
	}
	return rows, nil
}

func (repo gradebookRepository) GetPoint(ctx context.Context, id int) (gradebook.Point, error) {
	var p gradebook.Point
	q := "SELECT id, id_student, id_course, value FROM points WHERE id = ?"
	if err := repo.get(ctx, repo.sess, &p, q, id); err != nil {
		return gradebook.Point{}, repo.trapNoRowsErr(err, gradebook.ErrPointNotFound, "finding point by ID")
	}
	return p, nil
}

func (repo gradebookRepository) GetPointRow(ctx context.Context, id int) (gradebook.PointRow, error) {
	var row gradebook.PointRow
	if err := repo.get(ctx, repo.sess, &row, pointRowsQuery+" WHERE p.id = ?", id); err != nil {
		return gradebook.PointRow{}, repo.trapNoRowsErr(err, gradebook.ErrPointNotFound, "finding point row by ID")
	}
	return row, nil
}

func (repo gradebookRepository) PointsForStudent(ctx context.Context, studentID int) (gradebook.StudentPoints, error) {
	var st gradebook.Student
	if err := repo.get(ctx, repo.sess, &st, "SELECT id, name FROM student WHERE id = ?", studentID); err != nil {
		if err == sql.ErrNoRows {
			return gradebook.StudentPoints{Rows: []gradebook.StudentPointRow{}}, nil
		}
		return gradebook.StudentPoints{}, errors.Wrap(err, "finding student by ID")
	}

	rows := make([]gradebook.StudentPointRow, 0)
	q := `
		SELECT p.id,
		       c.title AS course_title,
		       c.semester,
		       p.value
		FROM points p
		JOIN course c ON c.id = p.id_course
		WHERE p.id_student = ?
		ORDER BY c.semester, c.title, p.id`
	if err := repo.selectAll(ctx, repo.sess, &rows, q, studentID); err != nil {
		return gradebook.StudentPoints{}, errors.Wrap(err, "querying student points")
	}
	return gradebook.StudentPoints{Student: &st, Rows: rows}, nil
}

func (repo gradebookRepository) RatingForCourse(ctx context.Context, courseID int) (gradebook.CourseRating, error) {
	var c gradebook.Course
	if err := repo.get(ctx, repo.sess, &c, "SELECT id, title, semester FROM course WHERE id = ?", courseID); err != nil {
		if err == sql.ErrNoRows {
			return gradebook.CourseRating{Rows: []gradebook.RatingRow{}}, nil
		}
		return gradebook.CourseRating{}, errors.Wrap(err, "finding course by ID")
	}

	rows := make([]gradebook.RatingRow, 0)
	q := `
		SELECT s.name AS student_name, p.value
		FROM points p
		JOIN student s ON s.id = p.id_student
		WHERE p.id_course = ?
		ORDER BY p.value DESC, s.name, p.id`
	if err := repo.selectAll(ctx, repo.sess, &rows, q, courseID); err != nil {
		return gradebook.CourseRating{}, errors.Wrap(err, "querying course rating")
	}
	return gradebook.CourseRating{Course: &c, Rows: rows}, nil
}

func (repo gradebookRepository) CreatePoint(ctx context.Context, in gradebook.PointInput) (gradebook.Point, error) {
	p := gradebook.Point{StudentID: in.StudentID, CourseID: in.CourseID, Value: in.Value}
	err := core.InTx(ctx, repo.sess, func(tx *sqlx.Tx) error {
		if err := repo.checkReferences(ctx, tx, in); err != nil {
			return err
		}
		q := "INSERT INTO points (id_course, id_student, value) VALUES (?, ?, ?) RETURNING id"
		return errors.Wrap(repo.get(ctx, tx, &p.ID, q, in.CourseID, in.StudentID, in.Value), "inserting point")
	})
	if err != nil {
		return gradebook.Point{}, err
	}
	return p, nil
}

func (repo gradebookRepository) UpdatePoint(ctx context.Context, id int, in gradebook.PointInput) (gradebook.Point, error) {
	err := core.InTx(ctx, repo.sess, func(tx *sqlx.Tx) error {
		// a missing point wins over bad references
		ok, err := repo.exists(ctx, tx, "points", id)
		if err != nil {
			return errors.Wrap(err, "checking point")
		}
		if !ok {
			return gradebook.ErrPointNotFound
		}
		if err = repo.checkReferences(ctx, tx, in); err != nil {
			return err
		}

		q := "UPDATE points SET id_student = ?, id_course = ?, value = ? WHERE id = ?"
		res, err := tx.ExecContext(ctx, tx.Rebind(q), in.StudentID, in.CourseID, in.Value, id)
		if err != nil {
			return errors.Wrap(err, "updating point")
		}
		cnt, err := res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "updating point")
		}
		if cnt == 0 {
			return gradebook.ErrPointNotFound
		}
		return nil
	})
	if err != nil {
		return gradebook.Point{}, err
	}
	return gradebook.Point{ID: id, StudentID: in.StudentID, CourseID: in.CourseID, Value: in.Value}, nil
}

func (repo gradebookRepository) DeletePoint(ctx context.Context, id int) error {
	err := core.InTx(ctx, repo.sess, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM points WHERE id = ?"), id)
		return err
	})
	return errors.Wrap(err, "deleting point")
}

func (repo gradebookRepository) AverageByCourse(ctx context.Context) ([]gradebook.CourseAverage, error) {
	avgs := make([]gradebook.CourseAverage, 0)
	q := `
		SELECT c.title,
		       c.semester,
		       ROUND(AVG(p.value), 2) AS avg_value,
		       COUNT(p.id) AS cnt
		FROM course c
		LEFT JOIN points p ON p.id_course = c.id
		GROUP BY c.id, c.title, c.semester
		ORDER BY c.semester, c.title, c.id`
	if err := repo.selectAll(ctx, repo.sess, &avgs, q); err != nil {
		return nil, errors.Wrap(err, "querying course averages")
	}
	return avgs, nil
}

func (repo gradebookRepository) ECTSHistogramByCourse(ctx context.Context) ([]gradebook.CourseGradeCount, error) {
	var scores []gradebook.CourseScore
	q := `
		SELECT c.id AS course_id, c.title, c.semester, p.value
		FROM points p
		JOIN course c ON c.id = p.id_course`
	if err := repo.selectAll(ctx, repo.sess, &scores, q); err != nil {
		return nil, errors.Wrap(err, "querying course scores")
	}
	return gradebook.CountGradesByCourse(scores), nil
}

func (repo gradebookRepository) ECTSHistogramByStudentSemester(ctx context.Context) ([]gradebook.StudentSemesterGradeCount, error) {
	var scores []gradebook.StudentSemesterScore
	q := `
		SELECT s.id AS student_id, s.name AS student_name, c.semester, p.value
		FROM points p
		JOIN student s ON s.id = p.id_student
		JOIN course  c ON c.id = p.id_course`
	if err := repo.selectAll(ctx, repo.sess, &scores, q); err != nil {
		return nil, errors.Wrap(err, "querying student scores")
	}
	return gradebook.CountGradesByStudentSemester(scores), nil
}
