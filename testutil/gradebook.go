package testutil

import (
	"context"
	"testing"

	"github.com/trezcool/gradebook/core/gradebook"
)

func CreateStudent(t *testing.T, repo gradebook.Repository, name string) gradebook.Student {
	t.Helper()
	st, err := repo.CreateStudent(context.Background(), gradebook.NewStudent{Name: name})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return st
}

func CreateCourse(t *testing.T, repo gradebook.Repository, title string, semester int) gradebook.Course {
	t.Helper()
	c, err := repo.CreateCourse(context.Background(), gradebook.NewCourse{Title: title, Semester: semester})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return c
}

func CreatePoint(t *testing.T, repo gradebook.Repository, st gradebook.Student, c gradebook.Course, value int) gradebook.Point {
	t.Helper()
	p, err := repo.CreatePoint(context.Background(), gradebook.PointInput{StudentID: st.ID, CourseID: c.ID, Value: value})
	if err != nil {
		t.Fatalf("CreatePoint() failed: %v", err)
	}
	return p
}
