package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/gradebook/core/gradebook"
)

type (
	fixtures struct {
		Students []gradebook.NewStudent `yaml:"students"`
		Courses  []gradebook.NewCourse  `yaml:"courses"`
		Points   []pointFixture         `yaml:"points"`
	}

	// pointFixture references its student by name and its course by title and semester.
	pointFixture struct {
		Student  string `yaml:"student"`
		Course   string `yaml:"course"`
		Semester int    `yaml:"semester"`
		Value    int    `yaml:"value"`
	}

	courseKey struct {
		title    string
		semester int
	}
)

func loadFixtures(path string) (fixtures, error) {
	var fx fixtures
	data, err := os.ReadFile(path)
	if err != nil {
		return fx, errors.Wrap(err, "reading fixtures")
	}
	if err = yaml.Unmarshal(data, &fx); err != nil {
		return fx, errors.Wrap(err, "decoding fixtures")
	}
	return fx, nil
}

// seed loads fixtures. Students and courses that already exist (same name, same title and
// semester) are reused, so seeding twice only duplicates points.
func (cli *commandLine) seed(path string) error {
	ctx := context.Background()
	fx, err := loadFixtures(path)
	if err != nil {
		return err
	}

	students := make(map[string]int)
	existingStudents, err := cli.repo.ListStudents(ctx)
	if err != nil {
		return err
	}
	for _, st := range existingStudents {
		students[st.Name] = st.ID
	}

	courses := make(map[courseKey]int)
	existingCourses, err := cli.repo.ListCourses(ctx)
	if err != nil {
		return err
	}
	for _, c := range existingCourses {
		courses[courseKey{c.Title, c.Semester}] = c.ID
	}

	for _, ns := range fx.Students {
		if err = ns.Validate(cli.validate); err != nil {
			return errors.Wrapf(err, "student %q", ns.Name)
		}
		if _, ok := students[ns.Name]; ok {
			continue
		}
		st, err := cli.repo.CreateStudent(ctx, ns)
		if err != nil {
			return err
		}
		students[st.Name] = st.ID
	}

	for _, nc := range fx.Courses {
		if err = nc.Validate(cli.validate); err != nil {
			return errors.Wrapf(err, "course %q", nc.Title)
		}
		key := courseKey{nc.Title, nc.Semester}
		if _, ok := courses[key]; ok {
			continue
		}
		c, err := cli.repo.CreateCourse(ctx, nc)
		if err != nil {
			return err
		}
		courses[key] = c.ID
	}

	for i, pf := range fx.Points {
		studentID, ok := students[pf.Student]
		if !ok {
			return errors.Wrapf(gradebook.ErrStudentNotFound, "point #%d: %q", i+1, pf.Student)
		}
		courseID, ok := courses[courseKey{pf.Course, pf.Semester}]
		if !ok {
			return errors.Wrapf(gradebook.ErrCourseNotFound, "point #%d: %q (semester %d)", i+1, pf.Course, pf.Semester)
		}
		in := gradebook.PointInput{StudentID: studentID, CourseID: courseID, Value: pf.Value}
		if _, err = cli.repo.CreatePoint(ctx, in); err != nil {
			return err
		}
	}

	fmt.Printf("seeded %d students, %d courses, %d points\n", len(fx.Students), len(fx.Courses), len(fx.Points))
	return nil
}
