package main

import (
	"context"
	"fmt"

	"github.com/trezcool/gradebook/core/gradebook"
)

func (cli *commandLine) addStudent(name string) error {
	ns := gradebook.NewStudent{Name: name}
	if err := ns.Validate(cli.validate); err != nil {
		return err
	}
	st, err := cli.repo.CreateStudent(context.Background(), ns)
	if err != nil {
		return err
	}
	fmt.Printf("student %q created (id: %d)\n", st.Name, st.ID)
	return nil
}

func (cli *commandLine) addCourse(title string, semester int) error {
	nc := gradebook.NewCourse{Title: title, Semester: semester}
	if err := nc.Validate(cli.validate); err != nil {
		return err
	}
	c, err := cli.repo.CreateCourse(context.Background(), nc)
	if err != nil {
		return err
	}
	fmt.Printf("course %q (semester %d) created (id: %d)\n", c.Title, c.Semester, c.ID)
	return nil
}
