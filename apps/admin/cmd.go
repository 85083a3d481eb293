package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/gradebook"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	dbConf   core.DatabaseConfig
	db       *sqlx.DB
	repo     gradebook.Repository
	validate *validator.Validate
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS]                 - run a goose command (up, down, status, version, redo, reset, up-to, down-to, ...)")
	fmt.Println("  createdb                               - create the postgres role and database if they do not exist")
	fmt.Println("  addstudent -name NAME                  - add a student")
	fmt.Println("  addcourse -title TITLE -semester N     - add a course")
	fmt.Println("  seed -file FILE                        - load students, courses and points from a YAML file")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ExitOnError)
	addStudentName := addStudentCmd.String("name", "", "The student's full name.")

	addCourseCmd := flag.NewFlagSet("addcourse", flag.ExitOnError)
	addCourseTitle := addCourseCmd.String("title", "", "The course title.")
	addCourseSemester := addCourseCmd.Int("semester", 0, "The semester the course is taught in (1, 2, ...).")

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedFile := seedCmd.String("file", "", "Path to the YAML fixtures.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "createdb":
		return cli.createDB()
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStudentName == "" {
			addStudentCmd.Usage()
			return errHelp
		}
		return cli.addStudent(*addStudentName)
	case "addcourse":
		if err := addCourseCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addCourseTitle == "" {
			addCourseCmd.Usage()
			return errHelp
		}
		return cli.addCourse(*addCourseTitle, *addCourseSemester)
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *seedFile == "" {
			seedCmd.Usage()
			return errHelp
		}
		return cli.seed(*seedFile)
	default:
		cli.printUsage()
		return errHelp
	}
}
