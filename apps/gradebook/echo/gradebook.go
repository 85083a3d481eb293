package echogradebook

import (
	"fmt"
	"net/http"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/apps/web"
	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/gradebook"
)

type gradebookApi struct {
	validate   *validator.Validate
	translator ut.Translator
}

func registerGradebookRoutes(g *echo.Group, validate *validator.Validate, translator ut.Translator) {
	api := gradebookApi{
		validate:   validate,
		translator: translator,
	}

	g.GET("/db-test", api.dbTest)

	g.GET("/points", api.listPoints)
	g.GET("/points/new", api.newPoint)
	g.POST("/points/new", api.createPoint)
	g.GET("/points/:id/edit", api.editPoint)
	g.POST("/points/:id/edit", api.updatePoint)
	g.GET("/points/:id/delete", api.confirmDeletePoint)
	g.POST("/points/:id/delete", api.deletePoint)

	g.GET("/students", api.listStudents)
	g.GET("/students/:id/points", api.studentPoints)
	g.GET("/courses", api.listCourses)
	g.GET("/courses/:id/rating", api.courseRating)

	g.GET("/stats/avg-by-course", api.avgByCourse)
	g.GET("/stats/ects-by-course", api.ectsByCourse)
	g.GET("/stats/ects-by-student-semester", api.ectsByStudentSemester)
}

// pathID reads the `:id` path param. Non integer ids cannot match any row: they are reported as not found.
func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, web.ErrHttpNotFound
	}
	return id, nil
}

// trapNotFoundErr maps domain "not found" errors to a 404.
func trapNotFoundErr(err error, msg string) error {
	switch errors.Cause(err) {
	case gradebook.ErrPointNotFound, gradebook.ErrStudentNotFound, gradebook.ErrCourseNotFound:
		return web.ErrHttpNotFound
	}
	return errors.Wrap(err, msg)
}

// Handlers

func (api *gradebookApi) dbTest(ctx echo.Context) error {
	svc, err := getContextService(ctx)
	if err != nil {
		return err
	}
	cnt, err := svc.CountPoints(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "counting points")
	}
	return ctx.String(http.StatusOK, fmt.Sprintf("Points in database: %d", cnt))
}

func (api *gradebookApi) listPoints(ctx echo.Context) error {
	svc, err := getContextService(ctx)
	if err != nil {
		return err
	}
	rows, err := svc.ListAllPoints(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing points")
	}
	return ctx.Render(http.StatusOK, "gradebook/points", echo.Map{
		"Title": "All points",
		"Rows":  rows,
	})
}

// renderPointForm renders the create/edit form with the student and course choices.
func (api *gradebookApi) renderPointForm(
	ctx echo.Context,
	svc *gradebook.Service,
	code int,
	title, action string,
	form gradebook.PointForm,
	fldErrs map[string]string,
) error {
	students, err := svc.ListStudents(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing students")
	}
	courses, err := svc.ListCourses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing courses")
	}
	if fldErrs == nil {
		fldErrs = map[string]string{}
	}
	return ctx.Render(code, "gradebook/point_form", echo.Map{
		"Title":    title,
		"Action":   action,
		"Form":     form,
		"Errors":   fldErrs,
		"Students": students,
		"Courses":  courses,
	})
}

// savePoint parses the submitted form and hands it to save. Invalid input re-renders the form.
func (api *gradebookApi) savePoint(
	ctx echo.Context,
	svc *gradebook.Service,
	title, action string,
	save func(in gradebook.PointInput) error,
) error {
	var form gradebook.PointForm
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to PointForm")
	}

	in, err := form.Parse(api.validate)
	if err == nil {
		err = save(in)
	}
	if err != nil {
		if fldErrs, ok := core.FieldErrors(err, api.translator); ok {
			return api.renderPointForm(ctx, svc, http.StatusBadRequest, title, action, form, fldErrs)
		}
		return err
	}
	return ctx.Redirect(http.StatusFound, "/points")
}

func (api *gradebookApi) newPoint(ctx echo.Context) error {
	svc, err := getContextService(ctx)
	if err != nil {
		return err
	}
	return api.renderPointForm(ctx, svc, http.StatusOK, "New point", "/points/new", gradebook.PointForm{}, nil)
}

func (api *gradebookApi) createPoint(ctx echo.Context) error {
	svc, err := getContextService(ctx)
	if err != nil {
		return err
	}
	return api.savePoint(ctx, svc, "New point", "/points/new", func(in gradebook.PointInput) error {
		_, err := svc.CreatePoint(ctx.Request().Context(), in)
		return err
	})
}

func (api *gradebookApi) editPoint(ctx echo.Context) error {
	svc, err := getContextService(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	p, err := svc.GetPoint(ctx.Request().Context(), id)
	if err != nil {
		return trapNotFoundErr(err, "getting point")
	}
	action := fmt.Sprintf("/points/%d/edit", id)
	return api.renderPointForm(ctx, svc, http.StatusOK, "Edit point", action, gradebook.FormFromPoint(p), nil)
}

func (api *gradebookApi) updatePoint(ctx echo.Context) error {
	svc, err := getContextService(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	action := fmt.Sprintf("/points/%d/edit", id)
	return api.savePoint(ctx, svc, "Edit point", action, func(in gradebook.PointInput) error {
		if _, err := svc.UpdatePoint(ctx.Request().Context(), id, in); err != nil {
			if errors.Cause(err) == gradebook.ErrPointNotFound {
				return web.ErrHttpNotFound
			}
			return err
		}
		return nil
	})
}

func (api *gradebookApi) confirmDeletePoint(ctx echo.Context) error {
	svc, err := getContextService(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	row, err := svc.GetPointRow(ctx.Request().Context(), id)
	if err != nil {
		return trapNotFoundErr(err, "getting point")
	}
	return ctx.Render(http.StatusOK, "gradebook/point_delete", echo.Map{
		"Title": "Delete point",
		"Point": row,
	})
}

func (api *gradebookApi) deletePoint(ctx echo.Context) error {
	svc, err := getContextService(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = svc.DeletePoint(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting point")
	}
	return ctx.Redirect(http.StatusFound, "/points")
}

func (api *gradebookApi) listStudents(ctx echo.Context) error {
	svc, err := getContextService(ctx)
	if err != nil {
		return err
	}
	students, err := svc.ListStudents(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing students")
	}
	return ctx.Render(http.StatusOK, "gradebook/students", echo.Map{
		"Title":    "Students",
		"Students": students,
	})
}

func (api *gradebookApi) studentPoints(ctx echo.Context) error {
	svc, err := getContextService(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	sp, err := svc.PointsForStudent(ctx.Request().Context(), id)
	if err != nil {
		return trapNotFoundErr(err, "getting student points")
	}
	return ctx.Render(http.StatusOK, "gradebook/student_points", echo.Map{
		"Title": "Points of " + sp.Student.Name,
		"Rows":  sp.Rows,
	})
}

func (api *gradebookApi) listCourses(ctx echo.Context) error {
	svc, err := getContextService(ctx)
	if err != nil {
		return err
	}
	courses, err := svc.ListCourses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing courses")
	}
	return ctx.Render(http.StatusOK, "gradebook/courses", echo.Map{
		"Title":   "Courses",
		"Courses": courses,
	})
}

func (api *gradebookApi) courseRating(ctx echo.Context) error {
	svc, err := getContextService(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	cr, err := svc.RatingForCourse(ctx.Request().Context(), id)
	if err != nil {
		return trapNotFoundErr(err, "getting course rating")
	}
	return ctx.Render(http.StatusOK, "gradebook/course_rating", echo.Map{
		"Title": fmt.Sprintf("Rating of %s (semester %d)", cr.Course.Title, cr.Course.Semester),
		"Rows":  cr.Rows,
	})
}

func (api *gradebookApi) avgByCourse(ctx echo.Context) error {
	svc, err := getContextService(ctx)
	if err != nil {
		return err
	}
	rows, err := svc.AverageByCourse(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "averaging by course")
	}
	return ctx.Render(http.StatusOK, "gradebook/avg_by_course", echo.Map{
		"Title": "Average by course",
		"Rows":  rows,
	})
}

func (api *gradebookApi) ectsByCourse(ctx echo.Context) error {
	svc, err := getContextService(ctx)
	if err != nil {
		return err
	}
	rows, err := svc.ECTSHistogramByCourse(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "counting grades by course")
	}
	return ctx.Render(http.StatusOK, "gradebook/ects_by_course", echo.Map{
		"Title": "ECTS by course",
		"Rows":  rows,
	})
}

func (api *gradebookApi) ectsByStudentSemester(ctx echo.Context) error {
	svc, err := getContextService(ctx)
	if err != nil {
		return err
	}
	rows, err := svc.ECTSHistogramByStudentSemester(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "counting grades by student and semester")
	}
	return ctx.Render(http.StatusOK, "gradebook/ects_by_student_semester", echo.Map{
		"Title": "ECTS by student and semester",
		"Rows":  rows,
	})
}
