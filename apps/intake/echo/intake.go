package echointake

import (
	"net/http"
	"net/url"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/intake"
)

const formTitle = "Contact form"

type intakeApi struct {
	svc        *intake.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerIntakeRoutes(app *echo.Echo, svc *intake.Service, validate *validator.Validate, translator ut.Translator) {
	api := intakeApi{
		svc:        svc,
		validate:   validate,
		translator: translator,
	}

	app.GET("/form", api.showForm)
	app.POST("/form", api.submit)
	app.GET("/result", api.result)
}

type formField struct {
	Name  string
	Label string
	Value string
	Error string
}

func formFields(sub intake.Submission, errs map[string]string) []formField {
	return []formField{
		{Name: "full_name", Label: "Full name", Value: sub.FullName, Error: errs["full_name"]},
		{Name: "email", Label: "Email", Value: sub.Email, Error: errs["email"]},
		{Name: "age", Label: "Age", Value: sub.Age, Error: errs["age"]},
		{Name: "city", Label: "City", Value: sub.City, Error: errs["city"]},
	}
}

func renderForm(ctx echo.Context, code int, sub intake.Submission, errs map[string]string) error {
	return ctx.Render(code, "intake/form", echo.Map{
		"Title":  formTitle,
		"Fields": formFields(sub, errs),
	})
}

// Handlers

func (api *intakeApi) showForm(ctx echo.Context) error {
	return renderForm(ctx, http.StatusOK, intake.Submission{}, nil)
}

func (api *intakeApi) submit(ctx echo.Context) error {
	sub := intake.Submission{
		FullName: ctx.FormValue("full_name"),
		Email:    ctx.FormValue("email"),
		Age:      ctx.FormValue("age"),
		City:     ctx.FormValue("city"),
	}
	sub.Clean()

	if errs := sub.Validate(api.validate, api.translator); len(errs) > 0 {
		return renderForm(ctx, http.StatusBadRequest, sub, errs)
	}

	name, err := api.svc.Save(ctx.Request().Context(), sub)
	if err != nil {
		return errors.Wrap(err, "saving submission")
	}

	q := make(url.Values)
	q.Set("full_name", sub.FullName)
	q.Set("email", sub.Email)
	q.Set("age", sub.Age)
	q.Set("city", sub.City)
	q.Set("saved_file", name)
	return ctx.Redirect(http.StatusFound, "/result?"+q.Encode())
}

func (api *intakeApi) result(ctx echo.Context) error {
	var sub intake.Submission
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &sub); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query").SetInternal(err)
	}
	return ctx.Render(http.StatusOK, "intake/result", echo.Map{
		"Title":      "Submission saved",
		"Submission": sub,
		"SavedFile":  ctx.QueryParam("saved_file"),
	})
}
