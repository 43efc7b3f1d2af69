package handlers

import (
	"bytes"
	"errors"
	"maps"
	"net/http"
	"slices"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"quizmaster_app/internal/middleware"
	"quizmaster_app/internal/models"
	"quizmaster_app/internal/services"
	"quizmaster_app/internal/ui"
	"quizmaster_app/web/templates/shared"
)

// RequestValidator plugs go-playground/validator into echo's Validate
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a RequestValidator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate validates a struct using its `validate` tags
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// redirectNavigator turns a header navigation into a See Other redirect
type redirectNavigator struct {
	c   echo.Context
	err error
}

func (n *redirectNavigator) Navigate(url string) {
	n.err = n.c.Redirect(http.StatusSeeOther, url)
}

// header builds the request's Header. Navigations through it become redirects
// whose result is reported by the returned navigator.
func header(c echo.Context, appURL string) (*ui.Header, *redirectNavigator) {
	nav := &redirectNavigator{c: c}
	return ui.NewHeader(middleware.Origin(c, appURL), nav), nav
}

func headerProps(c echo.Context, appURL string, active ui.NavigationTarget) shared.HeaderProps {
	h, _ := header(c, appURL)
	return shared.HeaderProps{Header: h, Active: active}
}

// questionProps maps a stored question onto card props
func questionProps(q models.Question, action ui.ActionHandler) ui.QuestionProps {
	return ui.QuestionProps{
		Question:       q.Question,
		Answer:         q.Answer,
		Category:       q.CategoryName(),
		Difficulty:     q.Difficulty,
		QuestionAction: action,
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound)
	}
	return uint(id), nil
}

// serviceError maps quiz service errors onto HTTP errors
func serviceError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
	case errors.Is(err, services.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusUnprocessableEntity).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
	}
}

// render writes component as an HTML response with status
func render(c echo.Context, status int, component templ.Component) error {
	var buf bytes.Buffer
	if err := component.Render(c.Request().Context(), &buf); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}

func sortedIDs(set map[uint]bool) []uint {
	return slices.Sorted(maps.Keys(set))
}
