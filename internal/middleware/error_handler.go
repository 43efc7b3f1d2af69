package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"quizmaster_app/internal/ui"
	"quizmaster_app/web/templates/pages"
	"quizmaster_app/web/templates/shared"
)

// APIError is the JSON body of a failed /api request
type APIError struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var apiMessages = map[int]string{
	http.StatusBadRequest:          "Bad Request, add more info :(",
	http.StatusNotFound:            "Page not found",
	http.StatusMethodNotAllowed:    "Method not allowed",
	http.StatusUnprocessableEntity: "Unprocessable",
	http.StatusInternalServerError: "Internal Server Error",
}

// IsAPIPath reports whether path belongs to the JSON API
func IsAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

// APIErrorBody builds the JSON error for a status code
func APIErrorBody(code int) APIError {
	msg, ok := apiMessages[code]
	if !ok {
		msg = http.StatusText(code)
	}
	return APIError{Success: false, Error: code, Message: msg}
}

// CustomErrorHandler renders JSON errors for /api routes and an HTML error
// page for everything else
func CustomErrorHandler(log *zap.Logger, appURL string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := ""
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			}
		}

		if code >= http.StatusInternalServerError {
			log.Error("request error", zap.Error(err), zap.String("path", c.Request().URL.Path))
		}

		if IsAPIPath(c.Request().URL.Path) {
			if err := c.JSON(code, APIErrorBody(code)); err != nil {
				log.Error("failed to write api error", zap.Error(err))
			}
			return
		}

		title, message := pageErrorText(code, message)
		props := pages.ErrorPageProps{
			Title:        title,
			Header:       shared.HeaderProps{Header: ui.NewHeader(Origin(c, appURL), nil), Active: "none"},
			Code:         code,
			ErrorTitle:   title,
			ErrorMessage: message,
		}

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(code)
		if renderErr := pages.ErrorPage(props).Render(c.Request().Context(), c.Response()); renderErr != nil {
			log.Error("failed to render error page", zap.Error(fmt.Errorf("render: %w", renderErr)))
		}
	}
}

func pageErrorText(code int, message string) (string, string) {
	title := "Internal Server Error"
	fallback := "Something went wrong. Please try again later."

	switch code {
	case http.StatusNotFound:
		title, fallback = "Page Not Found", "The page you're looking for doesn't exist."
	case http.StatusBadRequest:
		title, fallback = "Bad Request", "The request could not be processed."
	case http.StatusMethodNotAllowed:
		title, fallback = "Method Not Allowed", "This page does not accept that kind of request."
	case http.StatusUnprocessableEntity:
		title, fallback = "Unprocessable", "The submitted data could not be processed."
	}

	// 5xx messages may carry internals
	if message == "" || message == http.StatusText(code) || code >= http.StatusInternalServerError {
		message = fallback
	}
	return title, message
}
