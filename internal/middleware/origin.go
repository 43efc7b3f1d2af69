package middleware

import (
	"github.com/labstack/echo/v4"
)

// Origin returns the scheme and host a browser used to reach the app.
// appURL, when configured, wins over the request.
func Origin(c echo.Context, appURL string) string {
	if appURL != "" {
		return appURL
	}
	return c.Scheme() + "://" + c.Request().Host
}
