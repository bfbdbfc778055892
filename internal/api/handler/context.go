package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobboard/job-portal/internal/api/middleware"
)

// ctxUserID returns the authenticated user id injected by the Auth
// middleware. Its absence means the route was wired without Auth.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "not authorized to access this route")
	}
	return userID, nil
}

// ctxToken returns the id and expiry of the bearer token on the request.
func ctxToken(c echo.Context) (string, time.Time, error) {
	tokenID, _ := c.Get(middleware.ContextTokenID).(string)
	if tokenID == "" {
		return "", time.Time{}, echo.NewHTTPError(http.StatusUnauthorized, "token cannot be revoked")
	}
	exp, _ := c.Get(middleware.ContextTokenExp).(time.Time)
	return tokenID, exp, nil
}
