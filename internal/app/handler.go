package app

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stolasapp/janus/internal/account"
	"github.com/stolasapp/janus/internal/sec"
)

type handler struct {
	repo     *account.Repository
	adminKey string
	logger   *slog.Logger
}

func (h handler) register(e *echo.Echo) {
	e.GET("/users/me", h.getUser)
	e.POST("/users", h.createUser)
}

// getUser authenticates Basic id:password credentials and returns the
// caller's account, redacted. Every failure mode is a 401; the reason strings
// differ but the status deliberately does not distinguish an unknown id from
// a bad password.
func (h handler) getUser(c echo.Context) error {
	req := c.Request()
	if req.Header.Get(echo.HeaderAuthorization) == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
	}
	// BasicAuth rejects non-Basic schemes and undecodable payloads, so
	// garbage headers fail auth instead of erroring out.
	id, password, ok := req.BasicAuth()
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header")
	}

	acct, err := h.repo.Authenticate(req.Context(), id, password)
	switch {
	case errors.Is(err, account.ErrNotFound):
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	case errors.Is(err, account.ErrInvalidPassword):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid password")
	case err != nil:
		return err
	}
	return c.JSON(http.StatusOK, acct.Redacted())
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// createUser registers a new account. The endpoint is not self-service: the
// Authorization header must equal the configured admin secret exactly (no
// scheme prefix).
func (h handler) createUser(c echo.Context) error {
	req := c.Request()
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing auth header")
	}
	if !sec.CheckAdminKey(authHeader, h.adminKey) {
		return echo.NewHTTPError(http.StatusUnauthorized, "Wrong auth header")
	}

	var create createUserRequest
	if err := json.NewDecoder(req.Body).Decode(&create); err != nil {
		h.logger.WarnContext(req.Context(),
			"could not parse create user request",
			slog.Any("error", err),
		)
		return echo.NewHTTPError(http.StatusBadRequest, "Could not create user")
	}
	if create.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing password")
	}
	if create.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing email")
	}

	acct, err := h.repo.Create(req.Context(), create.Email, create.Password)
	if errors.Is(err, account.ErrEmailInUse) {
		return echo.NewHTTPError(http.StatusConflict, "Could not create user: email in use")
	} else if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, acct.Redacted())
}
