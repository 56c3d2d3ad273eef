package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devfolio/portfolio-api/internal/api/apierror"
	"github.com/devfolio/portfolio-api/internal/api/metrics"
	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  apierror.Response
// @Failure      403   {object}  apierror.Response
// @Failure      500   {object}  apierror.Response
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return observeAuth("register", err)
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Identifier:         req.Identifier,
		Password:           req.Password,
		RegistrationSecret: req.RegistrationSecret,
	})
	if err != nil {
		return observeAuth("register", err)
	}

	observeAuth("register", nil)
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  apierror.Response
// @Failure      401   {object}  apierror.Response
// @Failure      500   {object}  apierror.Response
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return observeAuth("login", err)
	}

	res, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return observeAuth("login", err)
	}

	observeAuth("login", nil)
	return c.JSON(http.StatusOK, loginResponse{
		Subject:   toUserResponse(res.User),
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt.UTC(),
	})
}

// Logout revokes the presented token.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  apierror.Response
// @Failure      500   {object}  apierror.Response
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := Claims(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return observeAuth("logout", err)
	}

	observeAuth("logout", nil)
	return c.NoContent(http.StatusNoContent)
}

// observeAuth records the outcome and hands err back for returning.
func observeAuth(operation string, err error) error {
	result := "success"
	if err != nil {
		result = string(apierror.KindOf(err))
	}
	metrics.AuthAttemptsTotal.WithLabelValues(operation, result).Inc()
	return err
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}
