package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/idently/auth-api/internal/api/metrics"
	"github.com/idently/auth-api/internal/core/domain"
	"github.com/idently/auth-api/internal/core/ports"
)

// AdminHandler serves the admin-only user management routes. Authentication
// and the admin role requirement are enforced by the route group, not here.
type AdminHandler struct {
	accounts ports.AccountService
}

func NewAdminHandler(accounts ports.AccountService) *AdminHandler {
	return &AdminHandler{accounts: accounts}
}

// Dashboard greets the authenticated admin.
//
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "welcome, " + principal.Email})
}

// ListUsers returns the public view of every account.
//
// @Summary      List all accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.PublicUser
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.accounts.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	metrics.AdminActionsTotal.WithLabelValues("list_users").Inc()
	return c.JSON(http.StatusOK, users)
}

// DeleteUser removes an account by id and returns its public view.
//
// @Summary      Delete an account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  deleteUserResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return domain.ErrUserNotFound
	}

	deleted, err := h.accounts.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	metrics.AdminActionsTotal.WithLabelValues("delete_user").Inc()
	return c.JSON(http.StatusOK, deleteUserResponse{Message: "user deleted", User: *deleted})
}
