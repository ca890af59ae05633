package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/growoff/growoff-api/internal/api/handler/v1/request"
	"github.com/growoff/growoff-api/internal/api/handler/v1/response"
	"github.com/growoff/growoff-api/internal/domain"
	"github.com/growoff/growoff-api/internal/service"
)

type AdminService interface {
	UserService
	ListUsers(ctx context.Context) ([]domain.User, error)
	SetRole(ctx context.Context, id, role string) error
	RepairRoles(ctx context.Context) (int, error)
}

type AdminHandler struct {
	svc AdminService
}

func NewAdminHandler(svc AdminService) *AdminHandler {
	return &AdminHandler{
		svc: svc,
	}
}

func (h *AdminHandler) requireAdmin(ctx *gin.Context) (domain.User, bool) {
	user, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return domain.User{}, false
	}

	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an admin", user.ID)))

		return domain.User{}, false
	}

	return user, true
}

// HandleListUsers godoc
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/users [get]
// @Security BearerAuth
func (h *AdminHandler) HandleListUsers(ctx *gin.Context) {
	if _, ok := h.requireAdmin(ctx); !ok {
		return
	}

	users, err := h.svc.ListUsers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleUpdateRole godoc
// @Summary      Set a user's role
// @Description  Overwrites only the role field of the canonical user record.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        userID   path  string                     true  "user ID"
// @Param        request  body  request.UpdateRoleRequest  true  "new role"
// @Success      200  {object}  response.RoleUpdatedResponse
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/users/{userID}/role [put]
// @Security BearerAuth
func (h *AdminHandler) HandleUpdateRole(ctx *gin.Context) {
	if _, ok := h.requireAdmin(ctx); !ok {
		return
	}

	var req request.UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	userID := ctx.Param("userID")
	err := h.svc.SetRole(ctx.Request.Context(), userID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "userID", userID))
		default:
			err = fmt.Errorf("v1.HandleUpdateRole -> h.svc.SetRole -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.RoleUpdatedResponse{
		Message: "role updated",
		UserID:  userID,
		Role:    req.Role,
	})
}

// HandleRepairRoles godoc
// @Summary      Assign roles to users missing one
// @Description  Gives every user without a role a legacy or allow-list role.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.RolesRepairedResponse
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/roles/repair [post]
// @Security BearerAuth
func (h *AdminHandler) HandleRepairRoles(ctx *gin.Context) {
	if _, ok := h.requireAdmin(ctx); !ok {
		return
	}

	repaired, err := h.svc.RepairRoles(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleRepairRoles -> h.svc.RepairRoles -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.RolesRepairedResponse{
		Message:  "roles repaired",
		Repaired: repaired,
	})
}
