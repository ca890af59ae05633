package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/growoff/growoff-api/internal/api/handler/v1/response"
	"github.com/growoff/growoff-api/internal/api/middleware"
	"github.com/growoff/growoff-api/internal/domain"
	"github.com/growoff/growoff-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id string) (domain.User, error)
}

// getUserFromContext loads the full user record for the identity the JWT
// middleware placed on the context.
func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	userID := ctx.GetString(middleware.ContextKeyUserID)
	if userID == "" {
		return domain.User{}, response.ErrWrongCredentials(errors.New("missing authentication"))
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrWrongCredentials(errors.New("unknown user"))
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("getUserFromContext -> svc.GetUser -> %w", err))
	}

	return user, nil
}

func isJudgeOrAdmin(role string) bool {
	return role == domain.RoleJudge || role == domain.RoleAdmin
}
