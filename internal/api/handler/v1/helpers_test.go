package v1

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	"github.com/growoff/growoff-api/internal/api/middleware"
	"github.com/growoff/growoff-api/internal/domain"
	"github.com/growoff/growoff-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUserService serves the user lookups every protected handler does
// before checking roles.
type fakeUserService struct {
	users map[string]domain.User
}

func (f *fakeUserService) GetUser(_ context.Context, id string) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, service.ErrUserNotFound
	}

	return user, nil
}

// asUser returns a middleware that plants the user ID the way the JWT
// middleware does.
func asUser(id string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if id != "" {
			ctx.Set(middleware.ContextKeyUserID, id)
		}

		ctx.Next()
	}
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func contestantFixture() domain.User {
	return domain.User{
		ID:          "c1",
		Email:       "grower@example.com",
		DisplayName: "grower",
		Role:        domain.RoleContestant,
	}
}

func judgeFixture() domain.User {
	return domain.User{
		ID:          "j1",
		Email:       "judge1@demo.com",
		DisplayName: "judge1",
		Role:        domain.RoleJudge,
	}
}

func adminFixture() domain.User {
	return domain.User{
		ID:          "a1",
		Email:       "admin@demo.com",
		DisplayName: "admin",
		Role:        domain.RoleAdmin,
	}
}

func usersFixture() *fakeUserService {
	contestant := contestantFixture()
	judge := judgeFixture()
	admin := adminFixture()

	return &fakeUserService{users: map[string]domain.User{
		contestant.ID: contestant,
		judge.ID:      judge,
		admin.ID:      admin,
	}}
}
