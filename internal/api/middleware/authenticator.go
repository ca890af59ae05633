package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/growoff/growoff-api/internal/pkg/jwthelper"
)

// ContextKeyUserID is where VerifyJWT places the authenticated user's ID
// on the gin context.
const ContextKeyUserID = "userID"

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT gates every authenticated route. It is the single place that
// turns a bearer token into a session identity; handlers downstream read
// the user ID from the context instead of consulting ambient auth state.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		segments := strings.SplitN(header, " ", 2)
		if len(segments) != 2 || segments[0] != "Bearer" {
			ctx.AbortWithStatus(http.StatusUnauthorized)

			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, segments[1])
		if err != nil {
			ctx.AbortWithStatus(http.StatusUnauthorized)

			return
		}

		// A token replayed from a different client is rejected.
		if claims.UserAgent != ctx.Request.UserAgent() {
			ctx.AbortWithStatus(http.StatusUnauthorized)

			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Next()
	}
}
