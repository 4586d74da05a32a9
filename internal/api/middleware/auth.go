package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bookfairlk/stall-reservation-api/internal/api/handler/v1/response"
	"github.com/bookfairlk/stall-reservation-api/internal/pkg/jwthelper"
)

const (
	ContextKeyUserID = "userID"
	ContextKeyRole   = "userRole"
)

var (
	errMissingToken = errors.New("missing or malformed authorization token")
	errInvalidToken = errors.New("invalid or expired token")
	errWrongRole    = errors.New("this endpoint is not available for your role")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid bearer token and stores
// the caller's identity in the gin context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.RenderErr(ctx, response.ErrWrongCredentials(errMissingToken))

			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.RenderErr(ctx, response.ErrWrongCredentials(errInvalidToken))

			return
		}

		if claims.UserAgent != ctx.Request.UserAgent() {
			response.RenderErr(ctx, response.ErrWrongCredentials(errInvalidToken))

			return
		}

		ctx.Set(ContextKeyUserID, claims.UserID)
		ctx.Set(ContextKeyRole, claims.Role)

		ctx.Next()
	}
}

// RequireRole gates a route group to callers carrying the given role.
// Must run after VerifyJWT.
func RequireRole(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetString(ContextKeyRole) != role {
			response.RenderErr(ctx, response.ErrUnauthorized(errWrongRole))

			return
		}

		ctx.Next()
	}
}

// GetUserID returns the authenticated caller's ID set by VerifyJWT.
func GetUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := value.(uint)

	return id, ok
}
