package middleware

import (
	"net/http"

	"github.com/anubhawdwd/hrms-be/internal/shared/apperror"
	"github.com/anubhawdwd/hrms-be/internal/shared/response"

	"github.com/gin-gonic/gin"
)

var (
	ErrTokenMissing    = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrTokenInvalid    = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired    = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
	ErrMissingClaim    = apperror.New("INVALID_TOKEN", "Token is missing required claims", http.StatusUnauthorized)
	ErrTooManyRequests = apperror.New(apperror.CodeTooManyRequests, "Too many requests", http.StatusTooManyRequests)
	ErrRequestInFlight = apperror.New(apperror.CodeConflict, "A request with this idempotency key is still being processed", http.StatusConflict)
)

func abortWith(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
	c.Abort()
}
