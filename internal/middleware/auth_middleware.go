package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-ess/internal/shared/apperror"
	"go-ess/internal/shared/contextutil"
	"go-ess/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken  = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired  = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
	ErrMissingUserID = apperror.New("INVALID_TOKEN", "User ID not found in token", http.StatusUnauthorized)
)

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}

// AuthMiddleware verifies the HMAC-signed bearer token issued by the payroll
// API and forwards it on the request context for upstream calls.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, ErrTokenNotFound)
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, ErrTokenExpired)
				return
			}
			abortWith(c, ErrInvalidToken)
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			abortWith(c, ErrMissingUserID)
			return
		}

		countryID, _ := claims["country_id"].(string)

		c.Set("user_id", userID)
		c.Set("country_id", countryID)

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, userID)
		ctx = contextutil.WithAccessToken(ctx, tokenString)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, nil).With(zap.String("user_id", userID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
