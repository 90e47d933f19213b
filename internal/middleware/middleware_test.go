package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-ess/internal/middleware"
	"go-ess/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	json "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const testSecret = "test-secret"

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	newRouter := func() *gin.Engine {
		r := gin.New()
		r.GET("/me", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
			ctx := c.Request.Context()
			c.JSON(http.StatusOK, gin.H{
				"user_id":    c.GetString("user_id"),
				"country_id": c.GetString("country_id"),
				"ctx_user":   contextutil.GetUserID(ctx),
				"has_token":  contextutil.GetAccessToken(ctx) != "",
			})
		})
		return r
	}

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"user_id":    "user-1",
			"country_id": "ng",
			"exp":        time.Now().Add(time.Hour).Unix(),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"user-1","country_id":"ng","ctx_user":"user-1","has_token":true}`, w.Body.String())
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var env apiEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"user_id": "user-1",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		newRouter().ServeHTTP(w, req)

		var env apiEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_EXPIRED", env.Error.Code)
	})

	t.Run("cookie token without user id", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		newRouter().ServeHTTP(w, req)

		var env apiEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, "User ID not found in token", env.Error.Message)
	})
}

func TestKeyedRateLimiter(t *testing.T) {
	l := middleware.NewKeyedRateLimiter(rate.Every(time.Hour), 2)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
	assert.Equal(t, 2, l.Len())
}

func TestRateLimitByUser(t *testing.T) {
	r := gin.New()
	r.PUT("/draft", func(c *gin.Context) { c.Set("user_id", "user-1") }, middleware.RateLimitByUser(rate.Every(time.Hour), 1), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPut, "/draft", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPut, "/draft", nil))

	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestIdempotency(t *testing.T) {
	const cacheKey = "idemp:/submit:user-1:key-1"

	newRouter := func(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
		db, mock := redismock.NewClientMock()
		calls := 0
		r := gin.New()
		r.POST("/submit", func(c *gin.Context) { c.Set("user_id", "user-1") }, middleware.Idempotency(db), func(c *gin.Context) {
			calls++
			defer middleware.ReleaseIdempotency(c, db)
			middleware.RememberIdempotent(c, db, map[string]string{"id": "r-1"})
			c.Status(http.StatusCreated)
		})
		return r, mock, &calls
	}

	t.Run("replays cached response", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).SetVal(`{"id":"r-1"}`)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		r.ServeHTTP(w, req)

		var env apiEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"r-1"}`, string(env.Data))
		assert.Zero(t, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects while locked", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Zero(t, *calls)
	})

	t.Run("first request runs and is remembered", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, []byte(`{"id":"r-1"}`), 24*time.Hour).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis down does not block", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).SetErr(errors.New("down"))
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetErr(errors.New("down"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
	})
}
