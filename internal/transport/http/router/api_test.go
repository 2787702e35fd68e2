package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mentorize-api/internal/core/auth"
	"mentorize-api/internal/service"
	"mentorize-api/internal/testutil"
	"mentorize-api/internal/transport/http/handler"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := testutil.NewMemUserRepo()
	requests := testutil.NewMemMentorshipRepo(users)
	jwter := &auth.JWTer{Secret: []byte("e2e-secret"), Issuer: "test", TTL: time.Hour}
	log := zap.NewNop()

	authSvc := service.NewAuthService(users, jwter, bcrypt.MinCost, log)
	userSvc := service.NewUserService(users, log)
	mentorshipSvc := service.NewMentorshipService(requests, log)

	authH := handler.NewAuthHandler(authSvc, userSvc)
	userH := handler.NewUserHandler(userSvc, nil)
	mentorshipH := handler.NewMentorshipHandler(mentorshipSvc, nil)

	return NewAPIEngine(log, authH, userH, mentorshipH, jwter, "")
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var out map[string]any
	if len(rr.Body.Bytes()) > 0 && rr.Body.Bytes()[0] == '{' {
		_ = json.Unmarshal(rr.Body.Bytes(), &out)
	}
	return rr, out
}

func register(t *testing.T, r *gin.Engine, email, name, role string) string {
	t.Helper()
	rr, out := do(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email": email, "password": "pw123456", "name": name, "role": role,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return out["id"].(string)
}

func login(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	rr, out := do(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email": email, "password": "pw123456",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	token, ok := out["access_token"].(string)
	require.True(t, ok, "expected access_token, got %s", rr.Body.String())
	return token
}

func TestAuthFlow(t *testing.T) {
	r := newTestEngine(t)

	register(t, r, "a@x.com", "A", "STUDENT")

	t.Run("register response never leaks the hash", func(t *testing.T) {
		rr, out := do(t, r, http.MethodPost, "/auth/register", "", gin.H{
			"email": "fresh@x.com", "password": "pw123456", "name": "F",
		})
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.NotContains(t, out, "password")
		assert.NotContains(t, out, "passwordHash")
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		rr, _ := do(t, r, http.MethodPost, "/auth/register", "", gin.H{
			"email": "a@x.com", "password": "pw123456", "name": "A2",
		})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("bad credentials keep the observed 200+error shape", func(t *testing.T) {
		rr, out := do(t, r, http.MethodPost, "/auth/login", "", gin.H{
			"email": "a@x.com", "password": "wrong",
		})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Invalid credentials", out["error"])
	})

	t.Run("logout needs a valid token", func(t *testing.T) {
		rr, _ := do(t, r, http.MethodPost, "/auth/logout", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		token := login(t, r, "a@x.com")
		rr, out := do(t, r, http.MethodPost, "/auth/logout", token, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Logged out (frontend removes token)", out["message"])
	})

	t.Run("me returns the caller", func(t *testing.T) {
		token := login(t, r, "a@x.com")
		rr, out := do(t, r, http.MethodGet, "/auth/me", token, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "a@x.com", out["email"])
	})
}

// 全链路：注册 → 登录 → 发起 → 确认 → 列表
func TestMentorshipEndToEnd(t *testing.T) {
	r := newTestEngine(t)

	studentID := register(t, r, "a@x.com", "A", "STUDENT")
	mentorID := register(t, r, "m@x.com", "M", "MENTOR")
	studentToken := login(t, r, "a@x.com")
	mentorToken := login(t, r, "m@x.com")

	// 请求体里伪造 studentId 也不管用
	rr, created := do(t, r, http.MethodPost, "/mentorships", studentToken, gin.H{
		"description": "help", "duration": 30, "mentorId": mentorID, "studentId": "spoofed",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, studentID, created["studentId"])
	assert.Nil(t, created["isConfirmed"])
	requestID := created["id"].(string)

	t.Run("create requires auth", func(t *testing.T) {
		rr, _ := do(t, r, http.MethodPost, "/mentorships", "", gin.H{
			"description": "x", "duration": 30, "mentorId": mentorID,
		})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("create rejects missing description", func(t *testing.T) {
		rr, _ := do(t, r, http.MethodPost, "/mentorships", studentToken, gin.H{
			"duration": 30, "mentorId": mentorID,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("confirm by the wrong mentor 404s", func(t *testing.T) {
		rr, _ := do(t, r, http.MethodPatch, "/mentorships/"+requestID+"/confirm", studentToken, gin.H{
			"isConfirmed": true,
		})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("owning mentor confirms", func(t *testing.T) {
		rr, out := do(t, r, http.MethodPatch, "/mentorships/"+requestID+"/confirm", mentorToken, gin.H{
			"isConfirmed": true,
		})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, true, out["isConfirmed"])
	})

	t.Run("list is public and carries projections", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/mentorships", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var list []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.Equal(t, true, list[0]["isConfirmed"])

		mentor := list[0]["mentor"].(map[string]any)
		assert.Equal(t, "m@x.com", mentor["email"])
		assert.Len(t, mentor, 2, "projection is id+email only")
	})

	t.Run("cancel by another user returns removedCount 0", func(t *testing.T) {
		rr, out := do(t, r, http.MethodDelete, "/mentorships/"+requestID, mentorToken, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.EqualValues(t, 0, out["removedCount"])
	})

	t.Run("cancel by the owner removes it", func(t *testing.T) {
		rr, out := do(t, r, http.MethodDelete, "/mentorships/"+requestID, studentToken, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.EqualValues(t, 1, out["removedCount"])
	})
}

func TestUserRoutes(t *testing.T) {
	r := newTestEngine(t)

	id := register(t, r, "a@x.com", "A", "STUDENT")
	otherID := register(t, r, "b@x.com", "B", "STUDENT")
	token := login(t, r, "a@x.com")

	t.Run("user listing is public and hash-free", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var list []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list, 2)
		for _, u := range list {
			assert.NotContains(t, u, "password")
			assert.NotContains(t, u, "passwordHash")
		}
	})

	t.Run("cannot update someone else", func(t *testing.T) {
		rr, _ := do(t, r, http.MethodPatch, "/users/"+otherID, token, gin.H{"name": "Hijack"})
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("self update", func(t *testing.T) {
		rr, out := do(t, r, http.MethodPatch, "/users/"+id, token, gin.H{"name": "Renamed"})
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Renamed", out["name"])
	})

	t.Run("self delete", func(t *testing.T) {
		rr, _ := do(t, r, http.MethodDelete, "/users/"+id, token, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
