package team

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/problemhub/server/internal/module/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type handlerEnv struct {
	*testing.T
	db     *gorm.DB
	router *gin.Engine
	jwt    *auth.JWTManager
	ctx    context.Context
}

func setupHandler(t *testing.T) *handlerEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&UserRef{}, &Team{}, &TeamMember{}))

	svc := NewService(NewRepository(db), NewUserStore(db), nil, zap.NewNop())
	jwtManager := auth.NewJWTManager(&auth.JWTConfig{
		Secret:            "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "test",
	})

	router := gin.New()
	protected := router.Group("/api/v1")
	protected.Use(auth.RequireAuth(jwtManager))
	NewHandler(svc).RegisterRoutes(protected)

	return &handlerEnv{T: t, db: db, router: router, jwt: jwtManager, ctx: context.Background()}
}

func (e *handlerEnv) newUser(name string) uuid.UUID {
	e.Helper()
	u := &UserRef{ID: uuid.New(), Email: name + "@example.com", Name: name}
	require.NoError(e, e.db.Create(u).Error)
	return u.ID
}

func (e *handlerEnv) do(userID uuid.UUID, method, path string, body any) *httptest.ResponseRecorder {
	e.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		token, _, err := e.jwt.GenerateAccessToken(userID, "user@example.com")
		require.NoError(e, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestHandler_CreateTeam(t *testing.T) {
	e := setupHandler(t)
	alice := e.newUser("alice")

	t.Run("creates a team", func(t *testing.T) {
		w := e.do(alice, http.MethodPost, "/api/v1/teams", CreateTeamRequest{Name: "Falcons"})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp TeamResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Falcons", resp.Name)
		require.Len(t, resp.Members, 1)
		assert.Equal(t, RoleLeader, resp.Members[0].Role)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		w := e.do(alice, http.MethodPost, "/api/v1/teams", CreateTeamRequest{Name: "Falcons"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("rejects without a token", func(t *testing.T) {
		w := e.do(uuid.Nil, http.MethodPost, "/api/v1/teams", CreateTeamRequest{Name: "Hawks"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		w := e.do(alice, http.MethodPost, "/api/v1/teams", CreateTeamRequest{Name: ""})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_JoinFlow(t *testing.T) {
	e := setupHandler(t)
	alice := e.newUser("alice")
	bob := e.newUser("bob")

	w := e.do(alice, http.MethodPost, "/api/v1/teams", CreateTeamRequest{Name: "Falcons"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created TeamResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	teamPath := fmt.Sprintf("/api/v1/teams/%s", created.ID)

	t.Run("bob requests to join", func(t *testing.T) {
		w := e.do(bob, http.MethodPost, teamPath+"/join", nil)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("joining twice conflicts", func(t *testing.T) {
		w := e.do(bob, http.MethodPost, teamPath+"/join", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("only the leader may respond", func(t *testing.T) {
		w := e.do(bob, http.MethodPut, fmt.Sprintf("%s/members/%s", teamPath, bob),
			RespondRequest{Status: string(MemberStatusAccepted)})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("leader accepts", func(t *testing.T) {
		w := e.do(alice, http.MethodPut, fmt.Sprintf("%s/members/%s", teamPath, bob),
			RespondRequest{Status: string(MemberStatusAccepted)})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("acceptance does not switch bob's team", func(t *testing.T) {
		w := e.do(bob, http.MethodGet, "/api/v1/teams/my-team", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bob switches in", func(t *testing.T) {
		w := e.do(bob, http.MethodPost, teamPath+"/switch", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = e.do(bob, http.MethodGet, "/api/v1/teams/my-team", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp TeamResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Falcons", resp.Name)
	})
}

func TestHandler_SearchTeams(t *testing.T) {
	e := setupHandler(t)
	alice := e.newUser("alice")
	bob := e.newUser("bob")

	require.Equal(t, http.StatusCreated,
		e.do(alice, http.MethodPost, "/api/v1/teams", CreateTeamRequest{Name: "Falcons"}).Code)
	require.Equal(t, http.StatusCreated,
		e.do(bob, http.MethodPost, "/api/v1/teams", CreateTeamRequest{Name: "Hawks"}).Code)

	t.Run("keyword is case-insensitive", func(t *testing.T) {
		w := e.do(alice, http.MethodGet, "/api/v1/teams?keyword=falc", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp ListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Teams, 1)
		assert.Equal(t, "Falcons", resp.Teams[0].Name)
	})

	t.Run("no keyword lists everything", func(t *testing.T) {
		w := e.do(alice, http.MethodGet, "/api/v1/teams", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp ListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Teams, 2)
	})
}
