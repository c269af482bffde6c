package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/conectahub/backend/internal/config"
	"github.com/conectahub/backend/internal/models"
	"github.com/conectahub/backend/internal/storage"
	"github.com/conectahub/backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Database.DSN = filepath.Join(dir, "conectahub_test.db")
	cfg.Upload.Dir = filepath.Join(dir, "uploads")
	cfg.RateLimit.Enabled = false
	utils.SetJWTSecret("routes-test-secret")

	db, err := models.InitDB(&cfg.Database)
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	files, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.URLPrefix, cfg.Upload.MaxUploadBytes())
	require.NoError(t, err)

	a := newApp(cfg, db, files)
	t.Cleanup(a.shutdown)
	return &testServer{t: t, router: newRouter(a)}
}

func (s *testServer) do(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func (s *testServer) json(method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return s.do(req)
}

func (s *testServer) form(method, path string, fields map[string]string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(s.t, mw.WriteField(k, v))
	}
	require.NoError(s.t, mw.Close())
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(req)
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func (s *testServer) register(name, email, tipo string) uint {
	s.t.Helper()
	w, env := s.form(http.MethodPost, "/usuarios", map[string]string{
		"nome":  name,
		"email": email,
		"senha": "segredo123",
		"tipo":  tipo,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, env.Message)
	return decode[struct {
		ID uint `json:"usuario_id"`
	}](s.t, env).ID
}

func (s *testServer) createProject(ownerID uint, title string) uint {
	s.t.Helper()
	w, env := s.form(http.MethodPost, "/projetos", map[string]string{
		"titulo":     title,
		"descricao":  "portfolio",
		"usuario_id": fmt.Sprint(ownerID),
	})
	require.Equal(s.t, http.StatusCreated, w.Code, env.Message)
	return decode[struct {
		ID uint `json:"projeto_id"`
	}](s.t, env).ID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, env := s.json(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)
}

func TestLikeNotifiesOwnerOnly(t *testing.T) {
	s := newTestServer(t)
	owner := s.register("Ana", "ana@example.com", "designer")
	fan := s.register("Bia", "bia@example.com", "programmer")
	projectID := s.createProject(owner, "Landing page")

	w, _ := s.json(http.MethodPost, "/curtidas", gin.H{"usuario_id": fan, "projeto_id": projectID})
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = s.json(http.MethodPost, "/curtidas", gin.H{"usuario_id": owner, "projeto_id": projectID})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := s.json(http.MethodGet, fmt.Sprintf("/curtidas/%d", projectID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]json.RawMessage](t, env), 2)

	_, env = s.json(http.MethodGet, fmt.Sprintf("/usuarios/%d/notificacoes", owner), nil)
	feed := decode[[]struct {
		Kind     string `json:"tipo"`
		OriginID uint   `json:"origem_id"`
	}](t, env)
	require.Len(t, feed, 1)
	assert.Equal(t, "like", feed[0].Kind)
	assert.Equal(t, fan, feed[0].OriginID)

	w, _ = s.json(http.MethodPost, "/curtidas", gin.H{"usuario_id": fan, "projeto_id": projectID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInviteAcceptFlow(t *testing.T) {
	s := newTestServer(t)
	owner := s.register("Ana", "ana@example.com", "programmer")
	invitee := s.register("Caio", "caio@example.com", "designer")
	projectID := s.createProject(owner, "App de receitas")

	w, env := s.json(http.MethodPost, "/usuario-projeto", gin.H{
		"usuario_id":     invitee,
		"projeto_id":     projectID,
		"solicitante_id": owner,
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	invite := decode[struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}](t, env)
	assert.Equal(t, "pending", invite.Status)

	_, env = s.json(http.MethodGet, fmt.Sprintf("/projetos/%d/participantes", projectID), nil)
	assert.Len(t, decode[[]json.RawMessage](t, env), 1, "only the owner before acceptance")

	w, env = s.json(http.MethodPost, fmt.Sprintf("/notificacoes/%d/aceitar-convite", invite.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	collab := decode[struct {
		UserID uint   `json:"usuario_id"`
		Role   string `json:"papel"`
	}](t, env)
	assert.Equal(t, invitee, collab.UserID)
	assert.Equal(t, "designer", collab.Role)

	_, env = s.json(http.MethodGet, fmt.Sprintf("/usuarios/%d/notificacoes", invitee), nil)
	assert.Empty(t, decode[[]json.RawMessage](t, env))

	_, env = s.json(http.MethodGet, fmt.Sprintf("/projetos/%d/participantes", projectID), nil)
	assert.Len(t, decode[[]json.RawMessage](t, env), 2)

	w, _ = s.json(http.MethodPost, fmt.Sprintf("/notificacoes/%d/aceitar-convite", invite.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConnectionAcceptOpensChat(t *testing.T) {
	s := newTestServer(t)
	mentee := s.register("Davi", "davi@example.com", "programmer")
	mentor := s.register("Eva", "eva@example.com", "designer")

	w, env := s.json(http.MethodPost, "/conexoes", gin.H{
		"senderId":    mentee,
		"recipientId": mentor,
		"reason":      "quero mentoria",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	connID := decode[struct {
		ID uint `json:"id"`
	}](t, env).ID

	w, env = s.json(http.MethodPut, fmt.Sprintf("/conexoes/%d/aceitar", connID), nil)
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	accepted := decode[struct {
		Connection struct {
			Status string `json:"status"`
		} `json:"connection"`
		Chat struct {
			ID uint `json:"id"`
		} `json:"chat"`
	}](t, env)
	assert.Equal(t, "accepted", accepted.Connection.Status)
	require.NotZero(t, accepted.Chat.ID)

	msgs := fmt.Sprintf("/chats/%d/messages", accepted.Chat.ID)
	w, env = s.json(http.MethodPost, msgs, gin.H{"sender_id": mentor, "message": "oi"})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)

	_, env = s.json(http.MethodGet, msgs, nil)
	list := decode[[]struct {
		SenderID uint   `json:"sender_id"`
		Text     string `json:"message"`
	}](t, env)
	require.Len(t, list, 1)
	assert.Equal(t, mentor, list[0].SenderID)
	assert.Equal(t, "oi", list[0].Text)

	w, env = s.json(http.MethodPost, "/chats", gin.H{"user1_id": mentor, "user2_id": mentee})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, accepted.Chat.ID, decode[struct {
		ID uint `json:"id"`
	}](t, env).ID)

	w, _ = s.json(http.MethodPut, fmt.Sprintf("/conexoes/%d/recusar", connID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBriefingsAndLinkedProject(t *testing.T) {
	s := newTestServer(t)
	ana := s.register("Ana", "ana@example.com", "designer")

	w, env := s.json(http.MethodPost, "/briefings", gin.H{
		"titulo":     "Rebranding",
		"descricao":  "Nova identidade",
		"criado_por": ana,
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	briefing := decode[struct {
		ID        uint   `json:"briefing_id"`
		CreatedBy uint   `json:"criado_por"`
		Title     string `json:"titulo"`
	}](t, env)
	assert.Equal(t, ana, briefing.CreatedBy)

	w, _ = s.json(http.MethodPost, "/briefings", gin.H{"titulo": "  ", "criado_por": ana})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	_, env = s.json(http.MethodGet, "/briefings", nil)
	assert.Len(t, decode[[]json.RawMessage](t, env), 1)

	w, env = s.form(http.MethodPost, "/projetos", map[string]string{
		"titulo":      "Logo",
		"usuario_id":  fmt.Sprint(ana),
		"briefing_id": fmt.Sprint(briefing.ID),
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	project := decode[struct {
		BriefingID *uint `json:"briefing_id"`
	}](t, env)
	require.NotNil(t, project.BriefingID)
	assert.Equal(t, briefing.ID, *project.BriefingID)

	w, env = s.form(http.MethodPost, "/projetos", map[string]string{
		"titulo":      "Site",
		"usuario_id":  fmt.Sprint(ana),
		"briefing_id": "",
	})
	require.Equal(t, http.StatusCreated, w.Code, env.Message)
	assert.Nil(t, decode[struct {
		BriefingID *uint `json:"briefing_id"`
	}](t, env).BriefingID)

	w, _ = s.json(http.MethodGet, "/briefings/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestValidation(t *testing.T) {
	s := newTestServer(t)
	a := s.register("Ana", "ana@example.com", "")
	b := s.register("Bia", "bia@example.com", "")

	_, env := s.json(http.MethodPost, "/chats", gin.H{"user1_id": a, "user2_id": b})
	chatID := decode[struct {
		ID uint `json:"id"`
	}](t, env).ID
	msgs := fmt.Sprintf("/chats/%d/messages", chatID)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"blank message", http.MethodPost, msgs, gin.H{"sender_id": a, "message": "   "}, http.StatusBadRequest},
		{"unknown field", http.MethodPost, msgs, gin.H{"sender_id": a, "message": "oi", "extra": true}, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/curtidas", `{"usuario_id":`, http.StatusBadRequest},
		{"bad path id", http.MethodGet, "/chats/abc", nil, http.StatusBadRequest},
		{"unknown chat", http.MethodGet, "/chats/999", nil, http.StatusNotFound},
		{"self chat", http.MethodPost, "/chats", gin.H{"user1_id": a, "user2_id": a}, http.StatusBadRequest},
		{"missing reason", http.MethodPost, "/conexoes", gin.H{"senderId": a, "recipientId": b}, http.StatusBadRequest},
		{"bad link", http.MethodPost, "/conexoes", gin.H{"senderId": a, "recipientId": b, "reason": "oi", "link": "not a url"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := s.json(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestLoginAndOwnership(t *testing.T) {
	s := newTestServer(t)
	ana := s.register("Ana", "ana@example.com", "designer")
	bia := s.register("Bia", "bia@example.com", "designer")

	w, _ := s.json(http.MethodPost, "/login", gin.H{"email": "ana@example.com", "senha": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := s.json(http.MethodPost, "/login", gin.H{"email": "ANA@example.com", "senha": "segredo123"})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	token := "Bearer " + decode[struct {
		Token string `json:"token"`
	}](t, env).Token

	w, _ = s.json(http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.json(http.MethodGet, "/me", nil, "Authorization", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ana, decode[struct {
		ID uint `json:"usuario_id"`
	}](t, env).ID)

	w, _ = s.json(http.MethodPut, fmt.Sprintf("/usuarios/%d/descricao", bia), gin.H{"descricao": "hacked"}, "Authorization", token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.json(http.MethodPut, fmt.Sprintf("/usuarios/%d/descricao", ana), gin.H{"descricao": "UX designer"}, "Authorization", token)
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	assert.True(t, strings.Contains(string(env.Data), "UX designer"))
}

func TestWriteRoutesAreRateLimited(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Database.DSN = filepath.Join(dir, "conectahub_test.db")
	cfg.Upload.Dir = filepath.Join(dir, "uploads")
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 2}

	db, err := models.InitDB(&cfg.Database)
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	files, err := storage.NewLocalStore(cfg.Upload.Dir, cfg.Upload.URLPrefix, cfg.Upload.MaxUploadBytes())
	require.NoError(t, err)
	a := newApp(cfg, db, files)
	t.Cleanup(a.shutdown)
	router := newRouter(a)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/curtidas", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/curtidas/1", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code, "reads are not limited")
}
