package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"soustackgw/internal/config"
	"soustackgw/internal/handler"
	"soustackgw/internal/router"
	"soustackgw/internal/service"
	"soustackgw/internal/tool"
	"soustackgw/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(tokens service.TokenService) *gin.Engine {
	src := new(mocks.MockProviderSource)
	registry := tool.NewCatalog(service.NewIngestService(src, "soustackgw", "dev", nil), service.NewDocumentService(src, nil))
	d := tool.NewDispatcher(registry, nil)
	return router.Setup(handler.NewToolHandler(d, nil), handler.NewHealthHandler(), tokens, nil, zap.NewNop())
}

func TestRouter_Healthz(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	newEngine(nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRouter_AuthProtectsToolsButNotHealth(t *testing.T) {
	tokens := service.NewTokenService(config.AuthConfig{JWTSecret: "s", Issuer: "i", TokenExpiry: time.Minute})
	engine := newEngine(tokens)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/tools/ping", strings.NewReader(`{"input":{}}`))
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, _, err := tokens.Issue("me", nil)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/v1/tools/ping", strings.NewReader(`{"input":{}}`))
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ToolCall(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/tools/ping", strings.NewReader(`{"input":{}}`))
	req.Header.Set("X-Request-ID", "req-1")
	newEngine(nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"req-1","ok":true,"output":{"pong":true}}`, w.Body.String())
}

func TestRouter_ListTools(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/tools", http.NoBody)
	newEngine(nil).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Tools, 7)
	assert.Equal(t, "ingest.document", body.Tools[0].Name)
	assert.Equal(t, "ping", body.Tools[6].Name)
}
