package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routelab/skillrouter/pkg/catalog"
	"github.com/routelab/skillrouter/pkg/contextgen"
	"github.com/routelab/skillrouter/pkg/router"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cat, err := catalog.Parse([]byte(`
skills:
  terraform-base:
    description: Terraform scaffolding
    path: terraform-base
  ecr-setup:
    description: ECR repositories
    path: ecr-setup
    depends_on: [terraform-base]
tasks:
  container-deploy:
    description: Deploy a containerized service
    triggers: [deploy a container]
    skills: [ecr-setup]
`))
	require.NoError(t, err)

	store := catalog.NewStore(cat)
	loader := contextgen.NewContentLoader(t.TempDir())
	return New(store, router.NewWithSnapshots(store), loader, Config{Host: "localhost", Port: "0"})
}

func postRoute(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/route", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRouteEndpoint(t *testing.T) {
	srv := testServer(t)
	rec := postRoute(t, srv, `{"query": "use ecr-setup"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var result router.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, router.RouteSkill, result.Type)
	assert.Equal(t, "ecr-setup", result.Matched)
	assert.Equal(t, []string{"terraform-base", "ecr-setup"}, result.ExecutionOrder)
	assert.Equal(t, 1, result.Tier)
}

func TestRouteEndpointTaskMatch(t *testing.T) {
	srv := testServer(t)
	rec := postRoute(t, srv, `{"query": "deploy a container"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var result router.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, router.RouteTask, result.Type)
	assert.Equal(t, "container-deploy", result.Matched)
	assert.Equal(t, "deploy a container", result.MatchedTrigger)
}

func TestRouteEndpointUnmatched(t *testing.T) {
	srv := testServer(t)
	rec := postRoute(t, srv, `{"query": "completely unrelated"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var result router.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, router.RouteError, result.Type)
	assert.Zero(t, result.Tier)
	assert.Zero(t, result.Confidence)
}

func TestRouteEndpointEmptyQuery(t *testing.T) {
	srv := testServer(t)
	assert.Equal(t, http.StatusBadRequest, postRoute(t, srv, `{"query": "  "}`).Code)
	assert.Equal(t, http.StatusBadRequest, postRoute(t, srv, `not json`).Code)
}

func TestSkillsEndpoint(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/skills", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Skills []skillInfo `json:"skills"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Skills, 2)
	assert.Equal(t, "terraform-base", payload.Skills[0].Name)
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestContextEndpoint(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/context", strings.NewReader(`{"query": "use ecr-setup"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Context string `json:"context"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload.Context, "<skill_context>")
	assert.Contains(t, payload.Context, "## ecr-setup [PRIMARY]")
	assert.Contains(t, payload.Context, "## terraform-base [DEPENDENCY]")
}

func TestContextEndpointUnroutable(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/context", strings.NewReader(`{"query": "nothing matches this"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Context string `json:"context"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Empty(t, payload.Context)
}

func TestRouteMethodNotAllowed(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/route", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
