package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"avatar-studio/internal/client"
	"avatar-studio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) client.BackendClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := client.NewBackendClient(srv.URL+"/", 0, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestNewBackendClient_InvalidURL(t *testing.T) {
	_, err := client.NewBackendClient("not a url", 0, nil)
	assert.Error(t, err)
}

func TestBackendClient_GetConfig(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/config", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"models": ["gpt-4o-mini", "gpt-4"],
			"content_types": ["Reel", "Carousel"],
			"checklist": [{"id": "generate_script", "name": "Generate script", "description": "Create script", "automated": true}],
			"trending_profiles": ["@garyvee"]
		}`))
	}))

	cfg, err := c.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o-mini", "gpt-4"}, cfg.Models)
	assert.Equal(t, []string{"Reel", "Carousel"}, cfg.ContentTypes)
	require.Len(t, cfg.Checklist, 1)
	assert.Equal(t, "generate_script", cfg.Checklist[0].ID)
	assert.True(t, cfg.Checklist[0].Automated)
	assert.Equal(t, []string{"@garyvee"}, cfg.TrendingProfiles)
}

func TestBackendClient_GetConfig_Malformed(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))

	_, err := c.GetConfig(context.Background())
	require.Error(t, err)
	var apiErr *client.APIError
	assert.False(t, errors.As(err, &apiErr), "decode failure is not an API error")
}

func TestBackendClient_CreateContent(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/create-content", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{
			"topic":        "coffee",
			"content_type": "reel",
			"api_key":      "sk-test",
			"api_model":    "gpt-4o-mini",
		}, body)

		_, _ = w.Write([]byte(`{"success": true, "session_id": "s1", "result": {"caption": "Brew on!", "checklist_status": {"script_review": "pending"}}, "errors": ["hashtags: rate limited"]}`))
	}))

	out, err := c.CreateContent(context.Background(), models.ContentRequest{
		Topic: "coffee", ContentType: "reel", APIKey: "sk-test", APIModel: "gpt-4o-mini",
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", out.SessionID)
	require.NotNil(t, out.Result)
	assert.Equal(t, "Brew on!", out.Result.Caption)
	assert.Empty(t, out.Result.Script)
	assert.Equal(t, models.StatusMap{"script_review": models.StatusPending}, out.Result.ChecklistStatus)
	assert.Equal(t, []string{"hashtags: rate limited"}, out.Errors)
}

func TestBackendClient_CreateContent_ErrorDetail(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"string detail", http.StatusBadRequest, `{"detail": "Invalid content type"}`, "Invalid content type"},
		{"validation list", http.StatusUnprocessableEntity, `{"detail": [{"loc": ["body", "topic"], "msg": "field required"}]}`, ""},
		{"no body", http.StatusInternalServerError, ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := c.CreateContent(context.Background(), models.ContentRequest{Topic: "t", ContentType: "Reel", APIKey: "k", APIModel: "m"})
			var apiErr *client.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
		})
	}
}

func TestBackendClient_CreateContent_MissingResult(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"session_id": "s1"}`))
	}))

	_, err := c.CreateContent(context.Background(), models.ContentRequest{Topic: "t", ContentType: "Reel", APIKey: "k", APIModel: "m"})
	assert.Error(t, err)
}

func TestBackendClient_UpdateChecklist(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/checklist/coffee_Reel", r.URL.Path)

		var body models.ChecklistUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "create_voiceover", body.TaskID)
		assert.Equal(t, models.StatusManual, body.Status)

		_, _ = w.Write([]byte(`{"success": true, "checklist_status": {"create_voiceover": "manual"}}`))
	}))

	state, err := c.UpdateChecklist(context.Background(), "coffee_Reel", models.ChecklistUpdate{TaskID: "create_voiceover", Status: models.StatusManual})
	require.NoError(t, err)
	assert.True(t, state.Success)
	assert.Equal(t, models.StatusMap{"create_voiceover": models.StatusManual}, state.ChecklistStatus)
}

func TestBackendClient_SessionIDIsPathEscaped(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/checklist/cold%20brew%2Ftips_Reel", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"success": true, "checklist_status": {}}`))
	}))

	state, err := c.GetChecklist(context.Background(), "cold brew/tips_Reel")
	require.NoError(t, err)
	assert.True(t, state.Success)
	assert.Empty(t, state.ChecklistStatus)
}

func TestBackendClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := client.NewBackendClient(url, 0, nil)
	require.NoError(t, err)

	_, err = c.GetConfig(context.Background())
	require.Error(t, err)
	var apiErr *client.APIError
	assert.False(t, errors.As(err, &apiErr))
}
