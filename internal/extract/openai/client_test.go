package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activitymagic/internal/config"
	"activitymagic/internal/extract"
	"activitymagic/internal/extract/openai"
	"activitymagic/internal/port"
)

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(b)
}

func testRequest() port.CompletionRequest {
	return port.CompletionRequest{
		Model:       "gpt-3.5-turbo",
		Messages:    []port.Message{{Role: "user", Content: "hello"}},
		MaxTokens:   500,
		Temperature: 0.3,
		Timeout:     5 * time.Second,
	}
}

func TestClient_Complete_Success(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(completionBody(`{"title": "T"}`)))
	}))
	defer srv.Close()

	client := openai.NewClientWithEndpoint(&config.OpenAIConfig{APIKey: "test-key"}, srv.URL)
	out, err := client.Complete(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, `{"title": "T"}`, out)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-3.5-turbo", gotBody["model"])
	assert.Equal(t, float64(500), gotBody["max_tokens"])
}

func TestClient_Complete_MissingAPIKeyFailsWithoutNetworkCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := openai.NewClientWithEndpoint(&config.OpenAIConfig{}, srv.URL)
	_, err := client.Complete(context.Background(), testRequest())

	var authErr *extract.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.False(t, called)
}

func TestClient_Complete_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(completionBody("late")))
	}))
	defer srv.Close()

	client := openai.NewClientWithEndpoint(&config.OpenAIConfig{APIKey: "k"}, srv.URL)
	req := testRequest()
	req.Timeout = 50 * time.Millisecond
	_, err := client.Complete(context.Background(), req)

	var timeoutErr *extract.TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 50*time.Millisecond, timeoutErr.Budget)
}

func TestClient_Complete_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := openai.NewClientWithEndpoint(&config.OpenAIConfig{APIKey: "bad"}, srv.URL)
	_, err := client.Complete(context.Background(), testRequest())

	var authErr *extract.AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestClient_Complete_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := openai.NewClientWithEndpoint(&config.OpenAIConfig{APIKey: "k"}, srv.URL)
	_, err := client.Complete(context.Background(), testRequest())

	var upstreamErr *extract.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusTooManyRequests, upstreamErr.StatusCode)
	assert.Equal(t, 30*time.Second, upstreamErr.RetryAfter)
}

func TestClient_Complete_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := openai.NewClientWithEndpoint(&config.OpenAIConfig{APIKey: "k"}, srv.URL)
	_, err := client.Complete(context.Background(), testRequest())

	var upstreamErr *extract.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
}

func TestClient_Complete_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := openai.NewClientWithEndpoint(&config.OpenAIConfig{APIKey: "k"}, srv.URL)
	_, err := client.Complete(context.Background(), testRequest())

	var transportErr *extract.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestClient_Complete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	client := openai.NewClientWithEndpoint(&config.OpenAIConfig{APIKey: "k"}, srv.URL)
	_, err := client.Complete(context.Background(), testRequest())

	require.Error(t, err)
}
