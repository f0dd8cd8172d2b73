package completion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nikkoola22/RH-cfdt/internal/domain"
)

const testKeyEnv = "RH_TEST_API_KEY"

func newTestClient(t *testing.T, serverURL string, maxRetries int) *Client {
	t.Helper()
	t.Setenv(testKeyEnv, "secret-key")
	c, err := NewClient(Config{
		BaseURL:    serverURL,
		APIKeyEnv:  testKeyEnv,
		Model:      "sonar-pro",
		Timeout:    5 * time.Second,
		MaxRetries: maxRetries,
	})
	require.NoError(t, err)
	return c
}

func chatResponse(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":` + jsonString(content) + `}}]}`
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv(testKeyEnv, "")
	_, err := NewClient(Config{APIKeyEnv: testKeyEnv})
	require.Error(t, err)
	assert.Contains(t, err.Error(), testKeyEnv)
}

func TestCompleteSuccess(t *testing.T) {
	var gotAuth string
	var gotBody request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(chatResponse("Vous avez 15 jours ARTT.")))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	answer, err := c.Complete(context.Background(), []domain.PromptMessage{
		{Role: "system", Content: "instructions"},
		{Role: "user", Content: "Combien de jours ARTT ai-je ?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Vous avez 15 jours ARTT.", answer)
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "sonar-pro", gotBody.Model)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "user", gotBody.Messages[1].Role)
}

func TestCompleteNon2xxCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid key"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2)
	_, err := c.Complete(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid key")
}

func TestCompleteRetriesOn5xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(chatResponse("réponse")))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2)
	answer, err := c.Complete(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "réponse", answer)
	assert.Equal(t, 2, calls)
}

func TestCompleteExhaustsRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 1)
	_, err := c.Complete(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, 2, calls, "initial attempt + one retry")
}

func TestCompleteMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	_, err := c.Complete(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	_, err := c.Complete(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestCompleteContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server's background read can observe the
		// client disconnect and cancel r.Context(); otherwise srv.Close()
		// blocks forever on this handler.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Complete(ctx, nil)
	require.Error(t, err)
}
