package subgraph

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientQuerySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req graphQLRequest
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "{ ping }", req.Query)
		assert.Equal(t, "abc", req.Variables["id"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"ping":"pong"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 3, 10*time.Millisecond, time.Second)

	var dest struct {
		Ping string `json:"ping"`
	}
	err := client.query(context.Background(), "{ ping }", map[string]any{"id": "abc"}, &dest)
	require.NoError(t, err)
	assert.Equal(t, "pong", dest.Ping)
}

func TestClientRetryOn429(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := attempts.Add(1)
		if n <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`rate limited`))
			return
		}
		w.Write([]byte(`{"data":{"ping":"pong"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 3, 10*time.Millisecond, time.Second)

	var dest map[string]string
	err := client.query(context.Background(), "{ ping }", nil, &dest)
	require.NoError(t, err)
	assert.Equal(t, "pong", dest["ping"])
	assert.Equal(t, int32(3), attempts.Load())
}

func TestClientMaxRetriesExceeded(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, 2, 10*time.Millisecond, time.Second)

	var dest map[string]any
	err := client.query(context.Background(), "{ ping }", nil, &dest)
	require.Error(t, err)
	assert.Equal(t, int32(3), attempts.Load()) // initial + 2 retries
}

func TestClientNonRetryableStatus(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`bad query`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 3, 10*time.Millisecond, time.Second)

	var dest map[string]any
	err := client.query(context.Background(), "{ ping }", nil, &dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 400")
	assert.Contains(t, err.Error(), "bad query")
	assert.Equal(t, int32(1), attempts.Load())
}

func TestClientGraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"indexing_error"},{"message":"store error"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, 10*time.Millisecond, time.Second)

	var dest map[string]any
	err := client.query(context.Background(), "{ ping }", nil, &dest)
	require.Error(t, err)
	assert.Equal(t, "graphql: indexing_error; store error", err.Error())
}

func TestClientMissingData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, 10*time.Millisecond, time.Second)

	var dest map[string]any
	err := client.query(context.Background(), "{ ping }", nil, &dest)
	require.Error(t, err)
}

func TestClientInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway</html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 0, 10*time.Millisecond, time.Second)

	var dest map[string]any
	err := client.query(context.Background(), "{ ping }", nil, &dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing JSON response")
}

func TestClientContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, 5, time.Second, time.Second)

	var dest map[string]any
	err := client.query(ctx, "{ ping }", nil, &dest)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientRedactsEndpoint(t *testing.T) {
	endpoint := "http://127.0.0.1:1/api/secret-key/subgraphs/id/abc"
	client := NewClient(endpoint, 0, 10*time.Millisecond, 200*time.Millisecond)

	var dest map[string]any
	err := client.query(context.Background(), "{ ping }", nil, &dest)
	require.Error(t, err)
	assert.False(t, strings.Contains(err.Error(), "secret-key"), "error leaks endpoint: %v", err)
}
