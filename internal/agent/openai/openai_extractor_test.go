package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sovbridge/internal/agent/openai"
	"sovbridge/internal/config"
	"sovbridge/internal/domain"
	"sovbridge/internal/port"
	"sovbridge/internal/sov"
)

func testConfig() *config.AgentProviderConfig {
	return &config.AgentProviderConfig{
		Provider:     "openai",
		APIKey:       "test-key",
		DefaultModel: "gpt-4o-mini",
		MaxAttempts:  2,
		TimeoutSecs:  5,
	}
}

func agentJSON(t *testing.T) string {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"sheet_classification": "building",
		"properties":           []map[string]any{},
		"buildings": []map[string]any{
			{"building_number": "1", "location_address": "123 Main St"},
		},
	})
	require.NoError(t, err)
	return string(b)
}

func completionResponse(content, finishReason string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{
				"message":       map[string]any{"content": content},
				"finish_reason": finishReason,
			},
		},
	}
}

func TestExtractSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		rf, _ := body["response_format"].(map[string]any)
		assert.Equal(t, "json_object", rf["type"])
		msgs, _ := body["messages"].([]any)
		require.Len(t, msgs, 2)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse(agentJSON(t), "stop"))
	}))
	defer server.Close()

	e := openai.NewExtractorWithEndpoint(testConfig(), server.URL)
	out, err := e.Extract(context.Background(), port.ExtractInput{
		SourceFile: "sov.xlsx",
		SheetName:  "Buildings",
		Rows:       [][]string{{"Bldg #", "Address"}, {"1", "123 Main St"}},
	})
	require.NoError(t, err)

	assert.Equal(t, sov.ClassBuilding, out.Classification)
	assert.Equal(t, "gpt-4o-mini", out.ModelUsed)
	require.Len(t, out.Buildings, 1)
	assert.Equal(t, "123 Main St", out.Buildings[0]["location_address"])
	assert.Equal(t, "sov.xlsx", out.Buildings[0]["source_file"])
}

func TestExtractRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse(agentJSON(t), "stop"))
	}))
	defer server.Close()

	e := openai.NewExtractorWithEndpoint(testConfig(), server.URL)
	out, err := e.Extract(context.Background(), port.ExtractInput{
		SourceFile: "sov.xlsx",
		SheetName:  "Buildings",
		Rows:       [][]string{{"1", "123 Main St"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, sov.ClassBuilding, out.Classification)
}

func TestExtractExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	e := openai.NewExtractorWithEndpoint(testConfig(), server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{
		SourceFile: "sov.xlsx",
		SheetName:  "Buildings",
		Rows:       [][]string{{"1"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExtractionService))
	assert.Equal(t, int32(2), calls.Load())
}

func TestExtractTruncatedOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionResponse(`{"sheet_class`, "length"))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.MaxAttempts = 1
	e := openai.NewExtractorWithEndpoint(cfg, server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{
		SourceFile: "sov.xlsx",
		SheetName:  "Buildings",
		Rows:       [][]string{{"1"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finish_reason: length")
}
