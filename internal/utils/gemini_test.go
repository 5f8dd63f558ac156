package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiOK(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":` + mustJSON(text) + `}]}}]}`
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestGenerateContent(t *testing.T) {
	var gotPath, gotKey string
	var gotBody geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiOK("**Título**\nConsejo corto.")))
	}))
	defer srv.Close()

	c := NewGeminiClientWithBaseURL("key-123", "gemini-2.0-flash", srv.URL)
	text, err := c.GenerateContent("hola")
	require.NoError(t, err)
	assert.Equal(t, "**Título**\nConsejo corto.", text)
	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)
	assert.Equal(t, "key-123", gotKey)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "hola", gotBody.Contents[0].Parts[0].Text)
}

func TestGenerateContentHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewGeminiClientWithBaseURL("key", "m", srv.URL)
	_, err := c.GenerateContent("hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateContentNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := NewGeminiClientWithBaseURL("key", "m", srv.URL)
	_, err := c.GenerateContent("hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestGenerateContentEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiOK("")))
	}))
	defer srv.Close()

	c := NewGeminiClientWithBaseURL("key", "m", srv.URL)
	_, err := c.GenerateContent("hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text")
}

func TestGenerateContentMissingKey(t *testing.T) {
	c := NewGeminiClientWithBaseURL("", "m", "http://unused")
	_, err := c.GenerateContent("hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
}
