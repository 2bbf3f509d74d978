package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateResponse(text string) string {
	resp := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				},
			},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func newTestGemini(handler http.HandlerFunc) (*Gemini, *httptest.Server) {
	server := httptest.NewServer(handler)
	g := NewGemini("test-key", "gemini-1.5-flash", server.URL, 5*time.Second)
	return g, server
}

func TestGeminiClassify_Success(t *testing.T) {
	g, server := newTestGemini(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Built a chat app")

		w.Write([]byte(candidateResponse(`{"type":"PROJECT","tags":"Go,WebSockets","summary":"Realtime chat app"}`)))
	})
	defer server.Close()

	result, err := g.Classify(context.Background(), "Built a chat app in Go")

	require.NoError(t, err)
	assert.Equal(t, domain.TypeProject, result.Type)
	assert.Equal(t, []string{"Go", "WebSockets"}, result.Tags)
	assert.Equal(t, "Realtime chat app", result.Summary)
}

func TestGeminiClassify_FencedJSON(t *testing.T) {
	fenced := "```json\n{\"type\":\"EXPERIENCE\",\"tags\":\"Leadership\",\"summary\":\"Led a team\"}\n```"
	g, server := newTestGemini(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse(fenced)))
	})
	defer server.Close()

	result, err := g.Classify(context.Background(), "Led a team of five")

	require.NoError(t, err)
	assert.Equal(t, domain.TypeExperience, result.Type)
	assert.Equal(t, []string{"Leadership"}, result.Tags)
}

func TestGeminiClassify_UnknownTypeFallsBackToSkill(t *testing.T) {
	g, server := newTestGemini(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse(`{"type":"HOBBY","tags":"Chess","summary":"Chess"}`)))
	})
	defer server.Close()

	result, err := g.Classify(context.Background(), "I play chess")

	require.NoError(t, err)
	assert.Equal(t, domain.TypeSkill, result.Type)
}

func TestGeminiClassify_EmptyTagsDefaultToGeneral(t *testing.T) {
	g, server := newTestGemini(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse(`{"type":"ACHIEVEMENT","tags":" , ","summary":"Won"}`)))
	})
	defer server.Close()

	result, err := g.Classify(context.Background(), "Won a hackathon")

	require.NoError(t, err)
	assert.Equal(t, []string{"General"}, result.Tags)
}

func TestGeminiClassify_BadStatus(t *testing.T) {
	g, server := newTestGemini(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	defer server.Close()

	_, err := g.Classify(context.Background(), "some content")

	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ReasonStatus, cerr.Reason)
}

func TestGeminiClassify_NoCandidates(t *testing.T) {
	g, server := newTestGemini(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})
	defer server.Close()

	_, err := g.Classify(context.Background(), "some content")

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ReasonNoResult, cerr.Reason)
}

func TestGeminiClassify_NonJSONText(t *testing.T) {
	g, server := newTestGemini(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse("Sorry, I cannot help with that.")))
	})
	defer server.Close()

	_, err := g.Classify(context.Background(), "some content")

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ReasonMalformed, cerr.Reason)
}

func TestGeminiClassify_MissingType(t *testing.T) {
	g, server := newTestGemini(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateResponse(`{"tags":"Go","summary":"something"}`)))
	})
	defer server.Close()

	_, err := g.Classify(context.Background(), "some content")

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ReasonNoResult, cerr.Reason)
}

func TestGeminiClassify_EmptyContent(t *testing.T) {
	g := NewGemini("key", "model", "http://unused", time.Second)

	_, err := g.Classify(context.Background(), "   ")

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ReasonEmptyInput, cerr.Reason)
}

func TestExtractJSON(t *testing.T) {
	raw, ok := extractJSON(`{"type":"SKILL"}`)
	assert.True(t, ok)
	assert.Equal(t, `{"type":"SKILL"}`, raw)

	fenced, ok := extractJSON("```json\n{\"type\":\"SKILL\"}\n```")
	assert.True(t, ok)
	assert.Equal(t, `{"type":"SKILL"}`, fenced)

	_, ok = extractJSON("no json here")
	assert.False(t, ok)
}
