package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/postfolio/postfolio-backend/internal/domain"
	"github.com/postfolio/postfolio-backend/pkg/logger"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Gemini calls the Gemini generateContent API and parses the JSON
// object the model is instructed to return.
type Gemini struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGemini creates a Gemini classifier. The timeout bounds the whole
// outbound call; expiry is reported as a request failure.
func NewGemini(apiKey, model, baseURL string, timeout time.Duration) *Gemini {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Gemini{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Classify sends the instruction prompt plus content and parses the
// result
func (g *Gemini) Classify(ctx context.Context, content string) (*Result, error) {
	if strings.TrimSpace(content) == "" {
		return nil, newError(ReasonEmptyInput, nil)
	}

	rawText, err := g.callAPI(ctx, buildPrompt(content))
	if err != nil {
		return nil, err
	}

	result, cerr := parseResultText(rawText)
	if cerr != nil {
		logger.GetLogger().Warn().
			Str("reason", cerr.Reason).
			Msg("gemini returned unparseable classification")
		return nil, cerr
	}
	return result, nil
}

// buildPrompt embeds the content with quotes escaped so the model
// never sees a broken literal
func buildPrompt(content string) string {
	sanitized := strings.ReplaceAll(content, `"`, `\"`)
	return fmt.Sprintf(`Analyze this post and return STRICT JSON format with:
1. "type" (ONLY choose one: EXPERIENCE, EDUCATION, SKILL, PROJECT, ACHIEVEMENT) Academic achievements go to EDUCATION, other achievements go to ACHIEVEMENT
2. "tags" (comma-separated skills: technical skills, languages, soft skills)
3. "summary" (a short one-line heading suitable for a CV)

Return ONLY the JSON object, without any markdown formatting or additional text.
Example response:
{
  "type": "PROJECT",
  "tags": "React,Node.js",
  "summary": "React inventory dashboard"
}

Post Content: "%s"`, sanitized)
}

// --- Gemini API types ---

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) callAPI(ctx context.Context, prompt string) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{Temperature: 0.7},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", newError(ReasonRequest, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", newError(ReasonRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", newError(ReasonRequest, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(ReasonMalformed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", newError(ReasonStatus,
			fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(respBody), 200)))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", newError(ReasonMalformed, err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", newError(ReasonNoResult, fmt.Errorf("no candidates in response"))
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", newError(ReasonNoResult, fmt.Errorf("empty candidate text"))
	}
	return text, nil
}

// resultPayload is the JSON object the model is instructed to emit
type resultPayload struct {
	Type    string `json:"type"`
	Tags    string `json:"tags"`
	Summary string `json:"summary"`
}

// parseResultText extracts the JSON object from raw or
// markdown-fenced text and validates the labels
func parseResultText(text string) (*Result, *Error) {
	jsonStr, ok := extractJSON(text)
	if !ok {
		return nil, newError(ReasonMalformed, fmt.Errorf("could not extract JSON from %q", truncate(text, 120)))
	}

	var payload resultPayload
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, newError(ReasonMalformed, err)
	}

	if payload.Type == "" {
		return nil, newError(ReasonNoResult, fmt.Errorf("missing type field"))
	}

	postType := domain.PostType(payload.Type)
	if !domain.ValidPostType(payload.Type) {
		// Unknown label: fall back to SKILL rather than failing the call
		postType = domain.TypeSkill
	}

	var tags []string
	for _, tag := range strings.Split(payload.Tags, ",") {
		if t := strings.TrimSpace(tag); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		tags = []string{"General"}
	}

	return &Result{
		Type:    postType,
		Tags:    tags,
		Summary: strings.TrimSpace(payload.Summary),
	}, nil
}

// extractJSON handles both raw JSON and markdown-fenced JSON
func extractJSON(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") {
		return trimmed, true
	}
	if strings.HasPrefix(trimmed, "```") {
		start := strings.Index(trimmed, "{")
		end := strings.LastIndex(trimmed, "}")
		if start >= 0 && end > start {
			return trimmed[start : end+1], true
		}
	}
	return "", false
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
