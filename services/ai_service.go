package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// PillRef is the (id, name) pair sent to the interaction checker.
type PillRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// FlexFloat accepts both bare numbers and quoted number strings, which the
// model mixes freely.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("value %q is not numeric", s)
	}
	*f = FlexFloat(v)
	return nil
}

type ExtractedMarker struct {
	Name      string    `json:"name"`
	Value     FlexFloat `json:"value"`
	Unit      string    `json:"unit"`
	NormalMin FlexFloat `json:"normal_min"`
	NormalMax FlexFloat `json:"normal_max"`
	Status    string    `json:"status"`
	Category  string    `json:"category"`
}

type ExtractedRecommendation struct {
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Priority      string   `json:"priority"`
	RelatedMarker string   `json:"related_marker"`
	ActionItems   []string `json:"action_items"`
}

type ExtractedData struct {
	Markers         []ExtractedMarker         `json:"markers"`
	Recommendations []ExtractedRecommendation `json:"recommendations"`
}

type InteractionResult struct {
	MedicationID      uint   `json:"medication_id"`
	SupplementID      uint   `json:"supplement_id"`
	Severity          string `json:"severity"`
	Description       string `json:"description"`
	Recommendation    string `json:"recommendation"`
	SeparationMinutes *int   `json:"separation_minutes"`
}

// Extractor is the boundary to the AI collaborator. Implementations must
// convert malformed model output into an error, never leak a parse panic.
type Extractor interface {
	ExtractLabData(text string) (*ExtractedData, error)
	CheckInteractions(meds, supps []PillRef) ([]InteractionResult, error)
}

// AIService talks to an OpenAI-compatible chat completions endpoint.
type AIService struct {
	client  *http.Client
	apiKey  string
	baseURL string
	model   string
}

func NewAIService() *AIService {
	baseURL := os.Getenv("AI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := os.Getenv("AI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &AIService{
		client:  &http.Client{Timeout: 60 * time.Second},
		apiKey:  os.Getenv("AI_API_KEY"),
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
	}
}

func (s *AIService) ExtractLabData(text string) (*ExtractedData, error) {
	var sb bytes.Buffer
	sb.WriteString("Extract health markers and recommendations from this lab report.\n")
	sb.WriteString("Reply with JSON only, shaped as:\n")
	sb.WriteString(`{"markers":[{"name":"","value":0,"unit":"","normal_min":0,"normal_max":0,"status":"low|normal|high","category":""}],`)
	sb.WriteString(`"recommendations":[{"type":"supplement|dietary|physical","title":"","description":"","priority":"high|medium|low","related_marker":"","action_items":[""]}]}`)
	sb.WriteString("\n\nLab report:\n")
	sb.WriteString(text)

	raw, err := s.complete(sb.String())
	if err != nil {
		return nil, err
	}

	var data ExtractedData
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("unparseable extraction reply: %w", err)
	}
	return &data, nil
}

func (s *AIService) CheckInteractions(meds, supps []PillRef) ([]InteractionResult, error) {
	var sb bytes.Buffer
	sb.WriteString("Check for interactions between these medications and supplements.\n")
	sb.WriteString("Medications:\n")
	for _, m := range meds {
		sb.WriteString(fmt.Sprintf("- id %d: %s\n", m.ID, m.Name))
	}
	sb.WriteString("Supplements:\n")
	for _, p := range supps {
		sb.WriteString(fmt.Sprintf("- id %d: %s\n", p.ID, p.Name))
	}
	sb.WriteString("\nReply with a JSON array only, one entry per interacting pair:\n")
	sb.WriteString(`[{"medication_id":0,"supplement_id":0,"severity":"mild|moderate|severe","description":"","recommendation":"","separation_minutes":null}]`)

	raw, err := s.complete(sb.String())
	if err != nil {
		return nil, err
	}

	var out []InteractionResult
	if err := json.Unmarshal([]byte(extractJSON(raw)), &out); err != nil {
		return nil, fmt.Errorf("unparseable interaction reply: %w", err)
	}
	return out, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *AIService) complete(prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI_API_KEY not set")
	}

	b, err := json.Marshal(chatRequest{
		Model:       s.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat payload: %w", err)
	}

	req, err := http.NewRequest("POST", s.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read ai response error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr chatResponse
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("ai api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("ai api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var out chatResponse
	if err := json.Unmarshal(respBytes, &out); err != nil {
		bodyPreview := string(respBytes)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		return "", fmt.Errorf("decode ai response error: %v | body: %s", err, bodyPreview)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty reply from ai")
	}
	return out.Choices[0].Message.Content, nil
}

// extractJSON pulls the first JSON object or array out of a model reply,
// tolerating code fences and surrounding prose.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	s = strings.TrimSpace(s)

	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')
	start, end := objStart, strings.LastIndexByte(s, '}')
	if arrStart >= 0 && (objStart < 0 || arrStart < objStart) {
		start, end = arrStart, strings.LastIndexByte(s, ']')
	}
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}
