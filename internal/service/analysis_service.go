package service

import (
	"bytes"
	"candypang_backend/internal/config"
	"candypang_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AnalysisService turns a batch of praise/message texts into keywords and
// per-student suggestions. It calls a chat-completions endpoint when
// configured and falls back to a local word-count heuristic of the same
// shape when the remote call fails or is unavailable.
type AnalysisService struct {
	config config.AIConfig
	client *http.Client
}

func NewAnalysisService(cfg config.AIConfig) *AnalysisService {
	return &AnalysisService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type AnalysisEntry struct {
	Name    string `json:"name" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type Keyword struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

type Recommendation struct {
	Name   string `json:"name"`
	Quote  string `json:"quote"`
	Reason string `json:"reason"`
}

type FeedbackSuggestion struct {
	Name       string `json:"name"`
	Quote      string `json:"quote"`
	Suggestion string `json:"suggestion"`
}

type AnalysisResult struct {
	Keywords            []Keyword            `json:"keywords"`
	Recommendations     []Recommendation     `json:"recommendations"`
	FeedbackSuggestions []FeedbackSuggestion `json:"feedbackSuggestions"`
	Fallback            bool                 `json:"fallback"`
}

type aiChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []aiChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message aiChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AnalysisService) Analyze(entries []AnalysisEntry) *AnalysisResult {
	if s.config.BaseURL == "" {
		return localAnalyze(entries)
	}

	result, err := s.analyzeRemote(entries)
	if err != nil {
		logger.Log.Warn("remote analysis failed, using local heuristic", zap.Error(err))
		return localAnalyze(entries)
	}
	return result
}

func (s *AnalysisService) analyzeRemote(entries []AnalysisEntry) (*AnalysisResult, error) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}

	prompt := "You are a classroom assistant. Given these student entries as JSON, " +
		"reply with only a JSON object of the shape " +
		`{"keywords":[{"text","count"}],"recommendations":[{"name","quote","reason"}],` +
		`"feedbackSuggestions":[{"name","quote","suggestion"}]}.` +
		"\n\nEntries:\n" + string(raw)

	reqBody := chatCompletionRequest{
		Model: s.config.Model,
		Messages: []aiChatMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("AI returned no choices")
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var result AnalysisResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

var analysisStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "was": true, "with": true,
	"this": true, "that": true, "are": true, "you": true, "have": true,
}

// localAnalyze is the offline heuristic: top word frequencies for the
// cloud, each student's longest entry as the recommendation quote, and a
// canned suggestion per student.
func localAnalyze(entries []AnalysisEntry) *AnalysisResult {
	counts := make(map[string]int)
	longest := make(map[string]string)
	var order []string

	for _, entry := range entries {
		for _, word := range strings.Fields(strings.ToLower(entry.Content)) {
			word = strings.Trim(word, ".,!?\"'()[]:;")
			if len(word) < 2 || analysisStopwords[word] {
				continue
			}
			counts[word]++
		}

		if _, seen := longest[entry.Name]; !seen {
			order = append(order, entry.Name)
		}
		if len(entry.Content) > len(longest[entry.Name]) {
			longest[entry.Name] = entry.Content
		}
	}

	keywords := make([]Keyword, 0, len(counts))
	for text, count := range counts {
		keywords = append(keywords, Keyword{Text: text, Count: count})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Text < keywords[j].Text
	})
	if len(keywords) > 10 {
		keywords = keywords[:10]
	}

	result := &AnalysisResult{
		Keywords: keywords,
		Fallback: true,
	}
	for _, name := range order {
		result.Recommendations = append(result.Recommendations, Recommendation{
			Name:   name,
			Quote:  longest[name],
			Reason: "most substantial entry for this student",
		})
		result.FeedbackSuggestions = append(result.FeedbackSuggestions, FeedbackSuggestion{
			Name:       name,
			Quote:      longest[name],
			Suggestion: "acknowledge the entry and encourage a concrete next step",
		})
	}
	return result
}
