package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/omnireach/crm-backend/pkg/cache"
	"github.com/omnireach/crm-backend/pkg/genai"
)

// DefaultAITTL is how long AI completions stay cached
const DefaultAITTL = 10 * time.Minute

var jsonBlockPattern = regexp.MustCompile(`\{[\s\S]*\}`)

// AIService wraps the generative-text client with a read-through TTL cache
// and the prompt catalog. The cache key is the exact prompt string, so
// identical prompts share one completion regardless of caller.
type AIService struct {
	completer genai.Completer
	cache     cache.Cache
	ttl       time.Duration
}

// NewAIService creates a new AIService. ttl <= 0 falls back to DefaultAITTL.
func NewAIService(completer genai.Completer, c cache.Cache, ttl time.Duration) *AIService {
	if ttl <= 0 {
		ttl = DefaultAITTL
	}
	return &AIService{
		completer: completer,
		cache:     c,
		ttl:       ttl,
	}
}

// complete runs one prompt through the cache, then the upstream
func (s *AIService) complete(ctx context.Context, prompt string) (string, error) {
	// Steer the model toward short answers before caching, so the cache
	// key matches what was actually asked upstream.
	prompt = prompt + "\n\nInstructions: Answer in a concise paragraph (no more than 10 lines). After the paragraph, list 3-5 key points as bullet points. Avoid unnecessary details."
	key := "genai:" + prompt

	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		log.Printf("[WARN] ai cache read failed: %v", err)
	} else if ok {
		return cached, nil
	}

	text, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	if err := s.cache.Set(ctx, key, text, s.ttl); err != nil {
		log.Printf("[WARN] ai cache write failed: %v", err)
	}
	return text, nil
}

// SuggestMessages proposes up to three campaign messages for an objective
func (s *AIService) SuggestMessages(ctx context.Context, objective string) ([]string, error) {
	text, err := s.complete(ctx, fmt.Sprintf("Suggest 3 CRM campaign messages for this objective: %s", objective))
	if err != nil {
		return nil, err
	}
	var messages []string
	for _, line := range regexp.MustCompile(`\n\n|\n`).Split(text, -1) {
		if line = strings.TrimSpace(line); line != "" {
			messages = append(messages, line)
		}
		if len(messages) == 3 {
			break
		}
	}
	return messages, nil
}

// SegmentRules converts a natural-language segment description into a
// store filter. The model's first JSON block is taken verbatim; anything
// else yields an empty rule set.
func (s *AIService) SegmentRules(ctx context.Context, input string) (map[string]interface{}, error) {
	text, err := s.complete(ctx, fmt.Sprintf("Convert this segment description to JSON rules for MongoDB: %s", input))
	if err != nil {
		return nil, err
	}
	rules := map[string]interface{}{}
	if block := jsonBlockPattern.FindString(text); block != "" {
		if err := json.Unmarshal([]byte(block), &rules); err != nil {
			return map[string]interface{}{}, nil
		}
	}
	return rules, nil
}

// PerformanceSummary writes a readable summary of campaign stats
func (s *AIService) PerformanceSummary(ctx context.Context, stats interface{}) (string, error) {
	return s.completeJSON(ctx, "Write a human-readable summary for these CRM campaign stats: %s", stats)
}

// SmartSchedule recommends a send time for an audience and history
func (s *AIService) SmartSchedule(ctx context.Context, audience, history interface{}) (string, error) {
	return s.completeJSON(ctx,
		"Based on this audience and campaign history, recommend the best time and day to send a campaign for maximum engagement: %s",
		map[string]interface{}{"audience": audience, "history": history})
}

// Lookalike suggests audiences similar to a high-performing segment
func (s *AIService) Lookalike(ctx context.Context, segment interface{}) (string, error) {
	return s.completeJSON(ctx, "Given this high-performing audience segment, suggest additional lookalike audiences: %s", segment)
}

// AutoTag labels a campaign from its audience and message intent
func (s *AIService) AutoTag(ctx context.Context, audience interface{}, message string) (string, error) {
	return s.completeJSON(ctx, "Label this campaign based on its audience and message intent: %s",
		map[string]interface{}{"audience": audience, "message": message})
}

// DashboardInsight analyzes audience data for the dashboard
func (s *AIService) DashboardInsight(ctx context.Context, audience interface{}) (string, error) {
	return s.completeJSON(ctx, "Analyze this CRM audience data and provide actionable insights and recommendations: %s", audience)
}

// ValidateRecords reviews ingested records for data quality issues
func (s *AIService) ValidateRecords(ctx context.Context, records interface{}) (string, error) {
	return s.completeJSON(ctx, "Analyze these CRM data records and provide validation insights, issues, and recommendations: %s", records)
}

// AutoFixResult is the outcome of an AI data auto-fix pass
type AutoFixResult struct {
	Success    bool                     `json:"success"`
	FixedData  []map[string]interface{} `json:"fixedData"`
	FixedCount int                      `json:"fixedCount"`
	Error      string                   `json:"error,omitempty"`
}

// AutoFixRecords asks the model to repair common data quality issues and
// parses the fixed records out of its reply
func (s *AIService) AutoFixRecords(ctx context.Context, records interface{}) (*AutoFixResult, error) {
	text, err := s.completeJSON(ctx,
		"Auto-fix common CRM data quality issues (formatting, duplicates, missing fields) in these records. Return fixed records and a count: %s",
		records)
	if err != nil {
		return nil, err
	}

	result := &AutoFixResult{FixedData: []map[string]interface{}{}}
	block := jsonBlockPattern.FindString(text)
	if block == "" {
		result.Error = "AI did not return valid fixed data"
		return result, nil
	}
	var parsed struct {
		FixedData  []map[string]interface{} `json:"fixedData"`
		FixedCount int                      `json:"fixedCount"`
	}
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		result.Error = "failed to parse AI response"
		return result, nil
	}
	result.Success = true
	result.FixedData = parsed.FixedData
	result.FixedCount = parsed.FixedCount
	if result.FixedCount == 0 {
		result.FixedCount = len(parsed.FixedData)
	}
	return result, nil
}

// completeJSON formats payload as JSON into the prompt template
func (s *AIService) completeJSON(ctx context.Context, format string, payload interface{}) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return s.complete(ctx, fmt.Sprintf(format, string(encoded)))
}
