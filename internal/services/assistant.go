package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"hostmaster/internal/models"
	"hostmaster/internal/renewal"
)

// FallbackReply is returned whenever the completion service cannot answer
const FallbackReply = "I'm having trouble connecting to my brain. Please check your connection or try again later."

// maxContextRecords bounds how many records are serialized into the prompt
const maxContextRecords = 50

// AssistantService bridges user queries to an external text-completion
// endpoint. It formats the record collection into a bounded context, forwards
// the query, and returns the response text verbatim. Every failure mode
// degrades to a fixed fallback string.
type AssistantService struct {
	APIURL  string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewAssistantService creates a new assistant service
func NewAssistantService(apiURL, apiKey, model string, timeout time.Duration) *AssistantService {
	return &AssistantService{
		APIURL:  apiURL,
		APIKey:  apiKey,
		Model:   model,
		Timeout: timeout,
	}
}

// generateContent request/response shapes (Gemini-style REST API)
type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// buildPrompt serializes at most 50 records plus the current date into the
// instruction prompt.
func buildPrompt(query string, records []models.HostingRecord, today time.Time) (string, error) {
	if len(records) > maxContextRecords {
		records = records[:maxContextRecords]
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`You are an intelligent assistant for HostMaster, a Hosting Management Software.
Context:
- Current Records: %s
- Current Date: %s

User Query: %s

Instructions:
1. Analyze the provided hosting data to answer accurately.
2. If asked for financial summaries, calculate using the 'amount' field.
3. If asked for renewal help, identify clients with upcoming 'validationDate'.
4. Provide professional, concise markdown responses.`,
		string(data), today.Format(renewal.ISODate), query)

	return prompt, nil
}

// Ask forwards a user query together with the record context and returns the
// service's text response. A missing credential, transport failure, non-200
// status or empty response all collapse to the fallback reply; the caller
// never sees an error.
func (s *AssistantService) Ask(ctx context.Context, query string, records []models.HostingRecord) string {
	if s.APIKey == "" || s.APIURL == "" {
		log.Println("Assistant not configured, returning fallback reply")
		return FallbackReply
	}

	prompt, err := buildPrompt(query, records, time.Now())
	if err != nil {
		log.Printf("Failed to build assistant prompt: %v", err)
		return FallbackReply
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []contentPart{{Text: prompt}}}},
	})
	if err != nil {
		log.Printf("Failed to encode assistant request: %v", err)
		return FallbackReply
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.APIURL, s.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Printf("Failed to build assistant request: %v", err)
		return FallbackReply
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.APIKey)

	client := &http.Client{Timeout: s.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("Assistant request failed: %v", err)
		return FallbackReply
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Assistant API returned status %d", resp.StatusCode)
		return FallbackReply
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Failed to parse assistant response: %v", err)
		return FallbackReply
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return FallbackReply
	}

	text := result.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return FallbackReply
	}
	return text
}
