package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostmaster/internal/models"
)

func assistantRecords(n int) []models.HostingRecord {
	records := make([]models.HostingRecord, n)
	for i := range records {
		records[i] = models.HostingRecord{
			ID:         fmt.Sprintf("r%d", i),
			ClientName: fmt.Sprintf("Client %d", i),
			Amount:     100,
		}
	}
	return records
}

func completionServer(t *testing.T, reply string, capture *generateRequest) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("x-goog-api-key"))

		if capture != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}

		resp := generateResponse{}
		resp.Candidates = []struct {
			Content content `json:"content"`
		}{
			{Content: content{Parts: []contentPart{{Text: reply}}}},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestAskReturnsResponseVerbatim(t *testing.T) {
	var captured generateRequest
	srv := completionServer(t, "**Total revenue**: $300", &captured)
	defer srv.Close()

	assistant := NewAssistantService(srv.URL, "test-key", "test-model", 5*time.Second)
	answer := assistant.Ask(context.Background(), "What is the total revenue?", assistantRecords(3))

	assert.Equal(t, "**Total revenue**: $300", answer)

	require.Len(t, captured.Contents, 1)
	require.Len(t, captured.Contents[0].Parts, 1)
	prompt := captured.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, "What is the total revenue?")
	assert.Contains(t, prompt, "Client 0")
	assert.Contains(t, prompt, time.Now().Format("2006-01-02"))
}

func TestAskBoundsContextToFiftyRecords(t *testing.T) {
	var captured generateRequest
	srv := completionServer(t, "ok", &captured)
	defer srv.Close()

	assistant := NewAssistantService(srv.URL, "test-key", "test-model", 5*time.Second)
	assistant.Ask(context.Background(), "hello", assistantRecords(80))

	prompt := captured.Contents[0].Parts[0].Text
	assert.Contains(t, prompt, `"r49"`)
	assert.NotContains(t, prompt, `"r50"`)
}

func TestAskFallbackWithoutCredential(t *testing.T) {
	assistant := NewAssistantService("https://example.com", "", "test-model", time.Second)
	answer := assistant.Ask(context.Background(), "hello", nil)
	assert.Equal(t, FallbackReply, answer)
}

func TestAskFallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	assistant := NewAssistantService(srv.URL, "test-key", "test-model", time.Second)
	answer := assistant.Ask(context.Background(), "hello", assistantRecords(1))
	assert.Equal(t, FallbackReply, answer)
}

func TestAskFallbackOnUnreachableService(t *testing.T) {
	assistant := NewAssistantService("http://127.0.0.1:1", "test-key", "test-model", time.Second)
	answer := assistant.Ask(context.Background(), "hello", assistantRecords(1))
	assert.Equal(t, FallbackReply, answer)
}

func TestAskFallbackOnEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{})
	}))
	defer srv.Close()

	assistant := NewAssistantService(srv.URL, "test-key", "test-model", time.Second)
	answer := assistant.Ask(context.Background(), "hello", assistantRecords(1))
	assert.Equal(t, FallbackReply, answer)
}
