package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/talentlens/resume-parser/internal/resume/domain"
)

// TokenClassifier calls a hosted token-classification model (the
// Hugging Face inference API shape) with simple aggregation, so adjacent
// word pieces come back merged into one span.
type TokenClassifier struct {
	url        string
	token      string
	httpClient *http.Client
}

// NewTokenClassifier creates a client for the model served at url. The token
// is sent as a bearer credential when non-empty.
func NewTokenClassifier(url, token string, timeout time.Duration) *TokenClassifier {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TokenClassifier{
		url:   url,
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type tokenClassificationRequest struct {
	Inputs     string                        `json:"inputs"`
	Parameters tokenClassificationParameters `json:"parameters"`
}

type tokenClassificationParameters struct {
	AggregationStrategy string `json:"aggregation_strategy"`
}

// tokenClassificationEntity is one span of the response. Aggregated
// responses carry entity_group; raw per-token responses carry entity.
type tokenClassificationEntity struct {
	EntityGroup string  `json:"entity_group"`
	Entity      string  `json:"entity"`
	Score       float64 `json:"score"`
	Word        string  `json:"word"`
	Start       int     `json:"start"`
	End         int     `json:"end"`
}

// Recognize implements Recognizer
func (c *TokenClassifier) Recognize(ctx context.Context, text string) ([]domain.Entity, error) {
	payload, err := json.Marshal(tokenClassificationRequest{
		Inputs:     text,
		Parameters: tokenClassificationParameters{AggregationStrategy: "simple"},
	})
	if err != nil {
		return nil, fmt.Errorf("token classifier: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("token classifier: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token classifier: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("token classifier: read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token classifier: service returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var raw []tokenClassificationEntity
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("token classifier: parse response: %w", err)
	}

	return mergeTokens(text, raw), nil
}

// mergeTokens converts response spans into entities. A token tagged I-X, or
// a "##" word piece, extends the previous X entity when only whitespace
// separates them, so per-token responses still yield whole names.
func mergeTokens(text string, raw []tokenClassificationEntity) []domain.Entity {
	offsets := newCharToByte(text)
	entities := make([]domain.Entity, 0, len(raw))
	last := -1

	for _, r := range raw {
		label := r.EntityGroup
		if label == "" {
			label = r.Entity
		}
		t, inside, ok := tokenClassifierLabel(label)
		if !ok {
			last = -1
			continue
		}

		start, end := offsets.at(r.Start), offsets.at(r.End)
		continuation := inside || strings.HasPrefix(r.Word, "##")
		if continuation && last >= 0 && entities[last].Type == t && contiguous(text, entities[last].End, start, end) {
			entities[last].End = end
			entities[last].Text = strings.TrimSpace(text[entities[last].Start:end])
			continue
		}

		word := strings.TrimSpace(r.Word)
		if word == "" {
			continue
		}
		entities = append(entities, domain.Entity{
			Type:  t,
			Text:  word,
			Start: start,
			End:   end,
		})
		last = len(entities) - 1
	}

	return entities
}

func contiguous(text string, prevEnd, start, end int) bool {
	if start < prevEnd || end <= start {
		return false
	}
	return strings.TrimSpace(text[prevEnd:start]) == ""
}

// tokenClassifierLabel maps CoNLL-style groups. The B-/I- prefixes appear
// when the service ignores the aggregation parameter; inside reports I-.
func tokenClassifierLabel(group string) (t domain.EntityType, inside bool, ok bool) {
	group = strings.ToUpper(group)
	switch {
	case strings.HasPrefix(group, "I-"):
		group, inside = group[2:], true
	case strings.HasPrefix(group, "B-"):
		group = group[2:]
	}

	switch group {
	case "PER":
		return domain.EntityPerson, inside, true
	case "ORG":
		return domain.EntityOrganization, inside, true
	case "LOC":
		return domain.EntityLocation, inside, true
	case "MISC":
		return domain.EntityMisc, inside, true
	default:
		return "", false, false
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
