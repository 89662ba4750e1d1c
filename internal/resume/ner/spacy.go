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

// SpacyClient calls a general-purpose entity tagger exposing the displaCy
// service API (POST {base}/ent).
type SpacyClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewSpacyClient creates a client for the service at baseURL using model
func NewSpacyClient(baseURL, model string, timeout time.Duration) *SpacyClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &SpacyClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type spacyRequest struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

type spacyEntity struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Type  string `json:"type"`
}

// Recognize implements Recognizer
func (c *SpacyClient) Recognize(ctx context.Context, text string) ([]domain.Entity, error) {
	payload, err := json.Marshal(spacyRequest{Text: text, Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("spacy: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ent", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("spacy: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spacy: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("spacy: read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spacy: service returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var raw []spacyEntity
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("spacy: parse response: %w", err)
	}

	offsets := newCharToByte(text)
	entities := make([]domain.Entity, 0, len(raw))
	for _, r := range raw {
		t, ok := spacyLabel(r.Type)
		if !ok {
			continue
		}
		start, end := offsets.at(r.Start), offsets.at(r.End)
		if end <= start {
			continue
		}
		entities = append(entities, domain.Entity{
			Type:  t,
			Text:  text[start:end],
			Start: start,
			End:   end,
		})
	}

	return entities, nil
}

// spacyLabel maps OntoNotes labels onto entity types. Labels with no
// counterpart (DATE, MONEY, ...) are dropped.
func spacyLabel(label string) (domain.EntityType, bool) {
	switch strings.ToUpper(label) {
	case "PERSON":
		return domain.EntityPerson, true
	case "ORG":
		return domain.EntityOrganization, true
	case "GPE", "LOC":
		return domain.EntityLocation, true
	case "NORP", "FAC", "PRODUCT", "EVENT", "WORK_OF_ART", "LAW", "LANGUAGE":
		return domain.EntityMisc, true
	default:
		return "", false
	}
}
