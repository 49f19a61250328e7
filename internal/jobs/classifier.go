package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
)

// Classifier ranks candidate role titles against resume text using a
// zero-shot classification endpoint.
type Classifier struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

// NewClassifier constructs a zero-shot classifier client.
func NewClassifier(token, apiURL string, timeout time.Duration) (*Classifier, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("HUGGINGFACE_API_TOKEN is required")
	}
	if strings.TrimSpace(apiURL) == "" {
		return nil, fmt.Errorf("CLASSIFIER_URL is required")
	}
	return &Classifier{
		token:      token,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type classifyRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters classifyParameters `json:"parameters"`
}

type classifyParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type classifyResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Rank scores each label against the text. Results come back in the
// provider's score-descending order, scaled to 0-100 and rounded to two
// decimals. Labels the provider did not score trail the ranked ones with a
// nil score.
func (c *Classifier) Rank(ctx context.Context, text string, labels []string) ([]ScoredLabel, error) {
	if len(labels) == 0 {
		return []ScoredLabel{}, nil
	}

	body, err := json.Marshal(classifyRequest{
		Inputs:     text,
		Parameters: classifyParameters{CandidateLabels: labels},
	})
	if err != nil {
		return nil, &RankingError{Provider: "huggingface", Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, &RankingError{Provider: "huggingface", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, &RankingError{Provider: "huggingface", Err: fmt.Errorf("request timed out: %w", err)}
		}
		return nil, &RankingError{Provider: "huggingface", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RankingError{Provider: "huggingface", Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &RankingError{
			Provider: "huggingface",
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	var parsed classifyResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &RankingError{Provider: "huggingface", Err: fmt.Errorf("parse response: %w", err)}
	}

	ranked := make([]ScoredLabel, 0, len(labels))
	scored := make(map[string]struct{}, len(parsed.Labels))
	for i, label := range parsed.Labels {
		if i >= len(parsed.Scores) {
			break
		}
		score := math.Round(parsed.Scores[i]*100*100) / 100
		ranked = append(ranked, ScoredLabel{Label: label, Score: &score})
		scored[label] = struct{}{}
	}
	// Labels the provider dropped still come back, unscored, after the
	// ranked ones.
	for _, label := range labels {
		if _, ok := scored[label]; !ok {
			ranked = append(ranked, ScoredLabel{Label: label})
		}
	}
	return ranked, nil
}
