package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resume-recommender/internal/shared/util"
)

// Searcher fetches live job listings from the TheirStack search API.
type Searcher struct {
	apiKey     string
	apiURL     string
	country    string
	limit      int
	maxAgeDays int
	httpClient *http.Client
}

// NewSearcher constructs a live job search client.
func NewSearcher(apiKey, apiURL, country string, limit, maxAgeDays int, timeout time.Duration) (*Searcher, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("THEIRSTACK_API_KEY is required")
	}
	if strings.TrimSpace(apiURL) == "" {
		return nil, fmt.Errorf("JOB_SEARCH_URL is required")
	}
	return &Searcher{
		apiKey:     apiKey,
		apiURL:     apiURL,
		country:    country,
		limit:      limit,
		maxAgeDays: maxAgeDays,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type searchRequest struct {
	Page               int      `json:"page"`
	Limit              int      `json:"limit"`
	JobTitleOr         []string `json:"job_title_or"`
	JobCountryCodeOr   []string `json:"job_country_code_or"`
	PostedAtMaxAgeDays int      `json:"posted_at_max_age_days"`
	JobTechnologySlug  []string `json:"job_technology_slug_or,omitempty"`
}

type searchResponse struct {
	Data []map[string]any `json:"data"`
}

// Search returns listings matching the role title, constrained by the
// configured country, listing limit, and posting age. Skills narrow the
// technology filter when present.
func (s *Searcher) Search(ctx context.Context, role string, skills []string) ([]Listing, error) {
	title := util.SanitizeRoleTitle(role)
	if title == "" {
		return []Listing{}, nil
	}

	slugs := make([]string, 0, len(skills))
	for _, skill := range skills {
		slugs = append(slugs, strings.ToLower(skill))
	}

	body, err := json.Marshal(searchRequest{
		Page:               0,
		Limit:              s.limit,
		JobTitleOr:         []string{title},
		JobCountryCodeOr:   []string{s.country},
		PostedAtMaxAgeDays: s.maxAgeDays,
		JobTechnologySlug:  slugs,
	})
	if err != nil {
		return nil, &SearchError{Role: role, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, &SearchError{Role: role, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, &SearchError{Role: role, Err: fmt.Errorf("request timed out: %w", err)}
		}
		return nil, &SearchError{Role: role, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SearchError{Role: role, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &SearchError{
			Role: role,
			Err:  fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	var parsed searchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &SearchError{Role: role, Err: fmt.Errorf("parse response: %w", err)}
	}

	listings := make([]Listing, 0, len(parsed.Data))
	for _, item := range parsed.Data {
		listings = append(listings, mapListing(item, role))
	}
	return listings, nil
}

// mapListing pulls display fields out of a raw search result. Providers
// rename fields between API versions, so each field tries a fixed list of
// keys in order before giving up.
func mapListing(item map[string]any, fallbackTitle string) Listing {
	l := Listing{Title: fallbackTitle}
	if title := firstString(item, "job_title", "title"); title != nil {
		l.Title = *title
	}
	l.Company = companyName(item)
	l.Link = firstString(item, "final_url", "url")
	l.Location = firstString(item, "location")
	l.Salary = firstString(item, "salary_string", "salary")
	return l
}

// companyName handles both the nested {"company": {"name": ...}} shape and
// the flat {"company": "..."} shape.
func companyName(item map[string]any) *string {
	switch v := item["company"].(type) {
	case map[string]any:
		if name, ok := v["name"].(string); ok && name != "" {
			return &name
		}
	case string:
		if v != "" {
			return &v
		}
	}
	return nil
}

func firstString(item map[string]any, keys ...string) *string {
	for _, key := range keys {
		if v, ok := item[key].(string); ok && v != "" {
			return &v
		}
	}
	return nil
}
