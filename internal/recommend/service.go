// Package recommend orchestrates the resume pipeline: text extraction,
// skill detection, role derivation, and optional ranking or live search.
// A degraded stage never fails the request; whatever was produced before
// the failure is returned alongside an error note.
package recommend

import (
	"context"
	"strings"
	"time"

	"resume-recommender/internal/extract"
	"resume-recommender/internal/jobs"
	"resume-recommender/internal/roles"
	"resume-recommender/internal/shared/metrics"
	"resume-recommender/internal/shared/telemetry"
	"resume-recommender/internal/skills"
)

// Ranker scores candidate role titles against resume text.
type Ranker interface {
	Rank(ctx context.Context, text string, labels []string) ([]jobs.ScoredLabel, error)
}

// errNoText marks the empty-extraction short-circuit. It rides the error
// field of an otherwise well-formed 200 response.
const errNoText = "no text found in resume"

// JobSearcher fetches live listings for a single role title.
type JobSearcher interface {
	Search(ctx context.Context, role string, skills []string) ([]jobs.Listing, error)
}

// Service runs the pipeline. Deriver handles role derivation for live
// recommendations; Static always backs the classifier flow so it works
// without a generative provider.
type Service struct {
	Extractor       *extract.Extractor
	Vocabulary      skills.Vocabulary
	Deriver         roles.Deriver
	Static          *roles.StaticDeriver
	Ranker          Ranker
	Searcher        JobSearcher
	SearchRoleLimit int
	EchoResumeText  bool
}

// RecommendResult is the response body for a live recommendation request.
// LiveJobs is nil when no searcher is configured and the key is omitted;
// with a searcher it is always present, empty when every search failed.
type RecommendResult struct {
	ExtractedSkills []string       `json:"extracted_skills"`
	ModelOutput     roles.Output   `json:"model_output"`
	LiveJobs        []jobs.Listing `json:"live_jobs,omitzero"`
	ResumeText      string         `json:"resume_text,omitempty"`
	Error           string         `json:"error,omitempty"`
}

// UploadResult is the response body for a classifier-ranked upload.
type UploadResult struct {
	ExtractedSkills []string           `json:"extracted_skills"`
	RecommendedJobs []jobs.ScoredLabel `json:"recommended_jobs"`
	Error           string             `json:"error,omitempty"`
}

// RecommendJobs runs extraction, detection, derivation, and live search.
func (s *Service) RecommendJobs(ctx context.Context, data []byte, fileName string) RecommendResult {
	metrics.IncRecommendStarted()
	start := time.Now()
	defer func() {
		metrics.ObservePipelineDurationMs(float64(time.Since(start).Milliseconds()))
	}()

	res := RecommendResult{ExtractedSkills: []string{}}

	text, err := s.Extractor.Text(data, fileName)
	if err != nil {
		telemetry.Warn("text extraction failed", map[string]any{
			"file":  fileName,
			"error": err.Error(),
		})
		res.ModelOutput = roles.ErrorOutput(err)
		res.Error = err.Error()
		metrics.IncRecommendPartial()
		return res
	}
	if s.EchoResumeText {
		res.ResumeText = text
	}

	res.ExtractedSkills = skills.Detect(text, s.Vocabulary)
	if strings.TrimSpace(text) == "" {
		res.ModelOutput = roles.RolesOutput(nil)
		res.Error = errNoText
		metrics.IncRecommendPartial()
		return res
	}

	out, err := s.Deriver.Derive(ctx, text, res.ExtractedSkills)
	if err != nil {
		telemetry.Warn("role derivation failed", map[string]any{
			"file":  fileName,
			"error": err.Error(),
		})
		res.ModelOutput = roles.ErrorOutput(err)
		res.Error = err.Error()
		metrics.IncDerivationFailed()
		metrics.IncRecommendPartial()
		return res
	}
	res.ModelOutput = out

	if s.Searcher != nil {
		res.LiveJobs = s.searchJobs(ctx, out.Titles(), res.ExtractedSkills, fileName)
	}

	metrics.IncRecommendCompleted()
	return res
}

// searchJobs queries live listings for the first few derived roles. A role
// whose search fails contributes nothing; the others still count.
func (s *Service) searchJobs(ctx context.Context, titles, detected []string, fileName string) []jobs.Listing {
	limit := s.SearchRoleLimit
	if limit <= 0 || limit > len(titles) {
		limit = len(titles)
	}

	listings := []jobs.Listing{}
	for _, title := range titles[:limit] {
		found, err := s.Searcher.Search(ctx, title, detected)
		if err != nil {
			telemetry.Warn("live job search failed", map[string]any{
				"file":  fileName,
				"role":  title,
				"error": err.Error(),
			})
			continue
		}
		listings = append(listings, found...)
	}
	return listings
}

// UploadResume runs extraction, detection, static derivation, and
// classifier ranking.
func (s *Service) UploadResume(ctx context.Context, data []byte, fileName string) UploadResult {
	metrics.IncRecommendStarted()
	start := time.Now()
	defer func() {
		metrics.ObservePipelineDurationMs(float64(time.Since(start).Milliseconds()))
	}()

	res := UploadResult{ExtractedSkills: []string{}, RecommendedJobs: []jobs.ScoredLabel{}}

	text, err := s.Extractor.Text(data, fileName)
	if err != nil {
		telemetry.Warn("text extraction failed", map[string]any{
			"file":  fileName,
			"error": err.Error(),
		})
		res.Error = err.Error()
		metrics.IncRecommendPartial()
		return res
	}

	res.ExtractedSkills = skills.Detect(text, s.Vocabulary)
	if strings.TrimSpace(text) == "" {
		res.Error = errNoText
		metrics.IncRecommendPartial()
		return res
	}

	out, err := s.Static.Derive(ctx, text, res.ExtractedSkills)
	if err != nil {
		res.Error = err.Error()
		metrics.IncRecommendPartial()
		return res
	}
	titles := out.Titles()
	if len(titles) == 0 || s.Ranker == nil {
		for _, title := range titles {
			res.RecommendedJobs = append(res.RecommendedJobs, jobs.ScoredLabel{Label: title})
		}
		metrics.IncRecommendCompleted()
		return res
	}

	ranked, err := s.Ranker.Rank(ctx, text, titles)
	if err != nil {
		telemetry.Warn("role ranking failed", map[string]any{
			"file":  fileName,
			"error": err.Error(),
		})
		// Unranked roles still go back, each with a nil score.
		for _, title := range titles {
			res.RecommendedJobs = append(res.RecommendedJobs, jobs.ScoredLabel{Label: title})
		}
		res.Error = err.Error()
		metrics.IncRankingFailed()
		metrics.IncRecommendPartial()
		return res
	}
	res.RecommendedJobs = ranked

	metrics.IncRecommendCompleted()
	return res
}
