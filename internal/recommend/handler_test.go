package recommend_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-recommender/internal/extract"
	"resume-recommender/internal/jobs"
	"resume-recommender/internal/recommend"
	"resume-recommender/internal/roles"
	"resume-recommender/internal/skills"
)

type stubDeriver struct {
	out roles.Output
	err error
}

func (s stubDeriver) Derive(context.Context, string, []string) (roles.Output, error) {
	return s.out, s.err
}

type stubOCR struct{}

func (stubOCR) ImageText(string) (string, error) { return "", nil }

type failingSearcher struct{}

func (failingSearcher) Search(_ context.Context, role string, _ []string) ([]jobs.Listing, error) {
	return nil, &jobs.SearchError{Role: role, Err: errors.New("quota exceeded")}
}

func newTestRouter(deriver roles.Deriver) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := &recommend.Service{
		Extractor:  extract.NewWithOCR(stubOCR{}),
		Vocabulary: skills.DefaultVocabulary(),
		Deriver:    deriver,
		Static:     roles.NewStaticDeriver(nil),
	}
	router := gin.New()
	recommend.NewHandler(svc).RegisterRoutes(router)
	return router
}

func multipartBody(t *testing.T, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestRecommendJobsEndpoint(t *testing.T) {
	router := newTestRouter(stubDeriver{out: roles.RolesOutput([]roles.Role{
		{Title: "Python Developer"},
	})})

	body, contentType := multipartBody(t, "resume.txt", []byte("Years of Python experience"))
	req := httptest.NewRequest(http.MethodPost, "/recommend_jobs", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var got struct {
		ExtractedSkills []string `json:"extracted_skills"`
		ModelOutput     []string `json:"model_output"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.ExtractedSkills) != 1 || got.ExtractedSkills[0] != "Python" {
		t.Fatalf("extracted_skills = %v", got.ExtractedSkills)
	}
	if len(got.ModelOutput) != 1 || got.ModelOutput[0] != "Python Developer" {
		t.Fatalf("model_output = %v", got.ModelOutput)
	}
}

func TestRecommendJobsEndpointDerivationFailureStaysOK(t *testing.T) {
	router := newTestRouter(stubDeriver{err: &roles.DerivationError{
		Provider: "perplexity",
		Err:      context.DeadlineExceeded,
	}})

	body, contentType := multipartBody(t, "resume.txt", []byte("Python work"))
	req := httptest.NewRequest(http.MethodPost, "/recommend_jobs", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("partial results still return 200, got %d", resp.Code)
	}

	var got struct {
		ExtractedSkills []string `json:"extracted_skills"`
		Error           string   `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Error == "" {
		t.Fatal("expected error field in partial result")
	}
	if len(got.ExtractedSkills) != 1 {
		t.Fatalf("extracted_skills = %v", got.ExtractedSkills)
	}
}

func TestRecommendJobsEndpointSearchFailureYieldsEmptyLiveJobs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &recommend.Service{
		Extractor:  extract.NewWithOCR(stubOCR{}),
		Vocabulary: skills.DefaultVocabulary(),
		Deriver: stubDeriver{out: roles.RolesOutput([]roles.Role{
			{Title: "Python Developer"},
		})},
		Static:          roles.NewStaticDeriver(nil),
		Searcher:        failingSearcher{},
		SearchRoleLimit: 2,
	}
	router := gin.New()
	recommend.NewHandler(svc).RegisterRoutes(router)

	body, contentType := multipartBody(t, "resume.txt", []byte("Python work"))
	req := httptest.NewRequest(http.MethodPost, "/recommend_jobs", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	// A configured searcher whose every call fails still reports the
	// field, as an empty list.
	if !strings.Contains(resp.Body.String(), `"live_jobs":[]`) {
		t.Fatalf("body missing empty live_jobs: %s", resp.Body.String())
	}
}

func TestRecommendJobsEndpointMissingFile(t *testing.T) {
	router := newTestRouter(stubDeriver{out: roles.RolesOutput(nil)})

	req := httptest.NewRequest(http.MethodPost, "/recommend_jobs", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}
}

func TestUploadResumeEndpoint(t *testing.T) {
	router := newTestRouter(stubDeriver{out: roles.RolesOutput(nil)})

	body, contentType := multipartBody(t, "resume.txt", []byte("React and SQL work"))
	req := httptest.NewRequest(http.MethodPost, "/upload_resume", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var got struct {
		ExtractedSkills []string `json:"extracted_skills"`
		RecommendedJobs []struct {
			Title string   `json:"title"`
			Score *float64 `json:"score"`
		} `json:"recommended_jobs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got.ExtractedSkills) != 2 {
		t.Fatalf("extracted_skills = %v", got.ExtractedSkills)
	}
	if len(got.RecommendedJobs) == 0 {
		t.Fatal("expected recommended jobs from the static mapping")
	}
	for _, job := range got.RecommendedJobs {
		if job.Score != nil {
			t.Fatalf("no ranker configured but job scored: %+v", job)
		}
	}
}

func TestUploadResumeEndpointEmptyFile(t *testing.T) {
	router := newTestRouter(stubDeriver{out: roles.RolesOutput(nil)})

	body, contentType := multipartBody(t, "resume.pdf", nil)
	req := httptest.NewRequest(http.MethodPost, "/upload_resume", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for empty file", resp.Code)
	}

	var got struct {
		ExtractedSkills []string `json:"extracted_skills"`
		RecommendedJobs []any    `json:"recommended_jobs"`
		Error           string   `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Error == "" {
		t.Fatal("expected the no-text condition in the error field")
	}
	if len(got.ExtractedSkills) != 0 || len(got.RecommendedJobs) != 0 {
		t.Fatalf("expected empty lists, got %+v", got)
	}
}
