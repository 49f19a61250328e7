package recommend

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-recommender/internal/shared/server/respond"
	"resume-recommender/internal/shared/util"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches pipeline routes. The paths sit at the root so
// existing clients keep working.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/recommend_jobs", h.recommendJobs)
	r.POST("/upload_resume", h.uploadResume)
}

func (h *Handler) recommendJobs(c *gin.Context) {
	data, fileName, ok := h.readUpload(c)
	if !ok {
		return
	}

	result := h.Svc.RecommendJobs(c.Request.Context(), data, fileName)
	c.Set("pipelineStage", "recommend")
	c.Set("partialResult", result.Error != "")
	respond.OK(c, result)
}

func (h *Handler) uploadResume(c *gin.Context) {
	data, fileName, ok := h.readUpload(c)
	if !ok {
		return
	}

	result := h.Svc.UploadResume(c.Request.Context(), data, fileName)
	c.Set("pipelineStage", "upload")
	c.Set("partialResult", result.Error != "")
	respond.OK(c, result)
}

// readUpload pulls the multipart file into memory. A missing or unreadable
// file is the one client error the pipeline rejects outright.
func (h *Handler) readUpload(c *gin.Context) ([]byte, string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return nil, "", false
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return nil, "", false
	}
	c.Set("uploadFileName", fileName)
	return data, fileName, true
}
