package recommend

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"career-recommender/internal/report"
	"career-recommender/internal/shared/server/respond"
)

const defaultMaxUploadBytes = 10 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.create)
	rg.POST("/recommendations/report", h.report)
	rg.GET("/catalog", h.careers)
	rg.GET("/catalog/:career", h.catalogEntry)
}

func (h *Handler) create(c *gin.Context) {
	in, err := ReadInput(c, h.MaxUploadBytes)
	if err != nil {
		WriteError(c, err)
		return
	}

	rec, err := h.Svc.Recommend(c.Request.Context(), in)
	if err != nil {
		WriteError(c, err)
		return
	}
	Annotate(c, rec)
	respond.OK(c, toResponse(rec))
}

func (h *Handler) report(c *gin.Context) {
	in, err := ReadInput(c, h.MaxUploadBytes)
	if err != nil {
		WriteError(c, err)
		return
	}

	rec, data, err := h.Svc.RecommendWithReport(c.Request.Context(), in)
	if err != nil {
		WriteError(c, err)
		return
	}
	Annotate(c, rec)
	c.Header("X-Recommendation-Id", rec.ID)
	respond.Attachment(c, report.FileName, report.ContentType, data)
}

func (h *Handler) careers(c *gin.Context) {
	respond.OK(c, gin.H{"careers": h.catalog().Careers()})
}

func (h *Handler) catalogEntry(c *gin.Context) {
	career := strings.TrimSpace(c.Param("career"))
	if career == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "career is required", nil)
		return
	}
	catalog := h.catalog()
	projects, roadmap := catalog.Lookup(career)
	respond.OK(c, CatalogEntryResponse{
		Career:   career,
		Known:    catalog.Known(career),
		Projects: projects,
		Roadmap:  roadmap,
	})
}

func (h *Handler) catalog() *Catalog {
	if h.Svc != nil && h.Svc.Catalog != nil {
		return h.Svc.Catalog
	}
	return DefaultCatalog()
}

// Annotate exposes the recommendation to the request logger.
func Annotate(c *gin.Context, rec Recommendation) {
	c.Set("recommendationId", rec.ID)
	c.Set("predictedCareer", rec.PredictedCareer)
	c.Set("inputSource", rec.InputSource)
}

// WriteError maps pipeline errors to HTTP responses.
func WriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
	case errors.Is(err, ErrUnsupportedUpload):
		respond.Error(c, http.StatusUnsupportedMediaType, ErrorCodeUnsupportedType, "resume must be a .docx, .pdf or .txt file", nil)
	case errors.Is(err, ErrMalformedUpload):
		respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeMalformedUpload, "resume could not be read", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to generate recommendation", nil)
	}
}
