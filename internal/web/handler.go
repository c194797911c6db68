package web

import (
	"encoding/base64"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"career-recommender/internal/feedback"
	"career-recommender/internal/recommend"
	"career-recommender/internal/report"
)

// Handler serves the form, result and feedback pages.
type Handler struct {
	Recommend      *recommend.Service
	Feedback       *feedback.Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(rec *recommend.Service, fb *feedback.Service, maxUploadBytes int64) *Handler {
	return &Handler{Recommend: rec, Feedback: fb, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches page routes. The engine must have Templates() installed.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.index)
	r.POST("/recommend", h.recommend)
	r.POST("/feedback", h.feedback)
}

type indexPage struct {
	Skills    string
	Interests string
	Error     string
}

type resultPage struct {
	Rec           recommend.Recommendation
	Chart         Chart
	PDFHref       template.URL
	PDFName       string
	DefaultRating int
}

type feedbackPage struct {
	Message string
	Error   string
}

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", indexPage{})
}

func (h *Handler) recommend(c *gin.Context) {
	in, err := recommend.ReadInput(c, h.MaxUploadBytes)
	if err != nil {
		h.renderFormError(c, in, err)
		return
	}

	rec, pdf, err := h.Recommend.RecommendWithReport(c.Request.Context(), in)
	if err != nil {
		h.renderFormError(c, in, err)
		return
	}
	recommend.Annotate(c, rec)

	c.HTML(http.StatusOK, "result.html", resultPage{
		Rec:           rec,
		Chart:         newChart(rec.Breakdown()),
		PDFHref:       pdfDataURI(pdf),
		PDFName:       report.FileName,
		DefaultRating: feedback.DefaultRating,
	})
}

func (h *Handler) feedback(c *gin.Context) {
	rating := feedback.DefaultRating
	if raw := strings.TrimSpace(c.PostForm("rating")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.HTML(http.StatusBadRequest, "feedback.html", feedbackPage{Error: "rating must be a number between 1 and 5"})
			return
		}
		rating = parsed
	}

	_, err := h.Feedback.Submit(c.Request.Context(), feedback.SubmitInput{
		Rating:           rating,
		Comments:         c.PostForm("comments"),
		RecommendationID: c.PostForm("recommendationId"),
		PredictedCareer:  c.PostForm("predictedCareer"),
	})
	if err != nil {
		status := http.StatusInternalServerError
		msg := "We could not record your feedback. Please try again."
		if errors.Is(err, feedback.ErrInvalidInput) {
			status = http.StatusBadRequest
			msg = err.Error()
		}
		c.HTML(status, "feedback.html", feedbackPage{Error: msg})
		return
	}
	c.HTML(http.StatusOK, "feedback.html", feedbackPage{Message: feedback.ThankYou})
}

func (h *Handler) renderFormError(c *gin.Context, in recommend.Input, err error) {
	status, msg := http.StatusInternalServerError, "Something went wrong while generating your recommendation."
	switch {
	case errors.Is(err, recommend.ErrInvalidInput):
		status, msg = http.StatusBadRequest, "Your request could not be read. Please check the form and try again."
	case errors.Is(err, recommend.ErrUnsupportedUpload):
		status, msg = http.StatusUnsupportedMediaType, "Please upload a .docx, .pdf or .txt resume."
	case errors.Is(err, recommend.ErrMalformedUpload):
		status, msg = http.StatusUnprocessableEntity, "We could not read that resume file."
	}
	c.HTML(status, "index.html", indexPage{Skills: in.Skills, Interests: in.Interests, Error: msg})
}

func pdfDataURI(data []byte) template.URL {
	return template.URL("data:" + report.ContentType + ";base64," + base64.StdEncoding.EncodeToString(data))
}
