package feedback

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-recommender/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches feedback routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/feedback", h.submit)
}

type submitResponse struct {
	FeedbackID string `json:"feedbackId"`
	Message    string `json:"message"`
}

func (h *Handler) submit(c *gin.Context) {
	var in SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	rec, err := h.Svc.Submit(c.Request.Context(), in)
	if err != nil {
		WriteError(c, err)
		return
	}
	respond.Created(c, submitResponse{FeedbackID: rec.ID, Message: ThankYou})
}

// ThankYou is shown after a successful submission.
const ThankYou = "Thank you for your feedback!"

// WriteError maps Submit errors to HTTP responses.
func WriteError(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidInput) {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record feedback", nil)
}
