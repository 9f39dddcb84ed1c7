package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/dperales2022/atmirasalesproposals/middleware"
	"github.com/dperales2022/atmirasalesproposals/schema"
	"github.com/dperales2022/atmirasalesproposals/service"
	"github.com/dperales2022/atmirasalesproposals/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgMethodNotAllowed = "Method not allowed"
	msgInvalidBody      = "Invalid request body"
	msgPDFPathRequired  = "pdfpath is required"
	msgUnknownVariant   = "Unknown schema variant"
	msgNoDocuments      = "No documents found"
	msgInternal         = "Internal Server Error"

	maxRequestBodyBytes = 1 << 20
)

// ExtractionService is the core the handler delegates to.
type ExtractionService interface {
	Extract(ctx context.Context, req types.ExtractRequest) (*types.ExtractionResult, error)
}

type ExtractHandler struct {
	svc      ExtractionService
	registry *schema.Registry
	log      *zap.SugaredLogger
}

func NewExtractHandler(svc ExtractionService, registry *schema.Registry, log *zap.SugaredLogger) *ExtractHandler {
	return &ExtractHandler{svc: svc, registry: registry, log: log}
}

// HandleExtract serves POST /extract. The router refuses every other
// method before the core runs.
func (h *ExtractHandler) HandleExtract(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBodyBytes)
	var req types.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnw("http.extract.bad_body", "req_id", middleware.GetRequestID(c), "error", err)
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: msgInvalidBody})
		return
	}

	result, err := h.svc.Extract(c.Request.Context(), req)
	if err != nil {
		status, message := errorResponse(err)
		c.JSON(status, types.MessageResponse{Message: message})
		return
	}
	c.JSON(http.StatusOK, result.Fields)
}

// errorResponse maps a failure to its status and client-safe message.
// Causes are logged by the service and never returned.
func errorResponse(err error) (int, string) {
	var ee *service.ExtractionError
	if !errors.As(err, &ee) {
		return http.StatusInternalServerError, msgInternal
	}
	switch ee.Kind {
	case service.KindInvalidRequest:
		if errors.Is(ee, schema.ErrUnknownVariant) {
			return http.StatusBadRequest, msgUnknownVariant
		}
		return http.StatusBadRequest, msgPDFPathRequired
	case service.KindNoContent:
		return http.StatusBadRequest, msgNoDocuments
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func (h *ExtractHandler) HandleVariants(c *gin.Context) {
	resp := types.VariantsResponse{Default: h.registry.DefaultID()}
	for _, v := range h.registry.Variants() {
		resp.Variants = append(resp.Variants, types.VariantInfo{
			ID:          v.ID,
			Version:     v.Version,
			Language:    v.Language,
			Name:        v.Name,
			Description: v.Description,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, types.MessageResponse{Message: "ok"})
}

func HandleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, types.MessageResponse{Message: "Not found"})
}
