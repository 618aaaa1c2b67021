package api

import (
	"net/http"

	"CricketCatalog/internal/model"
	"CricketCatalog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReferenceHandler 球队/球员/场馆/系列赛/阵容的外部引用维护
type ReferenceHandler struct {
	refs   *service.ReferenceService
	logger *logrus.Logger
}

// NewReferenceHandler 创建 ReferenceHandler
func NewReferenceHandler(refs *service.ReferenceService, logger *logrus.Logger) *ReferenceHandler {
	return &ReferenceHandler{refs: refs, logger: logger}
}

// AttachReference PUT /{teams|players|venues|series|squads}/:id/reference
func (h *ReferenceHandler) AttachReference(kind model.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ref model.Reference
		if err := c.ShouldBindJSON(&ref); err != nil {
			respondInvalid(c, err)
			return
		}

		doc, err := h.refs.Attach(c.Request.Context(), kind, c.Param("id"), ref)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		respond(c, http.StatusOK, doc, msgUpdated)
	}
}
