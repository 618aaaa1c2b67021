package api

import (
	"net/http"

	"CricketCatalog/internal/model"
	"CricketCatalog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MatchHandler 比赛维护接口，更新后的状态变化由 service 层处理
type MatchHandler struct {
	matches *service.MatchService
	logger  *logrus.Logger
}

// NewMatchHandler 创建 MatchHandler
func NewMatchHandler(matches *service.MatchService, logger *logrus.Logger) *MatchHandler {
	return &MatchHandler{matches: matches, logger: logger}
}

// CreateMatch 新建比赛
// POST /matches
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var in service.MatchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalid(c, err)
		return
	}
	m, err := h.matches.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusCreated, m, msgCreated)
}

// GetMatch 比赛详情
// GET /matches/:id
func (h *MatchHandler) GetMatch(c *gin.Context) {
	m, err := h.matches.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, m, msgSuccessful)
}

// GetMatchByReference 按外部引用查比赛
// GET /matches/reference/:feedSource/:key
func (h *MatchHandler) GetMatchByReference(c *gin.Context) {
	ref := model.Reference{FeedSource: c.Param("feedSource"), Key: c.Param("key")}
	m, err := h.matches.GetByReference(c.Request.Context(), ref)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, m, msgSuccessful)
}

// UpdateMatch 更新比赛；liveStatus、filters 的变化会触发 worker 入队或缓存失效
// PUT /matches/:id
func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	var in service.MatchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondInvalid(c, err)
		return
	}
	m, err := h.matches.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, m, msgUpdated)
}

// DeleteMatch 软删除
// DELETE /matches/:id
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	if err := h.matches.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, nil, msgDeleted)
}
