package api

import (
	"net/http"
	"strings"

	"CricketCatalog/internal/model"
	"CricketCatalog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ScorecardHandler 记分卡查询接口
type ScorecardHandler struct {
	scorecards *service.ScorecardService
	logger     *logrus.Logger
}

// NewScorecardHandler 创建 ScorecardHandler
func NewScorecardHandler(scorecards *service.ScorecardService, logger *logrus.Logger) *ScorecardHandler {
	return &ScorecardHandler{scorecards: scorecards, logger: logger}
}

type scorecardListQuery struct {
	CardType string `form:"cardType" binding:"omitempty,oneof=Micro Full Summary"`
	Filters  string `form:"filters"`
	SortBy   string `form:"sortBy"`
	Skip     int    `form:"skip,default=0" binding:"min=0"`
	Limit    int    `form:"limit,default=50" binding:"min=0,max=200"`
}

type scorecardQuery struct {
	CardType string `form:"cardType" binding:"omitempty,oneof=Micro Full Summary"`
}

// ListScorecards 记分卡列表
// GET /scorecards?cardType=Micro&filters=featured,domestic&sortBy=-createdAt&skip=0&limit=50
func (h *ScorecardHandler) ListScorecards(c *gin.Context) {
	var q scorecardListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondInvalid(c, err)
		return
	}

	page, err := h.scorecards.List(c.Request.Context(), q.CardType, splitList(q.Filters), service.Pagination{
		Skip:   q.Skip,
		Limit:  q.Limit,
		SortBy: splitList(q.SortBy),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	// 缓存组装结果为空时仍返回 200，只是提示未找到
	if page.FromCache && len(page.Items) == 0 {
		respond(c, http.StatusOK, page.Items, msgNotFound)
		return
	}
	respond(c, http.StatusOK, page.Items, msgSuccessful)
}

// GetScorecard 单场记分卡（含预测）
// GET /scorecards/:matchId?cardType=Full
func (h *ScorecardHandler) GetScorecard(c *gin.Context) {
	var q scorecardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondInvalid(c, err)
		return
	}
	if q.CardType == "" {
		q.CardType = model.CardTypeMicro
	}

	view, err := h.scorecards.Resolve(c.Request.Context(), c.Param("matchId"), q.CardType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respond(c, http.StatusOK, view, msgSuccessful)
}

// splitList 逗号分隔参数，空串返回 nil
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
