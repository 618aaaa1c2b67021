package api

import (
	"net/http"

	"CricketCatalog/internal/model"

	"github.com/gin-gonic/gin"
)

// referenceKinds 开放引用维护接口的实体类型，比赛的引用随 PUT /matches/:id 更新
var referenceKinds = []model.EntityKind{
	model.KindTeam,
	model.KindPlayer,
	model.KindVenue,
	model.KindSeries,
	model.KindSquad,
}

// RegisterRoutes 注册全部业务路由
func RegisterRoutes(r gin.IRouter, scorecards *ScorecardHandler, matches *MatchHandler, refs *ReferenceHandler) {
	r.GET("/health-check", func(c *gin.Context) {
		respond(c, http.StatusOK, nil, "OK")
	})

	// 记分卡：优先快速缓存
	r.GET("/scorecards", scorecards.ListScorecards)
	r.GET("/scorecards/:matchId", scorecards.GetScorecard)

	// 比赛
	r.POST("/matches", matches.CreateMatch)
	r.GET("/matches/:id", matches.GetMatch)
	r.GET("/matches/reference/:feedSource/:key", matches.GetMatchByReference)
	r.PUT("/matches/:id", matches.UpdateMatch)
	r.DELETE("/matches/:id", matches.DeleteMatch)

	// 其他实体的外部引用
	for _, kind := range referenceKinds {
		r.PUT("/"+kind.Table()+"/:id/reference", refs.AttachReference(kind))
	}
}
