package cache

import "CricketCatalog/internal/model"

// FeaturedMatchesKey 缓存当前跟踪的推荐比赛 id 列表（JSON 数组）
const FeaturedMatchesKey = "featuredMatches"

// ScorecardKey {matchId}{cardType}Scorecard
func ScorecardKey(matchID, cardType string) string { return matchID + cardType + "Scorecard" }

// PredictionKey {matchId}Prediction
func PredictionKey(matchID string) string { return matchID + "Prediction" }

// ScorecardKeys 按 matchIDs 顺序生成记分卡 key
func ScorecardKeys(matchIDs []string, cardType string) []string {
	keys := make([]string, len(matchIDs))
	for i, id := range matchIDs {
		keys[i] = ScorecardKey(id, cardType)
	}
	return keys
}

// PredictionKeys 按 matchIDs 顺序生成预测 key
func PredictionKeys(matchIDs []string) []string {
	keys := make([]string, len(matchIDs))
	for i, id := range matchIDs {
		keys[i] = PredictionKey(id)
	}
	return keys
}

// MatchKeys 取消推荐时需要删除的全部 key：三种记分卡 + 预测
func MatchKeys(matchID string) []string {
	keys := make([]string, 0, len(model.CardTypes)+1)
	for _, ct := range model.CardTypes {
		keys = append(keys, ScorecardKey(matchID, ct))
	}
	return append(keys, PredictionKey(matchID))
}
