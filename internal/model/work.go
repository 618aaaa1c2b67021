package model

// 外部 feed worker 的队列名
const (
	WorkNewLiveMatch     = "newLiveMatch"
	WorkNewFeaturedMatch = "newFeaturedMatch"
)

// WorkItem 通知外部 worker 开始为某场比赛填充缓存，只入队不落库
type WorkItem struct {
	Kind                string  `json:"kind"`
	MatchID             string  `json:"matchId"`
	FeedSource          *string `json:"feedSource"`
	FeedSourceKey       *string `json:"feedSourceKey"`
	PredictionSource    *string `json:"predictionSource"`
	PredictionSourceKey *string `json:"predictionSourceKey"`
}

// NewWorkItem 按比赛当前的 activeFeedSource / activePredictionSource 从 references 中取源和 key，缺失为 null
func NewWorkItem(kind string, m *MatchRecord) *WorkItem {
	w := &WorkItem{Kind: kind, MatchID: m.ID}
	if ref := m.References.Find(m.ActiveFeedSource); ref != nil {
		w.FeedSource = strPtr(ref.FeedSource)
		w.FeedSourceKey = strPtr(ref.Key)
	}
	if ref := m.References.Find(m.ActivePredictionSource); ref != nil {
		w.PredictionSource = strPtr(ref.FeedSource)
		w.PredictionSourceKey = strPtr(ref.Key)
	}
	return w
}

func strPtr(s string) *string { return &s }
