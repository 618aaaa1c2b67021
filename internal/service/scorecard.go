package service

import (
	"context"
	"encoding/json"
	"fmt"

	"CricketCatalog/internal/cache"
	"CricketCatalog/internal/interfaces"
	"CricketCatalog/internal/model"

	"github.com/sirupsen/logrus"
)

// Pagination 文档库列表的排序分页参数，缓存路径不使用
type Pagination struct {
	Skip   int
	Limit  int
	SortBy []string
}

// ScorecardService 记分卡读取：优先快速缓存，未命中回退文档库。只读缓存，从不回写
type ScorecardService struct {
	cache  interfaces.FastCache
	store  interfaces.ScorecardStore
	logger *logrus.Logger
}

// NewScorecardService 创建 ScorecardService
func NewScorecardService(fastCache interfaces.FastCache, store interfaces.ScorecardStore, logger *logrus.Logger) *ScorecardService {
	return &ScorecardService{
		cache:  fastCache,
		store:  store,
		logger: logger,
	}
}

// Resolve 单场记分卡。记分卡与预测都在缓存中时合并返回（预测去掉 history，预测为 null 时不挂 prediction），
// 否则返回文档库中的活跃记分卡原样；文档库也没有时返回 model.ErrNotFound
func (s *ScorecardService) Resolve(ctx context.Context, matchID, cardType string) (model.ScorecardView, error) {
	if cardType == "" {
		cardType = model.CardTypeMicro
	}
	log := s.logger.WithFields(logrus.Fields{"match_id": matchID, "card_type": cardType})

	values, err := s.cache.MultiGet(ctx, []string{cache.ScorecardKey(matchID, cardType), cache.PredictionKey(matchID)})
	if err != nil {
		log.WithError(err).Warn("读取缓存失败，回退文档库")
	} else if len(values) == 2 && values[0] != nil && values[1] != nil {
		view, err := mergeCached(values[0], values[1])
		if err == nil && view != nil {
			return view, nil
		}
		if err != nil {
			log.WithError(err).Warn("缓存数据解析失败，回退文档库")
		}
	}

	rec, err := s.store.FindActiveScorecard(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return recordView(rec)
}

// ScorecardPage 列表结果；FromCache 表示由 featuredMatches 缓存组装
type ScorecardPage struct {
	Items     []model.ScorecardView
	FromCache bool
}

// List 记分卡列表：
//   - featuredMatches 索引存在时按索引顺序从缓存组装，缓存中没有记分卡的比赛直接跳过，不做排序分页
//   - 缓存批量读取出错时按索引 id 列表查文档库
//   - 索引不存在时按 filters 标记查文档库
func (s *ScorecardService) List(ctx context.Context, cardType string, filters []string, page Pagination) (ScorecardPage, error) {
	if cardType == "" {
		cardType = model.CardTypeMicro
	}
	query := interfaces.ScorecardQuery{
		SortBy: page.SortBy,
		Skip:   page.Skip,
		Limit:  page.Limit,
	}

	ids, ok := s.featuredIndex(ctx)
	if !ok {
		query.Filters = filters
		views, err := s.listFromStore(ctx, query)
		return ScorecardPage{Items: views}, err
	}

	views, err := s.listFromCache(ctx, ids, cardType)
	if err == nil {
		return ScorecardPage{Items: views, FromCache: true}, nil
	}
	s.logger.WithError(err).WithField("featured", len(ids)).Warn("批量读取缓存失败，按推荐列表回退文档库")
	query.MatchIDs = ids
	views, err = s.listFromStore(ctx, query)
	return ScorecardPage{Items: views}, err
}

// featuredIndex 读取并解析 featuredMatches；读取失败、不存在或无法解析都视为索引不存在
func (s *ScorecardService) featuredIndex(ctx context.Context) ([]string, bool) {
	raw, found, err := s.cache.Get(ctx, cache.FeaturedMatchesKey)
	if err != nil {
		s.logger.WithError(err).Warn("读取featuredMatches失败")
		return nil, false
	}
	if !found {
		return nil, false
	}
	ids, err := parseIndex(raw)
	if err != nil {
		s.logger.WithError(err).Warn("featuredMatches解析失败")
		return nil, false
	}
	return ids, true
}

func (s *ScorecardService) listFromCache(ctx context.Context, ids []string, cardType string) ([]model.ScorecardView, error) {
	views := make([]model.ScorecardView, 0, len(ids))
	if len(ids) == 0 {
		return views, nil
	}
	cards, err := s.cache.MultiGet(ctx, cache.ScorecardKeys(ids, cardType))
	if err != nil {
		return nil, fmt.Errorf("读取记分卡缓存: %w", err)
	}
	preds, err := s.cache.MultiGet(ctx, cache.PredictionKeys(ids))
	if err != nil {
		return nil, fmt.Errorf("读取预测缓存: %w", err)
	}

	for i, raw := range cards {
		if raw == nil {
			continue
		}
		card, err := decodeObject(raw)
		if err != nil || card == nil {
			s.logger.WithError(err).WithField("match_id", ids[i]).Warn("记分卡缓存解析失败，跳过")
			continue
		}
		if i < len(preds) && preds[i] != nil {
			pred, err := decodeObject(preds[i])
			if err != nil {
				s.logger.WithError(err).WithField("match_id", ids[i]).Warn("预测缓存解析失败，不合并")
			} else if pred != nil {
				attachPrediction(card, pred)
			}
		}
		views = append(views, card)
	}
	return views, nil
}

func (s *ScorecardService) listFromStore(ctx context.Context, q interfaces.ScorecardQuery) ([]model.ScorecardView, error) {
	records, err := s.store.ListScorecards(ctx, q)
	if err != nil {
		return nil, err
	}
	views := make([]model.ScorecardView, 0, len(records))
	for _, rec := range records {
		v, err := recordView(rec)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// mergeCached 记分卡为 JSON null 时视为未命中；预测为 JSON null 时直接返回不带 prediction 的记分卡
func mergeCached(rawCard, rawPred []byte) (model.ScorecardView, error) {
	card, err := decodeObject(rawCard)
	if err != nil {
		return nil, fmt.Errorf("记分卡: %w", err)
	}
	pred, err := decodeObject(rawPred)
	if err != nil {
		return nil, fmt.Errorf("预测: %w", err)
	}
	if card == nil {
		return nil, nil
	}
	if pred != nil {
		attachPrediction(card, pred)
	}
	return card, nil
}

// attachPrediction 预测去掉 history 后挂到记分卡的 prediction 字段
func attachPrediction(card, pred model.ScorecardView) {
	delete(pred, "history")
	card["prediction"] = map[string]interface{}(pred)
}

// decodeObject JSON null 返回 (nil, nil)
func decodeObject(raw []byte) (model.ScorecardView, error) {
	var v model.ScorecardView
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// recordView 文档库记录按其 JSON 形式原样返回
func recordView(rec *model.ScoreCardRecord) (model.ScorecardView, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("序列化记分卡失败: %w", err)
	}
	var v model.ScorecardView
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("序列化记分卡失败: %w", err)
	}
	return v, nil
}

func parseIndex(raw []byte) ([]string, error) {
	ids := []string{}
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
