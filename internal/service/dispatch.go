package service

import (
	"context"
	"encoding/json"

	"CricketCatalog/internal/cache"
	"CricketCatalog/internal/interfaces"
	"CricketCatalog/internal/model"

	"github.com/sirupsen/logrus"
)

// Dispatcher 比赛更新提交后比较前后状态，入队外部 worker 任务或失效缓存。
// 所有失败只记日志，不影响已提交的写入，也不返回给调用方
type Dispatcher struct {
	cache  interfaces.FastCache
	queue  interfaces.WorkQueue
	logger *logrus.Logger
}

// NewDispatcher 创建 Dispatcher
func NewDispatcher(fastCache interfaces.FastCache, queue interfaces.WorkQueue, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		cache:  fastCache,
		queue:  queue,
		logger: logger,
	}
}

// OnMatchUpdated previous 为更新前快照，current 为已提交的记录
func (d *Dispatcher) OnMatchUpdated(ctx context.Context, previous model.MatchState, current *model.MatchRecord) {
	// 1. 开始直播：任何非 ongoing -> ongoing
	if previous.LiveStatus != model.LiveStatusOngoing && current.LiveStatus == model.LiveStatusOngoing {
		d.enqueue(ctx, model.WorkNewLiveMatch, current)
	}

	// 2. 推荐标记变化
	wasFeatured := previous.Filters.Has(model.FilterFeatured)
	isFeatured := current.Filters.Has(model.FilterFeatured)
	switch {
	case isFeatured && !wasFeatured:
		d.enqueue(ctx, model.WorkNewFeaturedMatch, current)
	case wasFeatured && !isFeatured:
		d.invalidate(ctx, current.ID)
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, kind string, m *model.MatchRecord) {
	item := model.NewWorkItem(kind, m)
	log := d.logger.WithFields(logrus.Fields{"queue": kind, "match_id": m.ID})
	n, err := d.queue.Push(ctx, kind, item)
	if err != nil {
		log.WithError(err).Error("任务入队失败")
		return
	}
	log.WithField("queue_len", n).Info("任务已入队")
}

// invalidate 一次批量删除三种记分卡与预测。只有删除数恰好为 1 时才从 featuredMatches 中移除该比赛
func (d *Dispatcher) invalidate(ctx context.Context, matchID string) {
	log := d.logger.WithField("match_id", matchID)
	n, err := d.cache.Delete(ctx, cache.MatchKeys(matchID))
	if err != nil {
		log.WithError(err).Error("删除比赛缓存失败")
		return
	}
	if n != 1 {
		log.WithField("deleted", n).Error("Unable to remove data from redis")
		return
	}
	log.Info("Match data removed from redis")
	d.removeFeatured(ctx, matchID)
}

func (d *Dispatcher) removeFeatured(ctx context.Context, matchID string) {
	log := d.logger.WithField("match_id", matchID)
	raw, found, err := d.cache.Get(ctx, cache.FeaturedMatchesKey)
	if err != nil {
		log.WithError(err).Error("读取featuredMatches失败")
		return
	}
	if !found {
		return
	}
	ids, err := parseIndex(raw)
	if err != nil {
		log.WithError(err).Error("featuredMatches解析失败")
		return
	}

	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != matchID {
			kept = append(kept, id)
		}
	}
	body, err := json.Marshal(kept)
	if err != nil {
		log.WithError(err).Error("featuredMatches序列化失败")
		return
	}
	if err := d.cache.Set(ctx, cache.FeaturedMatchesKey, body); err != nil {
		log.WithError(err).Error("Unable to remove data from featured list")
		return
	}
	log.Info("Removed match from featured list")
}
