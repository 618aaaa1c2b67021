package service

import (
	"context"
	"time"

	"CricketCatalog/internal/interfaces"
	"CricketCatalog/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MatchInput 创建/更新比赛的入参，nil 字段表示未提供、不修改。
// Filters 为 nil 表示未提供；空列表表示清空全部标记
type MatchInput struct {
	Name                   *string          `json:"name"`
	ShortName              *string          `json:"shortName"`
	Format                 *string          `json:"format"`
	ApprovalStatus         *string          `json:"approvalStatus"`
	SeriesID               *string          `json:"seriesId"`
	TeamAID                *string          `json:"teamAId"`
	TeamBID                *string          `json:"teamBId"`
	VenueID                *string          `json:"venueId"`
	StartDate              *time.Time       `json:"startDate"`
	LiveStatus             *string          `json:"liveStatus" binding:"omitempty,oneof=upcoming ongoing completed abandoned"`
	ActiveFeedSource       *string          `json:"activeFeedSource"`
	ActivePredictionSource *string          `json:"activePredictionSource"`
	Reference              *model.Reference `json:"reference" binding:"omitempty"`
	Filters                []string         `json:"filters"`
}

func (in *MatchInput) apply(m *model.MatchRecord) {
	setString(&m.Name, in.Name)
	setString(&m.ShortName, in.ShortName)
	setString(&m.Format, in.Format)
	setString(&m.ApprovalStatus, in.ApprovalStatus)
	setString(&m.SeriesID, in.SeriesID)
	setString(&m.TeamAID, in.TeamAID)
	setString(&m.TeamBID, in.TeamBID)
	setString(&m.VenueID, in.VenueID)
	setString(&m.LiveStatus, in.LiveStatus)
	setString(&m.ActiveFeedSource, in.ActiveFeedSource)
	setString(&m.ActivePredictionSource, in.ActivePredictionSource)
	if in.StartDate != nil {
		m.StartDate = in.StartDate
	}
	if in.Filters != nil {
		m.Filters = model.NewFilterSet(in.Filters)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// MatchService 比赛的创建、更新与软删除；更新提交后交给 Dispatcher 处理状态变化
type MatchService struct {
	matches    interfaces.MatchStore
	scorecards interfaces.ScorecardStore
	refs       interfaces.ReferenceStore
	dispatcher *Dispatcher
	logger     *logrus.Logger
}

// NewMatchService refs 为比赛类型的引用仓储
func NewMatchService(matches interfaces.MatchStore, scorecards interfaces.ScorecardStore, refs interfaces.ReferenceStore, dispatcher *Dispatcher, logger *logrus.Logger) *MatchService {
	return &MatchService{
		matches:    matches,
		scorecards: scorecards,
		refs:       refs,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Get 活跃比赛
func (s *MatchService) Get(ctx context.Context, id string) (*model.MatchRecord, error) {
	return s.matches.FindActiveMatch(ctx, id)
}

// GetByReference 按外部引用查活跃比赛
func (s *MatchService) GetByReference(ctx context.Context, ref model.Reference) (*model.MatchRecord, error) {
	return s.matches.FindActiveMatchByReference(ctx, ref)
}

// Create 新建比赛。引用冲突返回 *model.ConflictError
func (s *MatchService) Create(ctx context.Context, in *MatchInput) (*model.MatchRecord, error) {
	m := &model.MatchRecord{
		ID:         uuid.NewString(),
		LiveStatus: model.LiveStatusUpcoming,
		References: model.References{},
		Filters:    model.FilterSet{},
		Status:     model.StatusActive,
	}
	if in.Reference != nil {
		change, err := ResolveReference(ctx, model.KindMatch, m.References, *in.Reference, LookupExcluding(s.refs, ""))
		if err != nil {
			return nil, err
		}
		m.References = change.Merged
	}
	in.apply(m)

	if err := s.matches.CreateMatch(ctx, m); err != nil {
		return nil, err
	}
	s.logger.WithField("match_id", m.ID).Info("比赛已创建")
	return m, nil
}

// Update 更新比赛：
// 1. 记录更新前的 liveStatus 与 filters
// 2. 合并引用（冲突直接返回），应用入参并持久化
// 3. 提交后同步 filters 到记分卡，再由 Dispatcher 处理状态变化；这两步失败只记日志
func (s *MatchService) Update(ctx context.Context, id string, in *MatchInput) (*model.MatchRecord, error) {
	m, err := s.matches.FindActiveMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := m.State()

	var claim, released *model.Reference
	if in.Reference != nil {
		change, err := ResolveReference(ctx, model.KindMatch, m.References, *in.Reference, LookupExcluding(s.refs, m.ID))
		if err != nil {
			return nil, err
		}
		m.References = change.Merged
		claim, released = in.Reference, change.Released
	}
	in.apply(m)

	if err := s.matches.SaveMatch(ctx, m, claim, released); err != nil {
		return nil, err
	}

	// 写入已提交，后续步骤不随请求取消
	bg := context.WithoutCancel(ctx)
	if in.Filters != nil {
		if err := s.scorecards.UpsertScorecardFilters(bg, m.ID, m.Filters); err != nil {
			s.logger.WithError(err).WithField("match_id", m.ID).Error("同步记分卡filters失败")
		} else {
			s.logger.WithFields(logrus.Fields{"match_id": m.ID, "filters": m.Filters.Names()}).Info("Scorecard filters updated")
		}
	}
	s.dispatcher.OnMatchUpdated(bg, previous, m)
	return m, nil
}

// Remove 软删除比赛并释放其引用
func (s *MatchService) Remove(ctx context.Context, id string) error {
	hit, err := s.matches.SetMatchStatus(ctx, id, model.StatusDeleted)
	if err != nil {
		return err
	}
	if !hit {
		return model.ErrNotFound
	}
	s.logger.WithField("match_id", id).Info("比赛已删除")
	return nil
}
