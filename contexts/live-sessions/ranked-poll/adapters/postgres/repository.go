package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tiebreak/contexts/live-sessions/ranked-poll/domain/entities"
	domainerrors "tiebreak/contexts/live-sessions/ranked-poll/domain/errors"
	"tiebreak/contexts/live-sessions/ranked-poll/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) SavePoll(ctx context.Context, poll entities.Poll) error {
	row := pollModelFromEntity(poll)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"title":        row.Title,
			"description":  row.Description,
			"is_active":    row.IsActive,
			"time_limit":   row.TimeLimit,
			"poll_ends_at": row.PollEndsAt,
			"status":       row.Status,
			"updated_at":   row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("poll_repo_save_failed", create.Error,
			"poll_id", strings.TrimSpace(poll.ID),
		)
	}
	return nil
}

func (r *Repository) GetPoll(ctx context.Context, pollID string) (entities.Poll, error) {
	var row pollModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(pollID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Poll{}, domainerrors.ErrPollNotFound
		}
		return entities.Poll{}, r.logError("poll_repo_get_failed", err,
			"poll_id", strings.TrimSpace(pollID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ActivePoll(ctx context.Context) (entities.Poll, bool, error) {
	var row pollModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Poll{}, false, nil
		}
		return entities.Poll{}, false, r.logError("poll_repo_active_failed", err)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListPolls(ctx context.Context) ([]entities.Poll, error) {
	var rows []pollModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("poll_repo_list_failed", err)
	}
	items := make([]entities.Poll, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListExpiredActivePolls(ctx context.Context, now time.Time) ([]entities.Poll, error) {
	var rows []pollModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("poll_ends_at IS NOT NULL AND poll_ends_at <= ?", now).
		Find(&rows).Error; err != nil {
		return nil, r.logError("poll_repo_list_expired_failed", err)
	}
	items := make([]entities.Poll, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CompleteIfActive(ctx context.Context, pollID string, at time.Time) (entities.Poll, bool, error) {
	id := strings.TrimSpace(pollID)
	result := r.db.WithContext(ctx).Model(&pollModel{}).
		Where("id = ?", id).
		Where("is_active = ?", true).
		Updates(map[string]any{
			"is_active":  false,
			"status":     string(entities.PollStatusCompleted),
			"updated_at": at,
		})
	if result.Error != nil {
		return entities.Poll{}, false, r.logError("poll_repo_complete_failed", result.Error,
			"poll_id", id,
		)
	}

	poll, err := r.GetPoll(ctx, id)
	if err != nil {
		return entities.Poll{}, false, err
	}
	return poll, result.RowsAffected > 0, nil
}

func (r *Repository) CompleteOtherActivePolls(ctx context.Context, exceptPollID string, at time.Time) (int, error) {
	result := r.db.WithContext(ctx).Model(&pollModel{}).
		Where("is_active = ?", true).
		Where("id <> ?", strings.TrimSpace(exceptPollID)).
		Updates(map[string]any{
			"is_active":  false,
			"status":     string(entities.PollStatusCompleted),
			"updated_at": at,
		})
	if result.Error != nil {
		return 0, r.logError("poll_repo_complete_others_failed", result.Error)
	}
	return int(result.RowsAffected), nil
}

func (r *Repository) DeletePoll(ctx context.Context, pollID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(pollID)).
		Delete(&pollModel{})
	if result.Error != nil {
		return r.logError("poll_repo_delete_failed", result.Error,
			"poll_id", strings.TrimSpace(pollID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPollNotFound
	}
	return nil
}

func (r *Repository) ReplaceRankings(ctx context.Context, pollID string, rankerID string, rankings []entities.Ranking) error {
	// Delete-then-insert inside one transaction keeps resubmission atomic.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("poll_id = ?", strings.TrimSpace(pollID)).
			Where("ranker_participant_id = ?", strings.TrimSpace(rankerID)).
			Delete(&rankingModel{}).Error; err != nil {
			return err
		}
		if len(rankings) == 0 {
			return nil
		}
		rows := make([]rankingModel, 0, len(rankings))
		for _, ranking := range rankings {
			rows = append(rows, rankingModelFromEntity(ranking))
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return r.logError("poll_repo_replace_rankings_failed", err,
			"poll_id", strings.TrimSpace(pollID),
			"ranker_id", strings.TrimSpace(rankerID),
		)
	}
	return nil
}

func (r *Repository) ListRankings(ctx context.Context, pollID string) ([]entities.Ranking, error) {
	var rows []rankingModel
	if err := r.db.WithContext(ctx).
		Where("poll_id = ?", strings.TrimSpace(pollID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("poll_repo_list_rankings_failed", err,
			"poll_id", strings.TrimSpace(pollID),
		)
	}
	items := make([]entities.Ranking, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) DeleteRankingsByPoll(ctx context.Context, pollID string) error {
	if err := r.db.WithContext(ctx).
		Where("poll_id = ?", strings.TrimSpace(pollID)).
		Delete(&rankingModel{}).Error; err != nil {
		return r.logError("poll_repo_delete_rankings_failed", err,
			"poll_id", strings.TrimSpace(pollID),
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+7)
	fields = append(fields,
		"event", event,
		"module", "live-sessions/ranked-poll",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("poll repository operation failed", fields...)
	return err
}

type pollModel struct {
	ID          string     `gorm:"column:id;primaryKey"`
	Title       string     `gorm:"column:title"`
	Description *string    `gorm:"column:description"`
	IsActive    bool       `gorm:"column:is_active;default:false;index"`
	TimeLimit   int        `gorm:"column:time_limit;default:300"`
	PollEndsAt  *time.Time `gorm:"column:poll_ends_at"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (pollModel) TableName() string {
	return "polls"
}

type rankingModel struct {
	ID                  string    `gorm:"column:id;primaryKey"`
	PollID              string    `gorm:"column:poll_id;index"`
	RankerParticipantID string    `gorm:"column:ranker_participant_id;index"`
	RankedParticipantID string    `gorm:"column:ranked_participant_id"`
	Rank                int       `gorm:"column:rank"`
	CreatedAt           time.Time `gorm:"column:created_at"`

	Poll pollModel `gorm:"foreignKey:PollID;references:ID;constraint:OnDelete:CASCADE"`
}

func (rankingModel) TableName() string {
	return "poll_rankings"
}

func pollModelFromEntity(poll entities.Poll) pollModel {
	row := pollModel{
		ID:         strings.TrimSpace(poll.ID),
		Title:      poll.Title,
		IsActive:   poll.IsActive,
		TimeLimit:  poll.TimeLimit,
		PollEndsAt: poll.PollEndsAt,
		Status:     string(poll.Status),
		CreatedAt:  poll.CreatedAt,
		UpdatedAt:  poll.UpdatedAt,
	}
	if description := strings.TrimSpace(poll.Description); description != "" {
		row.Description = &description
	}
	return row
}

func (m pollModel) toEntity() entities.Poll {
	poll := entities.Poll{
		ID:         m.ID,
		Title:      m.Title,
		IsActive:   m.IsActive,
		TimeLimit:  m.TimeLimit,
		PollEndsAt: m.PollEndsAt,
		Status:     entities.PollStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Description != nil {
		poll.Description = *m.Description
	}
	return poll
}

func rankingModelFromEntity(ranking entities.Ranking) rankingModel {
	return rankingModel{
		ID:                  strings.TrimSpace(ranking.ID),
		PollID:              strings.TrimSpace(ranking.PollID),
		RankerParticipantID: strings.TrimSpace(ranking.RankerParticipantID),
		RankedParticipantID: strings.TrimSpace(ranking.RankedParticipantID),
		Rank:                ranking.Rank,
		CreatedAt:           ranking.CreatedAt,
	}
}

func (m rankingModel) toEntity() entities.Ranking {
	return entities.Ranking{
		ID:                  m.ID,
		PollID:              m.PollID,
		RankerParticipantID: m.RankerParticipantID,
		RankedParticipantID: m.RankedParticipantID,
		Rank:                m.Rank,
		CreatedAt:           m.CreatedAt,
	}
}

// Models exposes the gorm models for platform automigration.
func Models() []any {
	return []any{&pollModel{}, &rankingModel{}}
}

var (
	_ ports.PollRepository    = (*Repository)(nil)
	_ ports.RankingRepository = (*Repository)(nil)
)
