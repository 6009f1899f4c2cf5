package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tiebreak/contexts/live-sessions/elimination-voting/domain/entities"
	domainerrors "tiebreak/contexts/live-sessions/elimination-voting/domain/errors"
	"tiebreak/contexts/live-sessions/elimination-voting/ports"

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

func (r *Repository) SaveSession(ctx context.Context, session entities.VotingSession) error {
	row, err := sessionModelFromEntity(session)
	if err != nil {
		return err
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"tied_participants":         row.TiedParticipants,
			"tied_score":                row.TiedScore,
			"status":                    row.Status,
			"voting_time_in_seconds":    row.VotingTimeInSeconds,
			"voting_ends_at":            row.VotingEndsAt,
			"eliminated_participant_id": row.EliminatedParticipantID,
			"updated_at":                row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("voting_repo_save_session_failed", create.Error,
			"session_id", strings.TrimSpace(session.ID),
		)
	}
	return nil
}

func (r *Repository) GetSession(ctx context.Context, sessionID string) (entities.VotingSession, error) {
	var row sessionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(sessionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VotingSession{}, domainerrors.ErrSessionNotFound
		}
		return entities.VotingSession{}, r.logError("voting_repo_get_session_failed", err,
			"session_id", strings.TrimSpace(sessionID),
		)
	}
	return row.toEntity()
}

func (r *Repository) ActiveSession(ctx context.Context) (entities.VotingSession, bool, error) {
	var row sessionModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.SessionStatusActive)).
		Order("created_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VotingSession{}, false, nil
		}
		return entities.VotingSession{}, false, r.logError("voting_repo_active_session_failed", err)
	}
	session, convErr := row.toEntity()
	if convErr != nil {
		return entities.VotingSession{}, false, convErr
	}
	return session, true, nil
}

func (r *Repository) ListSessions(ctx context.Context) ([]entities.VotingSession, error) {
	var rows []sessionModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_sessions_failed", err)
	}
	return toSessionEntities(rows)
}

func (r *Repository) ListExpiredActiveSessions(ctx context.Context, now time.Time) ([]entities.VotingSession, error) {
	var rows []sessionModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(entities.SessionStatusActive)).
		Where("voting_ends_at <= ?", now).
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_expired_failed", err)
	}
	return toSessionEntities(rows)
}

func (r *Repository) TransitionStatus(
	ctx context.Context,
	sessionID string,
	from entities.SessionStatus,
	to entities.SessionStatus,
	at time.Time,
) (entities.VotingSession, bool, error) {
	id := strings.TrimSpace(sessionID)
	result := r.db.WithContext(ctx).Model(&sessionModel{}).
		Where("id = ?", id).
		Where("status = ?", string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": at,
		})
	if result.Error != nil {
		return entities.VotingSession{}, false, r.logError("voting_repo_transition_failed", result.Error,
			"session_id", id,
		)
	}

	session, err := r.GetSession(ctx, id)
	if err != nil {
		return entities.VotingSession{}, false, err
	}
	return session, result.RowsAffected > 0, nil
}

func (r *Repository) ForceStatus(ctx context.Context, sessionID string, to entities.SessionStatus, at time.Time) (entities.VotingSession, error) {
	id := strings.TrimSpace(sessionID)
	result := r.db.WithContext(ctx).Model(&sessionModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": at,
		})
	if result.Error != nil {
		return entities.VotingSession{}, r.logError("voting_repo_force_status_failed", result.Error,
			"session_id", id,
		)
	}
	if result.RowsAffected == 0 {
		return entities.VotingSession{}, domainerrors.ErrSessionNotFound
	}
	return r.GetSession(ctx, id)
}

func (r *Repository) SetEliminated(ctx context.Context, sessionID string, participantID string, at time.Time) error {
	id := strings.TrimSpace(sessionID)
	result := r.db.WithContext(ctx).Model(&sessionModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"eliminated_participant_id": strings.TrimSpace(participantID),
			"updated_at":                at,
		})
	if result.Error != nil {
		return r.logError("voting_repo_set_eliminated_failed", result.Error, "session_id", id)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSessionNotFound
	}
	return nil
}

func (r *Repository) UpsertVote(ctx context.Context, vote entities.Vote) error {
	row := voteModelFromEntity(vote)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "voting_session_id"}, {Name: "voter_participant_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"target_participant_id": row.TargetParticipantID,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("voting_repo_upsert_vote_failed", create.Error,
			"session_id", strings.TrimSpace(vote.VotingSessionID),
			"voter_id", strings.TrimSpace(vote.VoterParticipantID),
		)
	}
	return nil
}

func (r *Repository) ListVotes(ctx context.Context, sessionID string) ([]entities.Vote, error) {
	var rows []voteModel
	if err := r.db.WithContext(ctx).
		Where("voting_session_id = ?", strings.TrimSpace(sessionID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("voting_repo_list_votes_failed", err,
			"session_id", strings.TrimSpace(sessionID),
		)
	}
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+7)
	fields = append(fields,
		"event", event,
		"module", "live-sessions/elimination-voting",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("voting repository operation failed", fields...)
	return err
}

type sessionModel struct {
	ID                      string    `gorm:"column:id;primaryKey"`
	TiedParticipants        []byte    `gorm:"column:tied_participants;type:jsonb"`
	TiedScore               int       `gorm:"column:tied_score"`
	Status                  string    `gorm:"column:status;index"`
	VotingTimeInSeconds     int       `gorm:"column:voting_time_in_seconds;default:60"`
	VotingEndsAt            time.Time `gorm:"column:voting_ends_at"`
	EliminatedParticipantID *string   `gorm:"column:eliminated_participant_id"`
	CreatedAt               time.Time `gorm:"column:created_at"`
	UpdatedAt               time.Time `gorm:"column:updated_at"`
}

func (sessionModel) TableName() string {
	return "voting_sessions"
}

type voteModel struct {
	ID                  string    `gorm:"column:id;primaryKey"`
	VotingSessionID     string    `gorm:"column:voting_session_id;uniqueIndex:idx_votes_session_voter;index"`
	VoterParticipantID  string    `gorm:"column:voter_participant_id;uniqueIndex:idx_votes_session_voter"`
	TargetParticipantID string    `gorm:"column:target_participant_id"`
	CreatedAt           time.Time `gorm:"column:created_at"`

	Session sessionModel `gorm:"foreignKey:VotingSessionID;references:ID;constraint:OnDelete:CASCADE"`
}

func (voteModel) TableName() string {
	return "votes"
}

func sessionModelFromEntity(session entities.VotingSession) (sessionModel, error) {
	tied, err := json.Marshal(session.TiedParticipants)
	if err != nil {
		return sessionModel{}, err
	}
	row := sessionModel{
		ID:                  strings.TrimSpace(session.ID),
		TiedParticipants:    tied,
		TiedScore:           session.TiedScore,
		Status:              string(session.Status),
		VotingTimeInSeconds: session.VotingTimeInSeconds,
		VotingEndsAt:        session.VotingEndsAt,
		CreatedAt:           session.CreatedAt,
		UpdatedAt:           session.UpdatedAt,
	}
	if id := strings.TrimSpace(session.EliminatedParticipantID); id != "" {
		row.EliminatedParticipantID = &id
	}
	return row, nil
}

func (m sessionModel) toEntity() (entities.VotingSession, error) {
	var tied []string
	if len(m.TiedParticipants) > 0 {
		if err := json.Unmarshal(m.TiedParticipants, &tied); err != nil {
			return entities.VotingSession{}, err
		}
	}
	session := entities.VotingSession{
		ID:                  m.ID,
		TiedParticipants:    tied,
		TiedScore:           m.TiedScore,
		Status:              entities.SessionStatus(m.Status),
		VotingTimeInSeconds: m.VotingTimeInSeconds,
		VotingEndsAt:        m.VotingEndsAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if m.EliminatedParticipantID != nil {
		session.EliminatedParticipantID = *m.EliminatedParticipantID
	}
	return session, nil
}

func toSessionEntities(rows []sessionModel) ([]entities.VotingSession, error) {
	items := make([]entities.VotingSession, 0, len(rows))
	for _, row := range rows {
		session, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, session)
	}
	return items, nil
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	return voteModel{
		ID:                  strings.TrimSpace(vote.ID),
		VotingSessionID:     strings.TrimSpace(vote.VotingSessionID),
		VoterParticipantID:  strings.TrimSpace(vote.VoterParticipantID),
		TargetParticipantID: strings.TrimSpace(vote.TargetParticipantID),
		CreatedAt:           vote.CreatedAt,
	}
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		ID:                  m.ID,
		VotingSessionID:     m.VotingSessionID,
		VoterParticipantID:  m.VoterParticipantID,
		TargetParticipantID: m.TargetParticipantID,
		CreatedAt:           m.CreatedAt,
	}
}

// Models exposes the gorm models for platform automigration.
func Models() []any {
	return []any{&sessionModel{}, &voteModel{}}
}

var (
	_ ports.SessionRepository = (*Repository)(nil)
	_ ports.VoteRepository    = (*Repository)(nil)
)
