package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tiebreak/contexts/game-core/participant-service/domain/entities"
	domainerrors "tiebreak/contexts/game-core/participant-service/domain/errors"
	"tiebreak/contexts/game-core/participant-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
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

func (r *Repository) SaveParticipant(ctx context.Context, participant entities.Participant) error {
	row := participantModelFromEntity(participant)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrNameTaken
		}
		return r.logError("participant_repo_save_failed", err,
			"participant_id", strings.TrimSpace(participant.ID),
		)
	}
	return nil
}

func (r *Repository) GetParticipant(ctx context.Context, participantID string) (entities.Participant, error) {
	var row participantModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(participantID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Participant{}, domainerrors.ErrParticipantNotFound
		}
		return entities.Participant{}, r.logError("participant_repo_get_failed", err,
			"participant_id", strings.TrimSpace(participantID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetParticipantByName(ctx context.Context, name string) (entities.Participant, error) {
	var row participantModel
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Participant{}, domainerrors.ErrParticipantNotFound
		}
		return entities.Participant{}, r.logError("participant_repo_get_by_name_failed", err,
			"name", strings.TrimSpace(name),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListParticipants(ctx context.Context) ([]entities.Participant, error) {
	var rows []participantModel
	if err := r.db.WithContext(ctx).
		Order("score DESC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("participant_repo_list_failed", err)
	}
	items := make([]entities.Participant, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ApplyScoreDelta(ctx context.Context, participantID string, scoreDelta int, answeredDelta int) (entities.Participant, error) {
	id := strings.TrimSpace(participantID)
	result := r.db.WithContext(ctx).Model(&participantModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"score":              gorm.Expr("GREATEST(score + ?, 0)", scoreDelta),
			"questions_answered": gorm.Expr("questions_answered + ?", answeredDelta),
			"updated_at":         time.Now().UTC(),
		})
	if result.Error != nil {
		return entities.Participant{}, r.logError("participant_repo_score_delta_failed", result.Error,
			"participant_id", id,
		)
	}
	if result.RowsAffected == 0 {
		return entities.Participant{}, domainerrors.ErrParticipantNotFound
	}
	return r.GetParticipant(ctx, id)
}

func (r *Repository) CountParticipants(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&participantModel{}).Count(&count).Error; err != nil {
		return 0, r.logError("participant_repo_count_failed", err)
	}
	return int(count), nil
}

func (r *Repository) DeleteAllParticipants(ctx context.Context) (int, error) {
	result := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&participantModel{})
	if result.Error != nil {
		return 0, r.logError("participant_repo_delete_all_failed", result.Error)
	}
	return int(result.RowsAffected), nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+7)
	fields = append(fields,
		"event", event,
		"module", "game-core/participant-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("participant repository operation failed", fields...)
	return err
}

type participantModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	Name              string    `gorm:"column:name;uniqueIndex"`
	PasswordHash      string    `gorm:"column:password_hash"`
	Score             int       `gorm:"column:score;default:0"`
	QuestionsAnswered int       `gorm:"column:questions_answered;default:0"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (participantModel) TableName() string {
	return "participants"
}

func participantModelFromEntity(participant entities.Participant) participantModel {
	return participantModel{
		ID:                strings.TrimSpace(participant.ID),
		Name:              strings.TrimSpace(participant.Name),
		PasswordHash:      participant.PasswordHash,
		Score:             participant.Score,
		QuestionsAnswered: participant.QuestionsAnswered,
		CreatedAt:         participant.CreatedAt,
		UpdatedAt:         participant.UpdatedAt,
	}
}

func (m participantModel) toEntity() entities.Participant {
	return entities.Participant{
		ID:                m.ID,
		Name:              m.Name,
		PasswordHash:      m.PasswordHash,
		Score:             m.Score,
		QuestionsAnswered: m.QuestionsAnswered,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// Model exposes the gorm model for platform automigration.
func Model() any {
	return &participantModel{}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.ParticipantRepository = (*Repository)(nil)
