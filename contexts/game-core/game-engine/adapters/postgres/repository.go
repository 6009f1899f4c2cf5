package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tiebreak/contexts/game-core/game-engine/domain/entities"
	domainerrors "tiebreak/contexts/game-core/game-engine/domain/errors"
	"tiebreak/contexts/game-core/game-engine/ports"

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

func (r *Repository) SaveAnswer(ctx context.Context, answer entities.Answer) error {
	row := answerModelFromEntity(answer)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		// The unique (participant, question) index decides duplicate races.
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateAnswer
		}
		return r.logError("game_repo_save_answer_failed", err,
			"participant_id", strings.TrimSpace(answer.ParticipantID),
			"question_id", strings.TrimSpace(answer.QuestionID),
		)
	}
	return nil
}

func (r *Repository) ListAnswersByParticipant(ctx context.Context, participantID string) ([]entities.Answer, error) {
	var rows []answerModel
	if err := r.db.WithContext(ctx).
		Where("participant_id = ?", strings.TrimSpace(participantID)).
		Order("answered_at DESC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("game_repo_list_answers_failed", err,
			"participant_id", strings.TrimSpace(participantID),
		)
	}
	items := make([]entities.Answer, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) CountAnswers(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&answerModel{}).Count(&count).Error; err != nil {
		return 0, r.logError("game_repo_count_answers_failed", err)
	}
	return int(count), nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+7)
	fields = append(fields,
		"event", event,
		"module", "game-core/game-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("answer repository operation failed", fields...)
	return err
}

type answerModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	ParticipantID  string    `gorm:"column:participant_id;uniqueIndex:idx_answers_participant_question;index"`
	QuestionID     string    `gorm:"column:question_id;uniqueIndex:idx_answers_participant_question"`
	SelectedOption string    `gorm:"column:selected_option"`
	IsCorrect      bool      `gorm:"column:is_correct"`
	AnsweredAt     time.Time `gorm:"column:answered_at"`
}

func (answerModel) TableName() string {
	return "participant_answers"
}

func answerModelFromEntity(answer entities.Answer) answerModel {
	return answerModel{
		ID:             strings.TrimSpace(answer.ID),
		ParticipantID:  strings.TrimSpace(answer.ParticipantID),
		QuestionID:     strings.TrimSpace(answer.QuestionID),
		SelectedOption: answer.SelectedOption,
		IsCorrect:      answer.IsCorrect,
		AnsweredAt:     answer.AnsweredAt,
	}
}

func (m answerModel) toEntity() entities.Answer {
	return entities.Answer{
		ID:             m.ID,
		ParticipantID:  m.ParticipantID,
		QuestionID:     m.QuestionID,
		SelectedOption: m.SelectedOption,
		IsCorrect:      m.IsCorrect,
		AnsweredAt:     m.AnsweredAt,
	}
}

// Model exposes the gorm model for platform automigration.
func Model() any {
	return &answerModel{}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.AnswerRepository = (*Repository)(nil)
