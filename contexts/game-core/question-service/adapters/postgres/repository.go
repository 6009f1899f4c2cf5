package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"tiebreak/contexts/game-core/question-service/domain/entities"
	domainerrors "tiebreak/contexts/game-core/question-service/domain/errors"
	"tiebreak/contexts/game-core/question-service/ports"

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

func (r *Repository) SaveQuestion(ctx context.Context, question entities.Question) error {
	row, err := questionModelFromEntity(question)
	if err != nil {
		return err
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"question_text":  row.QuestionText,
			"options":        row.Options,
			"correct_option": row.CorrectOption,
			"points":         row.Points,
			"is_active":      row.IsActive,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("question_repo_save_failed", create.Error,
			"question_id", strings.TrimSpace(question.ID),
		)
	}
	return nil
}

func (r *Repository) GetQuestion(ctx context.Context, questionID string) (entities.Question, error) {
	var row questionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(questionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Question{}, domainerrors.ErrQuestionNotFound
		}
		return entities.Question{}, r.logError("question_repo_get_failed", err,
			"question_id", strings.TrimSpace(questionID),
		)
	}
	return row.toEntity()
}

func (r *Repository) ListActiveQuestions(ctx context.Context) ([]entities.Question, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("is_active = ?", true))
}

func (r *Repository) ListAllQuestions(ctx context.Context) ([]entities.Question, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

func (r *Repository) OldestInactiveQuestion(ctx context.Context) (entities.Question, bool, error) {
	var row questionModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", false).
		Order("created_at ASC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Question{}, false, nil
		}
		return entities.Question{}, false, r.logError("question_repo_oldest_inactive_failed", err)
	}
	question, convErr := row.toEntity()
	if convErr != nil {
		return entities.Question{}, false, convErr
	}
	return question, true, nil
}

func (r *Repository) DeactivateAllQuestions(ctx context.Context) (int, error) {
	result := r.db.WithContext(ctx).Model(&questionModel{}).
		Where("is_active = ?", true).
		Update("is_active", false)
	if result.Error != nil {
		return 0, r.logError("question_repo_deactivate_all_failed", result.Error)
	}
	return int(result.RowsAffected), nil
}

func (r *Repository) CountActiveQuestions(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&questionModel{}).
		Where("is_active = ?", true).
		Count(&count).Error; err != nil {
		return 0, r.logError("question_repo_count_active_failed", err)
	}
	return int(count), nil
}

func (r *Repository) list(_ context.Context, tx *gorm.DB) ([]entities.Question, error) {
	var rows []questionModel
	if err := tx.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, r.logError("question_repo_list_failed", err)
	}
	items := make([]entities.Question, 0, len(rows))
	for _, row := range rows {
		question, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, question)
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+7)
	fields = append(fields,
		"event", event,
		"module", "game-core/question-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("question repository operation failed", fields...)
	return err
}

type questionModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	QuestionText  string    `gorm:"column:question_text"`
	Options       []byte    `gorm:"column:options;type:jsonb"`
	CorrectOption string    `gorm:"column:correct_option"`
	Points        int       `gorm:"column:points;default:10"`
	IsActive      bool      `gorm:"column:is_active;default:false"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (questionModel) TableName() string {
	return "questions"
}

func questionModelFromEntity(question entities.Question) (questionModel, error) {
	options, err := json.Marshal(question.Options)
	if err != nil {
		return questionModel{}, err
	}
	return questionModel{
		ID:            strings.TrimSpace(question.ID),
		QuestionText:  question.QuestionText,
		Options:       options,
		CorrectOption: question.CorrectOption,
		Points:        question.Points,
		IsActive:      question.IsActive,
		CreatedAt:     question.CreatedAt,
	}, nil
}

func (m questionModel) toEntity() (entities.Question, error) {
	options := map[string]string{}
	if len(m.Options) > 0 {
		if err := json.Unmarshal(m.Options, &options); err != nil {
			return entities.Question{}, err
		}
	}
	return entities.Question{
		ID:            m.ID,
		QuestionText:  m.QuestionText,
		Options:       options,
		CorrectOption: m.CorrectOption,
		Points:        m.Points,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
	}, nil
}

// Model exposes the gorm model for platform automigration.
func Model() any {
	return &questionModel{}
}

var _ ports.QuestionRepository = (*Repository)(nil)
