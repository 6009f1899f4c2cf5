package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "tiebreak/contexts/game-core/participant-service/application"
	"tiebreak/contexts/game-core/participant-service/domain/entities"
	domainerrors "tiebreak/contexts/game-core/participant-service/domain/errors"
	"tiebreak/contexts/game-core/participant-service/ports"
)

// RegisterCommand is the write-model input for participant registration.
type RegisterCommand struct {
	Name     string
	Password string
}

// LoginCommand authenticates a participant by name and password.
type LoginCommand struct {
	Name     string
	Password string
}

// ParticipantUseCase orchestrates participant writes: registration, login,
// score mutation with the zero floor, and the bulk wipe.
type ParticipantUseCase struct {
	Participants ports.ParticipantRepository
	Hasher       ports.PasswordHasher
	Clock        ports.Clock
	IDGen        ports.IDGenerator
	Notifier     ports.Notifier
	Logger       *slog.Logger
}

func (uc ParticipantUseCase) Register(ctx context.Context, cmd RegisterCommand) (entities.Participant, error) {
	logger := application.ResolveLogger(uc.Logger)
	name := strings.TrimSpace(cmd.Name)

	if len(name) < 2 || len(name) > 255 || len(cmd.Password) < 4 {
		logger.Warn("participant registration validation failed",
			"event", "participant_register_validation_failed",
			"module", "game-core/participant-service",
			"layer", "application",
			"name", name,
		)
		return entities.Participant{}, domainerrors.ErrInvalidInput
	}

	hash, err := uc.Hasher.Hash(cmd.Password)
	if err != nil {
		return entities.Participant{}, err
	}

	participantID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Participant{}, err
	}

	now := uc.now()
	participant := entities.Participant{
		ID:           participantID,
		Name:         name,
		PasswordHash: hash,
		Score:        0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.Participants.SaveParticipant(ctx, participant); err != nil {
		return entities.Participant{}, err
	}

	logger.Info("participant registered",
		"event", "participant_registered",
		"module", "game-core/participant-service",
		"layer", "application",
		"participant_id", participant.ID,
		"name", participant.Name,
	)
	uc.broadcastLeaderboard(ctx)
	return participant, nil
}

func (uc ParticipantUseCase) Login(ctx context.Context, cmd LoginCommand) (entities.Participant, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" || cmd.Password == "" {
		return entities.Participant{}, domainerrors.ErrInvalidCredential
	}

	participant, err := uc.Participants.GetParticipantByName(ctx, name)
	if err != nil {
		return entities.Participant{}, domainerrors.ErrInvalidCredential
	}
	if err := uc.Hasher.Compare(participant.PasswordHash, cmd.Password); err != nil {
		return entities.Participant{}, domainerrors.ErrInvalidCredential
	}
	return participant, nil
}

// Authenticate verifies the credential of a known participant id. The caller
// gets the participant back so it can reuse the record without a second read.
func (uc ParticipantUseCase) Authenticate(ctx context.Context, participantID string, password string) (entities.Participant, error) {
	participant, err := uc.Participants.GetParticipant(ctx, strings.TrimSpace(participantID))
	if err != nil {
		return entities.Participant{}, err
	}
	if err := uc.Hasher.Compare(participant.PasswordHash, password); err != nil {
		return entities.Participant{}, domainerrors.ErrInvalidCredential
	}
	return participant, nil
}

// AdjustScore applies a signed delta with the zero floor and broadcasts the
// refreshed leaderboard.
func (uc ParticipantUseCase) AdjustScore(ctx context.Context, participantID string, delta int) (entities.Participant, error) {
	logger := application.ResolveLogger(uc.Logger)
	participant, err := uc.Participants.ApplyScoreDelta(ctx, strings.TrimSpace(participantID), delta, 0)
	if err != nil {
		return entities.Participant{}, err
	}
	logger.Info("participant score adjusted",
		"event", "participant_score_adjusted",
		"module", "game-core/participant-service",
		"layer", "application",
		"participant_id", participant.ID,
		"delta", delta,
		"score", participant.Score,
	)
	uc.broadcastLeaderboard(ctx)
	return participant, nil
}

// RecordAnswer counts one submitted answer and credits points (zero for a
// wrong answer).
func (uc ParticipantUseCase) RecordAnswer(ctx context.Context, participantID string, points int) (entities.Participant, error) {
	participant, err := uc.Participants.ApplyScoreDelta(ctx, strings.TrimSpace(participantID), points, 1)
	if err != nil {
		return entities.Participant{}, err
	}
	uc.broadcastLeaderboard(ctx)
	return participant, nil
}

// WipeAll removes every participant. Owned rows in other modules go with
// them through cascade deletes.
func (uc ParticipantUseCase) WipeAll(ctx context.Context) (int, error) {
	logger := application.ResolveLogger(uc.Logger)
	removed, err := uc.Participants.DeleteAllParticipants(ctx)
	if err != nil {
		return 0, err
	}
	logger.Info("participants wiped",
		"event", "participants_wiped",
		"module", "game-core/participant-service",
		"layer", "application",
		"removed", removed,
	)
	uc.broadcastLeaderboard(ctx)
	return removed, nil
}

func (uc ParticipantUseCase) broadcastLeaderboard(ctx context.Context) {
	if uc.Notifier == nil {
		return
	}
	leaderboard, err := uc.Participants.ListParticipants(ctx)
	if err != nil {
		application.ResolveLogger(uc.Logger).Warn("leaderboard broadcast skipped",
			"event", "participant_leaderboard_broadcast_skipped",
			"module", "game-core/participant-service",
			"layer", "application",
			"error", err.Error(),
		)
		return
	}
	uc.Notifier.LeaderboardUpdated(ctx, leaderboard)
}

func (uc ParticipantUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
