package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "tiebreak/contexts/live-sessions/ranked-poll/application"
	"tiebreak/contexts/live-sessions/ranked-poll/domain/entities"
	domainerrors "tiebreak/contexts/live-sessions/ranked-poll/domain/errors"
	"tiebreak/contexts/live-sessions/ranked-poll/ports"
)

const defaultEliminationCount = 3

// CreatePollCommand is the write-model input for poll creation.
type CreatePollCommand struct {
	Title       string
	Description string
	TimeLimit   int
}

// RankingEntry is one position in a ranker's submission.
type RankingEntry struct {
	RankedParticipantID string
	Rank                int
}

// SubmitRankingsCommand replaces a ranker's set for a poll.
type SubmitRankingsCommand struct {
	PollID   string
	RankerID string
	Password string
	Rankings []RankingEntry
}

// PollUseCase drives the ranked poll state machine: create, activate,
// rank, end, delete.
type PollUseCase struct {
	Polls            ports.PollRepository
	Rankings         ports.RankingRepository
	Participants     ports.ParticipantDirectory
	Scheduler        ports.Scheduler
	Clock            ports.Clock
	IDGen            ports.IDGenerator
	Notifier         ports.Notifier
	EliminationCount int
	Logger           *slog.Logger
}

func (uc PollUseCase) Create(ctx context.Context, cmd CreatePollCommand) (entities.Poll, error) {
	logger := application.ResolveLogger(uc.Logger)
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return entities.Poll{}, domainerrors.ErrInvalidInput
	}

	timeLimit := cmd.TimeLimit
	if timeLimit <= 0 {
		timeLimit = entities.DefaultTimeLimitSeconds
	}
	if timeLimit < entities.MinTimeLimitSeconds {
		timeLimit = entities.MinTimeLimitSeconds
	}

	pollID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Poll{}, err
	}

	now := uc.now()
	poll := entities.Poll{
		ID:          pollID,
		Title:       title,
		Description: strings.TrimSpace(cmd.Description),
		IsActive:    false,
		TimeLimit:   timeLimit,
		Status:      entities.PollStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.Polls.SavePoll(ctx, poll); err != nil {
		return entities.Poll{}, err
	}

	logger.Info("poll created",
		"event", "poll_created",
		"module", "live-sessions/ranked-poll",
		"layer", "application",
		"poll_id", poll.ID,
		"time_limit", poll.TimeLimit,
	)
	return poll, nil
}

// Activate makes the poll the single active one, force-completing any other
// active polls, and arms the end-of-window callback.
func (uc PollUseCase) Activate(ctx context.Context, pollID string) (entities.Poll, error) {
	logger := application.ResolveLogger(uc.Logger)

	poll, err := uc.Polls.GetPoll(ctx, strings.TrimSpace(pollID))
	if err != nil {
		return entities.Poll{}, err
	}

	closed, err := uc.Polls.CompleteOtherActivePolls(ctx, poll.ID, uc.now())
	if err != nil {
		return entities.Poll{}, err
	}
	if closed > 0 {
		logger.Info("displaced active polls",
			"event", "poll_activate_displaced",
			"module", "live-sessions/ranked-poll",
			"layer", "application",
			"poll_id", poll.ID,
			"displaced", closed,
		)
	}

	now := uc.now()
	endsAt := now.Add(time.Duration(poll.TimeLimit) * time.Second)
	poll.IsActive = true
	poll.Status = entities.PollStatusActive
	poll.PollEndsAt = &endsAt
	poll.UpdatedAt = now
	if err := uc.Polls.SavePoll(ctx, poll); err != nil {
		return entities.Poll{}, err
	}

	if uc.Scheduler != nil {
		uc.Scheduler.Arm(poll.ID, time.Duration(poll.TimeLimit)*time.Second, func() {
			if _, err := uc.EndPoll(context.Background(), poll.ID); err != nil {
				application.ResolveLogger(uc.Logger).Error("scheduled poll end failed",
					"event", "poll_scheduled_end_failed",
					"module", "live-sessions/ranked-poll",
					"layer", "application",
					"poll_id", poll.ID,
					"error", err.Error(),
				)
			}
		})
	}

	logger.Info("poll activated",
		"event", "poll_activated",
		"module", "live-sessions/ranked-poll",
		"layer", "application",
		"poll_id", poll.ID,
	)
	if uc.Notifier != nil {
		uc.Notifier.PollActivated(ctx, poll)
	}
	return poll, nil
}

// SubmitRankings validates the ordered eligibility chain and atomically
// replaces the ranker's set. Rank completeness is deliberately not enforced.
func (uc PollUseCase) SubmitRankings(ctx context.Context, cmd SubmitRankingsCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	pollID := strings.TrimSpace(cmd.PollID)
	rankerID := strings.TrimSpace(cmd.RankerID)

	if pollID == "" || rankerID == "" || len(cmd.Rankings) == 0 {
		return domainerrors.ErrInvalidInput
	}
	if _, err := uc.Participants.Authenticate(ctx, rankerID, cmd.Password); err != nil {
		return err
	}

	poll, err := uc.Polls.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if !poll.IsActive || poll.Status != entities.PollStatusActive {
		return domainerrors.ErrPollEnded
	}
	if poll.PollEndsAt != nil && uc.now().After(*poll.PollEndsAt) {
		return domainerrors.ErrPollExpired
	}

	now := uc.now()
	rankings := make([]entities.Ranking, 0, len(cmd.Rankings))
	for _, entry := range cmd.Rankings {
		targetID := strings.TrimSpace(entry.RankedParticipantID)
		if targetID == "" || entry.Rank < 1 {
			return domainerrors.ErrInvalidInput
		}
		if targetID == rankerID {
			return domainerrors.ErrSelfRank
		}
		if _, err := uc.Participants.Get(ctx, targetID); err != nil {
			return domainerrors.ErrInvalidParticipant
		}

		rankingID, err := uc.IDGen.NewID(ctx)
		if err != nil {
			return err
		}
		rankings = append(rankings, entities.Ranking{
			ID:                  rankingID,
			PollID:              pollID,
			RankerParticipantID: rankerID,
			RankedParticipantID: targetID,
			Rank:                entry.Rank,
			CreatedAt:           now,
		})
	}

	if err := uc.Rankings.ReplaceRankings(ctx, pollID, rankerID, rankings); err != nil {
		return err
	}

	logger.Info("rankings submitted",
		"event", "poll_rankings_submitted",
		"module", "live-sessions/ranked-poll",
		"layer", "application",
		"poll_id", pollID,
		"ranker_id", rankerID,
		"entries", len(rankings),
	)
	if uc.Notifier != nil {
		uc.Notifier.RankingUpdated(ctx, pollID)
	}
	return nil
}

// EndPoll completes an active poll, credits points, and reports the bottom
// group as eliminated. The compare-and-set makes concurrent enders collapse
// to one winner; losers no-op.
func (uc PollUseCase) EndPoll(ctx context.Context, pollID string) (entities.Poll, error) {
	logger := application.ResolveLogger(uc.Logger)
	id := strings.TrimSpace(pollID)

	if uc.Scheduler != nil {
		uc.Scheduler.Cancel(id)
	}

	poll, won, err := uc.Polls.CompleteIfActive(ctx, id, uc.now())
	if err != nil {
		return entities.Poll{}, err
	}
	if !won {
		return poll, nil
	}

	results, err := uc.computeResults(ctx, poll)
	if err != nil {
		logger.Error("poll results computation failed",
			"event", "poll_results_failed",
			"module", "live-sessions/ranked-poll",
			"layer", "application",
			"poll_id", poll.ID,
			"error", err.Error(),
		)
		return poll, nil
	}

	for _, result := range results.Results {
		if result.TotalPoints <= 0 {
			continue
		}
		if _, err := uc.Participants.AdjustScore(ctx, result.ParticipantID, result.TotalPoints); err != nil {
			logger.Error("poll point award failed",
				"event", "poll_award_failed",
				"module", "live-sessions/ranked-poll",
				"layer", "application",
				"poll_id", poll.ID,
				"participant_id", result.ParticipantID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("poll ended",
		"event", "poll_ended",
		"module", "live-sessions/ranked-poll",
		"layer", "application",
		"poll_id", poll.ID,
		"ranked", len(results.Results),
		"eliminated", len(results.Eliminated),
	)
	if uc.Notifier != nil {
		uc.Notifier.PollEnded(ctx, results)
	}
	return poll, nil
}

// Delete removes the poll and its rankings, whatever its status.
func (uc PollUseCase) Delete(ctx context.Context, pollID string) error {
	logger := application.ResolveLogger(uc.Logger)
	id := strings.TrimSpace(pollID)

	if uc.Scheduler != nil {
		uc.Scheduler.Cancel(id)
	}
	if _, err := uc.Polls.GetPoll(ctx, id); err != nil {
		return err
	}
	if err := uc.Rankings.DeleteRankingsByPoll(ctx, id); err != nil {
		return err
	}
	if err := uc.Polls.DeletePoll(ctx, id); err != nil {
		return err
	}

	logger.Info("poll deleted",
		"event", "poll_deleted",
		"module", "live-sessions/ranked-poll",
		"layer", "application",
		"poll_id", id,
	)
	return nil
}

func (uc PollUseCase) computeResults(ctx context.Context, poll entities.Poll) (ports.PollResults, error) {
	rankings, err := uc.Rankings.ListRankings(ctx, poll.ID)
	if err != nil {
		return ports.PollResults{}, err
	}
	records, err := uc.Participants.List(ctx)
	if err != nil {
		return ports.PollResults{}, err
	}

	candidates := make([]entities.Candidate, 0, len(records))
	for _, record := range records {
		candidates = append(candidates, entities.Candidate{
			ParticipantID: record.ID,
			Name:          record.Name,
		})
	}

	results := entities.ComputeResults(candidates, rankings)
	return ports.PollResults{
		Poll:       poll,
		Results:    results,
		Eliminated: entities.BottomGroup(results, uc.eliminationCount()),
	}, nil
}

func (uc PollUseCase) eliminationCount() int {
	if uc.EliminationCount <= 0 {
		return defaultEliminationCount
	}
	return uc.EliminationCount
}

func (uc PollUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
