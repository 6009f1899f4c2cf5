package queries

import (
	"context"
	"strings"

	"tiebreak/contexts/live-sessions/ranked-poll/domain/entities"
	"tiebreak/contexts/live-sessions/ranked-poll/ports"
)

// ResultsUseCase serves poll reads and on-demand result aggregation.
type ResultsUseCase struct {
	Polls            ports.PollRepository
	Rankings         ports.RankingRepository
	Participants     ports.ParticipantDirectory
	EliminationCount int
}

func (uc ResultsUseCase) Poll(ctx context.Context, pollID string) (entities.Poll, error) {
	return uc.Polls.GetPoll(ctx, strings.TrimSpace(pollID))
}

func (uc ResultsUseCase) ActivePoll(ctx context.Context) (entities.Poll, bool, error) {
	return uc.Polls.ActivePoll(ctx)
}

func (uc ResultsUseCase) ListPolls(ctx context.Context) ([]entities.Poll, error) {
	return uc.Polls.ListPolls(ctx)
}

func (uc ResultsUseCase) Results(ctx context.Context, pollID string) (ports.PollResults, error) {
	poll, err := uc.Polls.GetPoll(ctx, strings.TrimSpace(pollID))
	if err != nil {
		return ports.PollResults{}, err
	}
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
	count := uc.EliminationCount
	if count <= 0 {
		count = 3
	}
	return ports.PollResults{
		Poll:       poll,
		Results:    results,
		Eliminated: entities.BottomGroup(results, count),
	}, nil
}
