package bootstrap

import (
	"context"
	"errors"

	gameports "tiebreak/contexts/game-core/game-engine/ports"
	participantcommands "tiebreak/contexts/game-core/participant-service/application/commands"
	participantqueries "tiebreak/contexts/game-core/participant-service/application/queries"
	"tiebreak/contexts/game-core/participant-service/domain/entities"
	participanterrors "tiebreak/contexts/game-core/participant-service/domain/errors"
	questionqueries "tiebreak/contexts/game-core/question-service/application/queries"
	questionerrors "tiebreak/contexts/game-core/question-service/domain/errors"
	votingcommands "tiebreak/contexts/live-sessions/elimination-voting/application/commands"
	votingentities "tiebreak/contexts/live-sessions/elimination-voting/domain/entities"
	votingerrors "tiebreak/contexts/live-sessions/elimination-voting/domain/errors"
	votingports "tiebreak/contexts/live-sessions/elimination-voting/ports"
	pollerrors "tiebreak/contexts/live-sessions/ranked-poll/domain/errors"
	pollports "tiebreak/contexts/live-sessions/ranked-poll/ports"

	gameerrors "tiebreak/contexts/game-core/game-engine/domain/errors"
)

// The directory adapters below are the in-process seams between modules. Each
// consumer module declares its own narrow port; these adapters satisfy them on
// top of the participant and question use cases and translate errors into the
// consumer's domain vocabulary.

type gameParticipantDirectory struct {
	participants participantcommands.ParticipantUseCase
	leaderboards participantqueries.LeaderboardUseCase
}

func (d gameParticipantDirectory) Authenticate(ctx context.Context, participantID string, password string) (gameports.ParticipantRecord, error) {
	participant, err := d.participants.Authenticate(ctx, participantID, password)
	if err != nil {
		return gameports.ParticipantRecord{}, translateGameError(err)
	}
	return toGameRecord(participant), nil
}

func (d gameParticipantDirectory) RecordAnswer(ctx context.Context, participantID string, points int) (gameports.ParticipantRecord, error) {
	participant, err := d.participants.RecordAnswer(ctx, participantID, points)
	if err != nil {
		return gameports.ParticipantRecord{}, translateGameError(err)
	}
	return toGameRecord(participant), nil
}

func (d gameParticipantDirectory) CountParticipants(ctx context.Context) (int, error) {
	return d.leaderboards.Count(ctx)
}

type gameQuestionCatalog struct {
	catalog questionqueries.CatalogUseCase
}

func (c gameQuestionCatalog) CheckAnswer(ctx context.Context, questionID string, selectedOption string) (bool, int, error) {
	correct, points, err := c.catalog.CheckAnswer(ctx, questionID, selectedOption)
	if err != nil {
		if errors.Is(err, questionerrors.ErrQuestionNotFound) {
			return false, 0, gameerrors.ErrQuestionNotFound
		}
		return false, 0, err
	}
	return correct, points, nil
}

func (c gameQuestionCatalog) CountActiveQuestions(ctx context.Context) (int, error) {
	return c.catalog.CountActive(ctx)
}

type votingTieBreaker struct {
	sessions votingcommands.SessionUseCase
}

func (t votingTieBreaker) OpenSession(ctx context.Context) error {
	_, _, err := t.sessions.OpenSession(ctx)
	return err
}

type votingParticipantDirectory struct {
	participants participantcommands.ParticipantUseCase
	leaderboards participantqueries.LeaderboardUseCase
}

func (d votingParticipantDirectory) Authenticate(ctx context.Context, participantID string, password string) (votingports.ParticipantRecord, error) {
	participant, err := d.participants.Authenticate(ctx, participantID, password)
	if err != nil {
		return votingports.ParticipantRecord{}, translateVotingError(err)
	}
	return toVotingRecord(participant), nil
}

func (d votingParticipantDirectory) Get(ctx context.Context, participantID string) (votingports.ParticipantRecord, error) {
	participant, err := d.leaderboards.Get(ctx, participantID)
	if err != nil {
		return votingports.ParticipantRecord{}, translateVotingError(err)
	}
	return toVotingRecord(participant), nil
}

func (d votingParticipantDirectory) Standings(ctx context.Context) ([]votingentities.Standing, error) {
	participants, err := d.leaderboards.List(ctx)
	if err != nil {
		return nil, err
	}
	standings := make([]votingentities.Standing, 0, len(participants))
	for _, participant := range participants {
		standings = append(standings, votingentities.Standing{
			ParticipantID: participant.ID,
			Score:         participant.Score,
		})
	}
	return standings, nil
}

func (d votingParticipantDirectory) AdjustScore(ctx context.Context, participantID string, delta int) (votingports.ParticipantRecord, error) {
	participant, err := d.participants.AdjustScore(ctx, participantID, delta)
	if err != nil {
		return votingports.ParticipantRecord{}, translateVotingError(err)
	}
	return toVotingRecord(participant), nil
}

type pollParticipantDirectory struct {
	participants participantcommands.ParticipantUseCase
	leaderboards participantqueries.LeaderboardUseCase
}

func (d pollParticipantDirectory) Authenticate(ctx context.Context, participantID string, password string) (pollports.ParticipantRecord, error) {
	participant, err := d.participants.Authenticate(ctx, participantID, password)
	if err != nil {
		return pollports.ParticipantRecord{}, translatePollError(err)
	}
	return toPollRecord(participant), nil
}

func (d pollParticipantDirectory) Get(ctx context.Context, participantID string) (pollports.ParticipantRecord, error) {
	participant, err := d.leaderboards.Get(ctx, participantID)
	if err != nil {
		return pollports.ParticipantRecord{}, translatePollError(err)
	}
	return toPollRecord(participant), nil
}

func (d pollParticipantDirectory) List(ctx context.Context) ([]pollports.ParticipantRecord, error) {
	participants, err := d.leaderboards.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]pollports.ParticipantRecord, 0, len(participants))
	for _, participant := range participants {
		records = append(records, toPollRecord(participant))
	}
	return records, nil
}

func (d pollParticipantDirectory) AdjustScore(ctx context.Context, participantID string, delta int) (pollports.ParticipantRecord, error) {
	participant, err := d.participants.AdjustScore(ctx, participantID, delta)
	if err != nil {
		return pollports.ParticipantRecord{}, translatePollError(err)
	}
	return toPollRecord(participant), nil
}

func toGameRecord(participant entities.Participant) gameports.ParticipantRecord {
	return gameports.ParticipantRecord{
		ID:                participant.ID,
		Name:              participant.Name,
		Score:             participant.Score,
		QuestionsAnswered: participant.QuestionsAnswered,
	}
}

func toVotingRecord(participant entities.Participant) votingports.ParticipantRecord {
	return votingports.ParticipantRecord{
		ID:                participant.ID,
		Name:              participant.Name,
		Score:             participant.Score,
		QuestionsAnswered: participant.QuestionsAnswered,
	}
}

func toPollRecord(participant entities.Participant) pollports.ParticipantRecord {
	return pollports.ParticipantRecord{
		ID:                participant.ID,
		Name:              participant.Name,
		Score:             participant.Score,
		QuestionsAnswered: participant.QuestionsAnswered,
	}
}

func translateGameError(err error) error {
	switch {
	case errors.Is(err, participanterrors.ErrParticipantNotFound):
		return gameerrors.ErrParticipantNotFound
	case errors.Is(err, participanterrors.ErrInvalidCredential):
		return gameerrors.ErrInvalidCredential
	default:
		return err
	}
}

func translateVotingError(err error) error {
	switch {
	case errors.Is(err, participanterrors.ErrParticipantNotFound):
		return votingerrors.ErrParticipantNotFound
	case errors.Is(err, participanterrors.ErrInvalidCredential):
		return votingerrors.ErrInvalidCredential
	default:
		return err
	}
}

func translatePollError(err error) error {
	switch {
	case errors.Is(err, participanterrors.ErrParticipantNotFound):
		return pollerrors.ErrInvalidParticipant
	case errors.Is(err, participanterrors.ErrInvalidCredential):
		return pollerrors.ErrInvalidCredential
	default:
		return err
	}
}

var (
	_ gameports.ParticipantDirectory   = gameParticipantDirectory{}
	_ gameports.QuestionCatalog        = gameQuestionCatalog{}
	_ gameports.TieBreaker             = votingTieBreaker{}
	_ votingports.ParticipantDirectory = votingParticipantDirectory{}
	_ pollports.ParticipantDirectory   = pollParticipantDirectory{}
)
