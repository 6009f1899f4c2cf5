// Package gameengine implements answer submission and the session
// orchestrator inside the game-core context.
//
// Submissions are credential-checked, first-answer-wins, and scored through
// the participant directory. After every accepted answer the orchestrator
// runs the completion check and, when the round looks finished, hands off to
// the tie-break capability. That hand-off is best effort and never fails the
// submission.
package gameengine
