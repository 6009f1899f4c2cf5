// Package participantservice implements the participant directory inside the
// game-core context.
//
// The module owns participant registration and login, score mutation with the
// zero floor, and the leaderboard read model. Other modules reach it through
// directory ports wired at bootstrap; it never reaches back into them.
package participantservice
