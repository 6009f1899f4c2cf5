// Package eliminationvoting implements tie detection and the elimination
// voting session state machine inside the live-sessions context.
//
// A session opens when the leaderboard has two or more participants tied at
// the strictly positive top score. Tied participants vote on who to
// eliminate inside a fixed window; closing tallies the votes, breaks vote
// ties uniformly at random, and applies the score penalty. Open, close, and
// cancel are all safe to repeat.
package eliminationvoting
