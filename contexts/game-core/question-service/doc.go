// Package questionservice implements the question catalog inside the
// game-core context: authoring, the activation wave, answer checking, and
// the reset path that returns the catalog to its initial state.
package questionservice
