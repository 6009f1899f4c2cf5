// Package rankedpoll implements the ranked poll session state machine inside
// the live-sessions context.
//
// A poll collects full rankings from participants inside a time window. At
// most one poll is active; activating one force-completes the rest. Ending a
// poll converts average ranks into points, credits scores, and reports the
// bottom group as eliminated.
package rankedpoll
