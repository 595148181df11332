// Package discovery implements the swipe feed: gesture classification, the candidate
// queue, the match draw and the state machine that ties them together.
//
// Machine.Apply is a pure function from (State, Event) to (State, []Effect). Session is
// the runtime around it: it serialises events, runs the like notification in the
// background, plays the dislike and match-reveal delays on a Scheduler and discards
// completions that belong to a replaced candidate list.
package discovery
