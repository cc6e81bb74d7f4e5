// Package events provides the synchronous publish/subscribe bus the game
// session uses to announce state transitions to presentation code, plus the
// typed payloads for each event kind.
package events
