package events

import "github.com/tippi-fifestarr/scoundrel/internal/game/domain"

// Kind identifies an event kind on the bus.
type Kind string

const (
	// KindStateChanged fires after every successful snapshot refresh and
	// carries the full new state.
	KindStateChanged Kind = "state_changed"
	// KindCardPlayed fires after a card play is acknowledged and the
	// follow-up refresh succeeds.
	KindCardPlayed Kind = "card_played"
	// KindRoomCompleted fires when the refreshed room reports completed.
	KindRoomCompleted Kind = "room_completed"
	// KindGameOver fires when the refreshed phase is terminal.
	KindGameOver Kind = "game_over"
)

// Event is implemented by every payload published on the bus.
type Event interface {
	EventKind() Kind
}

// StateChanged carries the complete state after a successful refresh.
type StateChanged struct {
	State domain.Snapshot
}

// EventKind implements Event.
func (StateChanged) EventKind() Kind { return KindStateChanged }

// CardPlayed describes the card play that just succeeded. Card is the card
// captured before the network call; the server clears it from the room.
type CardPlayed struct {
	Index     int
	Card      domain.Card
	UseWeapon bool
}

// EventKind implements Event.
func (CardPlayed) EventKind() Kind { return KindCardPlayed }

// RoomCompleted signals the room was resolved and the next one dealt.
type RoomCompleted struct{}

// EventKind implements Event.
func (RoomCompleted) EventKind() Kind { return KindRoomCompleted }

// GameOver signals a terminal phase.
type GameOver struct {
	Won bool
}

// EventKind implements Event.
func (GameOver) EventKind() Kind { return KindGameOver }
