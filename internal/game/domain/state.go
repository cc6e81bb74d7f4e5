package domain

import "fmt"

// Phase describes the lifecycle state of a game session.
type Phase int

const (
	// PhaseUnspecified represents an invalid phase value.
	PhaseUnspecified Phase = iota
	// PhaseInitial indicates a session that has been created but not dealt.
	PhaseInitial
	// PhaseInProgress indicates a session with rooms left to resolve.
	PhaseInProgress
	// PhaseWon indicates the dungeon was cleared.
	PhaseWon
	// PhaseLost indicates the player died.
	PhaseLost
)

// Terminal reports whether the phase ends the session. No further play or
// skip operation is meaningful once a session is terminal.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// String returns the wire name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "Initial"
	case PhaseInProgress:
		return "InProgress"
	case PhaseWon:
		return "Won"
	case PhaseLost:
		return "Lost"
	default:
		return "Unspecified"
	}
}

// ParsePhase maps a wire phase name to its Phase value.
func ParsePhase(value string) (Phase, error) {
	switch value {
	case "Initial":
		return PhaseInitial, nil
	case "InProgress":
		return PhaseInProgress, nil
	case "Won":
		return PhaseWon, nil
	case "Lost":
		return PhaseLost, nil
	default:
		return PhaseUnspecified, fmt.Errorf("unknown phase %q", value)
	}
}

// PlayerState mirrors the server's view of the player.
type PlayerState struct {
	Health         int
	MaxHealth      int
	EquippedWeapon *Card // nil when bare-handed

	// DefeatedMonsters lists monsters felled with the current weapon,
	// ordered by time of defeat, most recent last. Equipping a new weapon
	// resets it server-side.
	DefeatedMonsters []Card

	// UsedPotionThisRoom is true once a potion has taken effect in the
	// current room; later potions in the same room are no-ops.
	UsedPotionThisRoom bool
}

// LastDefeatedMonster returns the most recently defeated monster, or false
// when the current weapon has not defeated anything yet.
func (p PlayerState) LastDefeatedMonster() (Card, bool) {
	if len(p.DefeatedMonsters) == 0 {
		return Card{}, false
	}
	return p.DefeatedMonsters[len(p.DefeatedMonsters)-1], true
}

// RoomState mirrors the current room: up to four face-up cards the player
// must resolve or skip. Slots are positional; a played card's slot is absent
// on the next snapshot.
type RoomState struct {
	Cards     []Card
	Completed bool
}

// DeckState mirrors the dungeon deck.
type DeckState struct {
	Remaining           int
	PreviousRoomSkipped bool
}

// Snapshot is the complete server-authoritative state of one session as
// returned by a state fetch. It is always applied wholesale, never patched.
type Snapshot struct {
	Phase  Phase
	Player PlayerState
	Room   RoomState
	Deck   DeckState
}

// Clone returns a deep copy of the snapshot. GameSession hands clones to
// subscribers so nothing outside it can mutate the mirror.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.Player.EquippedWeapon != nil {
		weapon := *s.Player.EquippedWeapon
		out.Player.EquippedWeapon = &weapon
	}
	if s.Player.DefeatedMonsters != nil {
		out.Player.DefeatedMonsters = make([]Card, len(s.Player.DefeatedMonsters))
		copy(out.Player.DefeatedMonsters, s.Player.DefeatedMonsters)
	}
	if s.Room.Cards != nil {
		out.Room.Cards = make([]Card, len(s.Room.Cards))
		copy(out.Room.Cards, s.Room.Cards)
	}
	return out
}
