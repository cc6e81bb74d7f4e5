package domain

import "fmt"

// Suit identifies a card suit. Suit determines what a card does in the
// dungeon: clubs and spades are monsters, diamonds are weapons, hearts are
// potions.
type Suit int

const (
	SuitClubs Suit = iota
	SuitDiamonds
	SuitHearts
	SuitSpades
)

// Valid reports whether the suit is one of the four known suits.
func (s Suit) Valid() bool {
	return s >= SuitClubs && s <= SuitSpades
}

// String returns the suit glyph used in card display labels.
func (s Suit) String() string {
	switch s {
	case SuitClubs:
		return "♣"
	case SuitDiamonds:
		return "♦"
	case SuitHearts:
		return "♥"
	case SuitSpades:
		return "♠"
	default:
		return "?"
	}
}

// Kind identifies the functional role of a card.
type Kind int

const (
	KindMonster Kind = iota
	KindWeapon
	KindPotion
)

// Valid reports whether the kind is one of the three known kinds.
func (k Kind) Valid() bool {
	return k >= KindMonster && k <= KindPotion
}

// String returns the human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindMonster:
		return "Monster"
	case KindWeapon:
		return "Weapon"
	case KindPotion:
		return "Potion"
	default:
		return "Card"
	}
}

// KindForSuit returns the kind a suit denotes. The server guarantees suit
// and kind agree in every valid snapshot, and some wire shapes omit the kind
// entirely, so the suit is the authoritative source.
func KindForSuit(s Suit) Kind {
	switch s {
	case SuitDiamonds:
		return KindWeapon
	case SuitHearts:
		return KindPotion
	default:
		return KindMonster
	}
}

// Card is a single card as received from the server. Immutable once decoded.
type Card struct {
	Kind    Kind
	Suit    Suit
	Value   int    // numeric rank: 2..10, J=11, Q=12, K=13, A=14
	Display string // server-provided label, e.g. "7♠"
}

// String returns the display label, falling back to rank+suit when the
// server did not provide one.
func (c Card) String() string {
	if c.Display != "" {
		return c.Display
	}
	return fmt.Sprintf("%s%s", rankLabel(c.Value), c.Suit)
}

func rankLabel(value int) string {
	switch value {
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	case 14:
		return "A"
	default:
		return fmt.Sprintf("%d", value)
	}
}
