package rest

import (
	"encoding/json"
	"fmt"

	"github.com/tippi-fifestarr/scoundrel/internal/game/domain"
	apperrors "github.com/tippi-fifestarr/scoundrel/internal/platform/errors"
)

// Wire shapes use pointer fields so missing keys are distinguishable from
// zero values. A snapshot missing any expected field decodes to an error and
// is never partially applied.

type wireSnapshot struct {
	State  *string     `json:"state"`
	Player *wirePlayer `json:"player"`
	Room   *wireRoom   `json:"room"`
	Deck   *wireDeck   `json:"deck"`
}

type wirePlayer struct {
	Health           *int       `json:"health"`
	MaxHealth        *int       `json:"max_health"`
	EquippedWeapon   *wireCard  `json:"equipped_weapon"`
	DefeatedMonsters []wireCard `json:"defeated_monsters"`
	UsedPotion       *bool      `json:"used_potion"`
}

type wireRoom struct {
	Cards     []wireCard `json:"cards"`
	Completed *bool      `json:"completed"`
}

type wireDeck struct {
	RemainingCards      *int  `json:"remaining_cards"`
	PreviousRoomSkipped *bool `json:"previous_room_skipped"`
}

// wireCard carries the server card shape. Room cards include the kind as
// "type"; equipped_weapon and defeated_monsters omit it, so the kind falls
// back to the suit.
type wireCard struct {
	Type    *int   `json:"type"`
	Suit    *int   `json:"suit"`
	Value   *int   `json:"value"`
	Display string `json:"display"`
}

func decodeSnapshot(body []byte) (domain.Snapshot, error) {
	var wire wireSnapshot
	if err := json.Unmarshal(body, &wire); err != nil {
		return domain.Snapshot{}, apperrors.Wrap(apperrors.CodeSnapshotMalformed, "decode snapshot", err)
	}

	snapshot, err := wire.toDomain()
	if err != nil {
		return domain.Snapshot{}, apperrors.Wrap(apperrors.CodeSnapshotMalformed, "decode snapshot", err)
	}
	return snapshot, nil
}

func (w wireSnapshot) toDomain() (domain.Snapshot, error) {
	if w.State == nil {
		return domain.Snapshot{}, fmt.Errorf("missing state")
	}
	if w.Player == nil {
		return domain.Snapshot{}, fmt.Errorf("missing player")
	}
	if w.Room == nil {
		return domain.Snapshot{}, fmt.Errorf("missing room")
	}
	if w.Deck == nil {
		return domain.Snapshot{}, fmt.Errorf("missing deck")
	}

	phase, err := domain.ParsePhase(*w.State)
	if err != nil {
		return domain.Snapshot{}, err
	}

	player, err := w.Player.toDomain()
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("player: %w", err)
	}

	room, err := w.Room.toDomain()
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("room: %w", err)
	}

	deck, err := w.Deck.toDomain()
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("deck: %w", err)
	}

	return domain.Snapshot{
		Phase:  phase,
		Player: player,
		Room:   room,
		Deck:   deck,
	}, nil
}

func (w wirePlayer) toDomain() (domain.PlayerState, error) {
	if w.Health == nil {
		return domain.PlayerState{}, fmt.Errorf("missing health")
	}
	if w.MaxHealth == nil {
		return domain.PlayerState{}, fmt.Errorf("missing max_health")
	}
	if w.UsedPotion == nil {
		return domain.PlayerState{}, fmt.Errorf("missing used_potion")
	}

	player := domain.PlayerState{
		Health:             *w.Health,
		MaxHealth:          *w.MaxHealth,
		UsedPotionThisRoom: *w.UsedPotion,
	}

	if w.EquippedWeapon != nil {
		weapon, err := w.EquippedWeapon.toDomain()
		if err != nil {
			return domain.PlayerState{}, fmt.Errorf("equipped_weapon: %w", err)
		}
		player.EquippedWeapon = &weapon
	}

	player.DefeatedMonsters = make([]domain.Card, 0, len(w.DefeatedMonsters))
	for i, monster := range w.DefeatedMonsters {
		card, err := monster.toDomain()
		if err != nil {
			return domain.PlayerState{}, fmt.Errorf("defeated_monsters[%d]: %w", i, err)
		}
		player.DefeatedMonsters = append(player.DefeatedMonsters, card)
	}

	return player, nil
}

func (w wireRoom) toDomain() (domain.RoomState, error) {
	if w.Completed == nil {
		return domain.RoomState{}, fmt.Errorf("missing completed")
	}

	room := domain.RoomState{
		Cards:     make([]domain.Card, 0, len(w.Cards)),
		Completed: *w.Completed,
	}
	for i, card := range w.Cards {
		decoded, err := card.toDomain()
		if err != nil {
			return domain.RoomState{}, fmt.Errorf("cards[%d]: %w", i, err)
		}
		room.Cards = append(room.Cards, decoded)
	}
	return room, nil
}

func (w wireDeck) toDomain() (domain.DeckState, error) {
	if w.RemainingCards == nil {
		return domain.DeckState{}, fmt.Errorf("missing remaining_cards")
	}
	if w.PreviousRoomSkipped == nil {
		return domain.DeckState{}, fmt.Errorf("missing previous_room_skipped")
	}
	if *w.RemainingCards < 0 {
		return domain.DeckState{}, fmt.Errorf("negative remaining_cards")
	}
	return domain.DeckState{
		Remaining:           *w.RemainingCards,
		PreviousRoomSkipped: *w.PreviousRoomSkipped,
	}, nil
}

func (w wireCard) toDomain() (domain.Card, error) {
	if w.Suit == nil {
		return domain.Card{}, fmt.Errorf("missing suit")
	}
	if w.Value == nil {
		return domain.Card{}, fmt.Errorf("missing value")
	}

	suit := domain.Suit(*w.Suit)
	if !suit.Valid() {
		return domain.Card{}, fmt.Errorf("unknown suit %d", *w.Suit)
	}

	kind := domain.KindForSuit(suit)
	if w.Type != nil {
		kind = domain.Kind(*w.Type)
		if !kind.Valid() {
			return domain.Card{}, fmt.Errorf("unknown card type %d", *w.Type)
		}
	}

	return domain.Card{
		Kind:    kind,
		Suit:    suit,
		Value:   *w.Value,
		Display: w.Display,
	}, nil
}
