package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/tippi-fifestarr/scoundrel/internal/game/domain"
	"github.com/tippi-fifestarr/scoundrel/internal/game/events"
	"github.com/tippi-fifestarr/scoundrel/internal/game/rules"
	"github.com/tippi-fifestarr/scoundrel/internal/journal"
	apperrors "github.com/tippi-fifestarr/scoundrel/internal/platform/errors"
)

// Gateway performs the four remote operations against the rules server.
// No operation returns partial updates; FetchSnapshot always returns the
// complete state tree.
type Gateway interface {
	CreateSession(ctx context.Context) (string, error)
	FetchSnapshot(ctx context.Context, sessionID string) (domain.Snapshot, error)
	PlayCard(ctx context.Context, sessionID string, index int, useWeapon bool) error
	SkipRoom(ctx context.Context, sessionID string) error
}

// Session mirrors the server-authoritative state of one playthrough.
//
// At most one operation may be in flight at a time; overlapping invocations
// are rejected with CodeSessionBusy rather than racing two refreshes against
// each other. Event handlers run synchronously on the operating goroutine,
// so a handler that calls back into the session sees the busy rejection.
type Session struct {
	gateway Gateway
	bus     *events.Bus
	sink    journal.Sink

	mu    sync.Mutex
	busy  bool
	id    string
	state domain.Snapshot
}

// Option configures optional session dependencies.
type Option func(*Session)

// WithJournal injects the sink the session narrates play into.
func WithJournal(sink journal.Sink) Option {
	return func(s *Session) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// New creates a session bound to a gateway and an event bus.
func New(gateway Gateway, bus *events.Bus, opts ...Option) *Session {
	s := &Session{
		gateway: gateway,
		bus:     bus,
		sink:    journal.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the server-issued session id, empty until Start succeeds.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// State returns a copy of the most recently fetched snapshot.
func (s *Session) State() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Start creates a new session on the server and fetches its initial
// snapshot. On gateway failure the session id stays unset and no state is
// committed. A started session replaces any previous one.
func (s *Session) Start(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if s.gateway == nil {
		return fmt.Errorf("gateway is not configured")
	}

	id, err := s.gateway.CreateSession(ctx)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	s.mu.Lock()
	s.id = id
	s.mu.Unlock()

	if err := s.refresh(ctx); err != nil {
		return err
	}

	s.sink.Log("New game started!")
	return nil
}

// Refresh fetches a full snapshot and replaces all local state atomically.
// A failed fetch leaves the prior state untouched. On success a
// StateChanged event carrying the full new state is published.
func (s *Session) Refresh(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()
	return s.refresh(ctx)
}

// PlayCard plays the card at index in the current room. useWeapon selects
// between the play and play-without-weapon remote operations. On success the
// session refreshes, then publishes CardPlayed, plus RoomCompleted and
// GameOver as the refreshed snapshot warrants. On remote failure no events
// fire and state is unchanged.
func (s *Session) PlayCard(ctx context.Context, index int, useWeapon bool) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if s.gateway == nil {
		return fmt.Errorf("gateway is not configured")
	}

	s.mu.Lock()
	id := s.id
	before := s.state.Clone()
	s.mu.Unlock()

	if id == "" {
		return apperrors.New(apperrors.CodeNoActiveSession, "no active session; start a new game first")
	}
	if index < 0 || index >= len(before.Room.Cards) {
		return apperrors.WithMetadata(apperrors.CodeCardIndexOutOfRange, "card index out of range", map[string]string{
			"index": fmt.Sprintf("%d", index),
			"cards": fmt.Sprintf("%d", len(before.Room.Cards)),
		})
	}

	// Capture the target before the call; the server clears it from the room.
	card := before.Room.Cards[index]

	if err := s.gateway.PlayCard(ctx, id, index, useWeapon); err != nil {
		return fmt.Errorf("play card: %w", err)
	}

	if err := s.refresh(ctx); err != nil {
		return err
	}

	s.narrateCardPlay(before.Player, card, useWeapon)

	if err := s.bus.Publish(events.CardPlayed{Index: index, Card: card, UseWeapon: useWeapon}); err != nil {
		return err
	}

	after := s.State()
	if after.Room.Completed {
		s.sink.Log("Room completed! Moving to next room...")
		if err := s.bus.Publish(events.RoomCompleted{}); err != nil {
			return err
		}
	}
	if after.Phase.Terminal() {
		if err := s.bus.Publish(events.GameOver{Won: after.Phase == domain.PhaseWon}); err != nil {
			return err
		}
	}
	return nil
}

// Skip discards the current room unresolved and deals a new one. The skip is
// rejected locally, before any network call, when the client-side rules
// disallow it.
func (s *Session) Skip(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if s.gateway == nil {
		return fmt.Errorf("gateway is not configured")
	}

	s.mu.Lock()
	id := s.id
	current := s.state.Clone()
	s.mu.Unlock()

	if id == "" {
		return apperrors.New(apperrors.CodeNoActiveSession, "no active session; start a new game first")
	}
	if !rules.CanSkipRoom(current.Deck, current.Room, current.Phase) {
		return apperrors.New(apperrors.CodeSkipNotAllowed, "cannot skip this room")
	}

	if err := s.gateway.SkipRoom(ctx, id); err != nil {
		return fmt.Errorf("skip room: %w", err)
	}

	if err := s.refresh(ctx); err != nil {
		return err
	}

	s.sink.Log("Room skipped! New room dealt.")
	return nil
}

// refresh performs the fetch-and-replace without touching the busy flag.
func (s *Session) refresh(ctx context.Context) error {
	if s.gateway == nil {
		return fmt.Errorf("gateway is not configured")
	}

	s.mu.Lock()
	id := s.id
	s.mu.Unlock()

	if id == "" {
		return apperrors.New(apperrors.CodeNoActiveSession, "no active session; start a new game first")
	}

	snapshot, err := s.gateway.FetchSnapshot(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch snapshot: %w", err)
	}

	s.mu.Lock()
	s.state = snapshot
	s.mu.Unlock()

	if s.bus == nil {
		return nil
	}
	return s.bus.Publish(events.StateChanged{State: snapshot.Clone()})
}

// narrateCardPlay writes the adventure-log line for a resolved card play.
// The player state is the one captured before the call, so potion and
// weapon effects are described against the room the card was played in.
func (s *Session) narrateCardPlay(player domain.PlayerState, card domain.Card, useWeapon bool) {
	switch card.Kind {
	case domain.KindMonster:
		if useWeapon && player.EquippedWeapon != nil {
			s.sink.Log(fmt.Sprintf("Fought %s (Monster) using your %s weapon.", card, player.EquippedWeapon))
		} else {
			s.sink.Log(fmt.Sprintf("Fought %s (Monster) barehanded! Took %d damage.", card, card.Value))
		}
	case domain.KindWeapon:
		s.sink.Log(fmt.Sprintf("Equipped %s (Weapon).", card))
	case domain.KindPotion:
		if player.UsedPotionThisRoom {
			s.sink.Log(fmt.Sprintf("Used %s (Potion) but it had no effect (can only use one potion per room).", card))
		} else {
			s.sink.Log(fmt.Sprintf("Used %s (Potion) and healed %d health.", card, card.Value))
		}
	}
}

func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return apperrors.New(apperrors.CodeSessionBusy, "another operation is in flight")
	}
	s.busy = true
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}
