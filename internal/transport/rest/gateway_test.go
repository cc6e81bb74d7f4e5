package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tippi-fifestarr/scoundrel/internal/game/domain"
	apperrors "github.com/tippi-fifestarr/scoundrel/internal/platform/errors"
	"github.com/tippi-fifestarr/scoundrel/internal/testkit/gamefakes"
)

const snapshotBody = `{
	"state": "InProgress",
	"player": {
		"health": 17,
		"max_health": 20,
		"equipped_weapon": {"suit": 1, "value": 4, "display": "4♦"},
		"defeated_monsters": [{"suit": 3, "value": 9, "display": "9♠"}],
		"used_potion": false
	},
	"room": {
		"cards": [
			{"type": 0, "suit": 0, "value": 5, "display": "5♣"},
			{"type": 2, "suit": 2, "value": 10, "display": "10♥"}
		],
		"completed": false
	},
	"deck": {"remaining_cards": 32, "previous_room_skipped": true}
}`

func newTestGateway(t *testing.T, fake *gamefakes.RulesServer) (*Gateway, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(fake.Handler())
	t.Cleanup(server.Close)

	gateway, err := New(server.URL)
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	return gateway, server
}

func TestCreateSessionReturnsGameID(t *testing.T) {
	fake := gamefakes.NewRulesServer()
	gateway, _ := newTestGateway(t, fake)

	id, err := gateway.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if id != fake.GameID {
		t.Fatalf("expected id %q, got %q", fake.GameID, id)
	}
	if len(fake.Requests) != 1 || fake.Requests[0].Path != "/api/games" || fake.Requests[0].Method != http.MethodPost {
		t.Fatalf("unexpected requests %v", fake.Requests)
	}
}

func TestCreateSessionRejectedByServer(t *testing.T) {
	fake := gamefakes.NewRulesServer()
	fake.CreateStatus = http.StatusInternalServerError
	gateway, _ := newTestGateway(t, fake)

	_, err := gateway.CreateSession(context.Background())
	if !apperrors.HasCode(err, apperrors.CodeGatewayRejected) {
		t.Fatalf("expected GATEWAY_REJECTED, got %v", err)
	}
}

func TestFetchSnapshotDecodesFullState(t *testing.T) {
	fake := gamefakes.NewRulesServer(snapshotBody)
	gateway, _ := newTestGateway(t, fake)

	snapshot, err := gateway.FetchSnapshot(context.Background(), fake.GameID)
	if err != nil {
		t.Fatalf("fetch snapshot: %v", err)
	}

	if snapshot.Phase != domain.PhaseInProgress {
		t.Fatalf("expected InProgress, got %v", snapshot.Phase)
	}
	if snapshot.Player.Health != 17 || snapshot.Player.MaxHealth != 20 {
		t.Fatalf("unexpected player health %d/%d", snapshot.Player.Health, snapshot.Player.MaxHealth)
	}
	weapon := snapshot.Player.EquippedWeapon
	if weapon == nil || weapon.Kind != domain.KindWeapon || weapon.Value != 4 {
		t.Fatalf("expected weapon of value 4 derived from suit, got %+v", weapon)
	}
	if len(snapshot.Player.DefeatedMonsters) != 1 || snapshot.Player.DefeatedMonsters[0].Kind != domain.KindMonster {
		t.Fatalf("expected one defeated monster, got %+v", snapshot.Player.DefeatedMonsters)
	}
	if len(snapshot.Room.Cards) != 2 {
		t.Fatalf("expected two room cards, got %d", len(snapshot.Room.Cards))
	}
	if snapshot.Room.Cards[1].Kind != domain.KindPotion || snapshot.Room.Cards[1].Display != "10♥" {
		t.Fatalf("unexpected second card %+v", snapshot.Room.Cards[1])
	}
	if snapshot.Deck.Remaining != 32 || !snapshot.Deck.PreviousRoomSkipped {
		t.Fatalf("unexpected deck state %+v", snapshot.Deck)
	}
}

func TestFetchSnapshotMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>boom</html>"},
		{name: "missing player", body: `{"state": "InProgress", "room": {"cards": [], "completed": false}, "deck": {"remaining_cards": 0, "previous_room_skipped": false}}`},
		{name: "unknown phase", body: `{"state": "Paused", "player": {"health": 1, "max_health": 20, "used_potion": false}, "room": {"cards": [], "completed": false}, "deck": {"remaining_cards": 0, "previous_room_skipped": false}}`},
		{name: "invalid suit", body: `{"state": "InProgress", "player": {"health": 1, "max_health": 20, "used_potion": false}, "room": {"cards": [{"suit": 7, "value": 5}], "completed": false}, "deck": {"remaining_cards": 0, "previous_room_skipped": false}}`},
		{name: "negative deck", body: `{"state": "InProgress", "player": {"health": 1, "max_health": 20, "used_potion": false}, "room": {"cards": [], "completed": false}, "deck": {"remaining_cards": -1, "previous_room_skipped": false}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fake := gamefakes.NewRulesServer(tc.body)
			gateway, _ := newTestGateway(t, fake)

			_, err := gateway.FetchSnapshot(context.Background(), fake.GameID)
			if !apperrors.HasCode(err, apperrors.CodeSnapshotMalformed) {
				t.Fatalf("expected SNAPSHOT_MALFORMED, got %v", err)
			}
		})
	}
}

func TestFetchSnapshotUnknownSession(t *testing.T) {
	fake := gamefakes.NewRulesServer(snapshotBody)
	gateway, _ := newTestGateway(t, fake)

	_, err := gateway.FetchSnapshot(context.Background(), "no-such-game")
	if !apperrors.HasCode(err, apperrors.CodeGatewayRejected) {
		t.Fatalf("expected GATEWAY_REJECTED, got %v", err)
	}
}

func TestPlayCardSelectsEndpointByWeaponChoice(t *testing.T) {
	fake := gamefakes.NewRulesServer()
	gateway, _ := newTestGateway(t, fake)

	if err := gateway.PlayCard(context.Background(), fake.GameID, 2, true); err != nil {
		t.Fatalf("play with weapon: %v", err)
	}
	if err := gateway.PlayCard(context.Background(), fake.GameID, 3, false); err != nil {
		t.Fatalf("play without weapon: %v", err)
	}

	if len(fake.Requests) != 2 {
		t.Fatalf("expected two requests, got %d", len(fake.Requests))
	}
	if want := "/api/games/" + fake.GameID + "/play/2"; fake.Requests[0].Path != want {
		t.Fatalf("expected %q, got %q", want, fake.Requests[0].Path)
	}
	if want := "/api/games/" + fake.GameID + "/play-without-weapon/3"; fake.Requests[1].Path != want {
		t.Fatalf("expected %q, got %q", want, fake.Requests[1].Path)
	}
}

func TestPlayCardRejectionCarriesReason(t *testing.T) {
	fake := gamefakes.NewRulesServer()
	fake.PlayStatus = http.StatusBadRequest
	fake.PlayReason = "invalid card index"
	gateway, _ := newTestGateway(t, fake)

	err := gateway.PlayCard(context.Background(), fake.GameID, 9, true)
	if !apperrors.HasCode(err, apperrors.CodeGatewayRejected) {
		t.Fatalf("expected GATEWAY_REJECTED, got %v", err)
	}

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected structured error, got %T", err)
	}
	if appErr.Metadata["status"] != "400" {
		t.Fatalf("expected status metadata 400, got %q", appErr.Metadata["status"])
	}
	if appErr.Metadata["reason"] != "invalid card index" {
		t.Fatalf("expected server reason, got %q", appErr.Metadata["reason"])
	}
}

func TestSkipRoomHitsSkipEndpoint(t *testing.T) {
	fake := gamefakes.NewRulesServer()
	gateway, _ := newTestGateway(t, fake)

	if err := gateway.SkipRoom(context.Background(), fake.GameID); err != nil {
		t.Fatalf("skip room: %v", err)
	}
	if want := "/api/games/" + fake.GameID + "/skip"; len(fake.Requests) != 1 || fake.Requests[0].Path != want {
		t.Fatalf("expected single request to %q, got %v", want, fake.Requests)
	}
}

func TestUnreachableServerIsUnavailable(t *testing.T) {
	fake := gamefakes.NewRulesServer()
	gateway, server := newTestGateway(t, fake)
	server.Close()

	_, err := gateway.CreateSession(context.Background())
	if !apperrors.HasCode(err, apperrors.CodeGatewayUnavailable) {
		t.Fatalf("expected GATEWAY_UNAVAILABLE, got %v", err)
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New("   "); err == nil {
		t.Fatal("expected error for empty base url")
	}
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	fake := gamefakes.NewRulesServer()
	server := httptest.NewServer(fake.Handler())
	t.Cleanup(server.Close)

	gateway, err := New(server.URL + "/")
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	if _, err := gateway.CreateSession(context.Background()); err != nil {
		t.Fatalf("create session: %v", err)
	}
	if fake.Requests[0].Path != "/api/games" {
		t.Fatalf("expected clean path, got %q", fake.Requests[0].Path)
	}
}
