package gamefakes

import (
	"context"

	"github.com/tippi-fifestarr/scoundrel/internal/game/domain"
)

// PlayCall records one PlayCard invocation on the fake gateway.
type PlayCall struct {
	SessionID string
	Index     int
	UseWeapon bool
}

// Gateway is a scripted in-memory session.Gateway fake for tests. Snapshots
// are served in order; the last one repeats once the script runs out.
type Gateway struct {
	CreateID  string
	CreateErr error

	Snapshots   []domain.Snapshot
	snapshotIdx int
	FetchErr    error

	PlayErr error
	SkipErr error

	CreateCalls int
	FetchCalls  int
	PlayCalls   []PlayCall
	SkipCalls   []string
}

// NewGateway constructs a Gateway fake with a fixed session id.
func NewGateway(id string, snapshots ...domain.Snapshot) *Gateway {
	return &Gateway{CreateID: id, Snapshots: snapshots}
}

func (g *Gateway) CreateSession(_ context.Context) (string, error) {
	g.CreateCalls++
	if g.CreateErr != nil {
		return "", g.CreateErr
	}
	return g.CreateID, nil
}

func (g *Gateway) FetchSnapshot(_ context.Context, _ string) (domain.Snapshot, error) {
	g.FetchCalls++
	if g.FetchErr != nil {
		return domain.Snapshot{}, g.FetchErr
	}
	if len(g.Snapshots) == 0 {
		return domain.Snapshot{}, nil
	}
	snapshot := g.Snapshots[g.snapshotIdx]
	if g.snapshotIdx < len(g.Snapshots)-1 {
		g.snapshotIdx++
	}
	return snapshot, nil
}

func (g *Gateway) PlayCard(_ context.Context, sessionID string, index int, useWeapon bool) error {
	g.PlayCalls = append(g.PlayCalls, PlayCall{SessionID: sessionID, Index: index, UseWeapon: useWeapon})
	return g.PlayErr
}

func (g *Gateway) SkipRoom(_ context.Context, sessionID string) error {
	g.SkipCalls = append(g.SkipCalls, sessionID)
	return g.SkipErr
}
