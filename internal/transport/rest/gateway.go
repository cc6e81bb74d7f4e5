package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tippi-fifestarr/scoundrel/internal/game/domain"
	apperrors "github.com/tippi-fifestarr/scoundrel/internal/platform/errors"
)

const (
	newGamePath               = "/api/games"
	gameStatePath             = "/api/games/%s"
	playCardPath              = "/api/games/%s/play/%d"
	playCardWithoutWeaponPath = "/api/games/%s/play-without-weapon/%d"
	skipRoomPath              = "/api/games/%s/skip"
)

const defaultRequestTimeout = 15 * time.Second

// Gateway talks to the Scoundrel rules server.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// Option configures optional gateway dependencies.
type Option func(*Gateway)

// WithHTTPClient replaces the default HTTP client. Cancellation and timeout
// policy live here; the session core performs no retries of its own.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		if client != nil {
			g.httpClient = client
		}
	}
}

// New creates a gateway for the rules server at baseURL.
func New(baseURL string, opts ...Option) (*Gateway, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("server url is required")
	}
	g := &Gateway{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		tracer:     otel.Tracer("scoundrel/transport/rest"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// CreateSession starts a new game and returns its server-issued id.
func (g *Gateway) CreateSession(ctx context.Context) (string, error) {
	ctx, span := g.tracer.Start(ctx, "scoundrel.CreateSession", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	body, err := g.do(ctx, http.MethodPost, newGamePath)
	if err != nil {
		return "", spanError(span, err)
	}

	var payload struct {
		GameID string `json:"game_id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", spanError(span, apperrors.Wrap(apperrors.CodeSnapshotMalformed, "decode create response", err))
	}
	if strings.TrimSpace(payload.GameID) == "" {
		return "", spanError(span, apperrors.New(apperrors.CodeSnapshotMalformed, "create response missing game_id"))
	}

	span.SetAttributes(attribute.String("scoundrel.game_id", payload.GameID))
	return payload.GameID, nil
}

// FetchSnapshot returns the complete state tree for the session. Malformed
// payloads are decode errors; no partial state is ever returned.
func (g *Gateway) FetchSnapshot(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	ctx, span := g.tracer.Start(ctx, "scoundrel.FetchSnapshot", trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("scoundrel.game_id", sessionID)))
	defer span.End()

	body, err := g.get(ctx, fmt.Sprintf(gameStatePath, sessionID))
	if err != nil {
		return domain.Snapshot{}, spanError(span, err)
	}

	snapshot, err := decodeSnapshot(body)
	if err != nil {
		return domain.Snapshot{}, spanError(span, err)
	}

	span.SetAttributes(attribute.String("scoundrel.phase", snapshot.Phase.String()))
	return snapshot, nil
}

// PlayCard resolves the card at index. When useWeapon is false the
// play-without-weapon endpoint is used so the server fights barehanded even
// with a weapon equipped.
func (g *Gateway) PlayCard(ctx context.Context, sessionID string, index int, useWeapon bool) error {
	ctx, span := g.tracer.Start(ctx, "scoundrel.PlayCard", trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("scoundrel.game_id", sessionID),
			attribute.Int("scoundrel.card_index", index),
			attribute.Bool("scoundrel.use_weapon", useWeapon),
		))
	defer span.End()

	path := fmt.Sprintf(playCardPath, sessionID, index)
	if !useWeapon {
		path = fmt.Sprintf(playCardWithoutWeaponPath, sessionID, index)
	}

	// The server answers with a state body; the client ignores it and
	// re-fetches instead of trusting a mutating response.
	if _, err := g.do(ctx, http.MethodPost, path); err != nil {
		return spanError(span, err)
	}
	return nil
}

// SkipRoom discards the current room and deals a new one.
func (g *Gateway) SkipRoom(ctx context.Context, sessionID string) error {
	ctx, span := g.tracer.Start(ctx, "scoundrel.SkipRoom", trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("scoundrel.game_id", sessionID)))
	defer span.End()

	if _, err := g.do(ctx, http.MethodPost, fmt.Sprintf(skipRoomPath, sessionID)); err != nil {
		return spanError(span, err)
	}
	return nil
}

func (g *Gateway) get(ctx context.Context, path string) ([]byte, error) {
	return g.request(ctx, http.MethodGet, path)
}

func (g *Gateway) do(ctx context.Context, method, path string) ([]byte, error) {
	return g.request(ctx, method, path)
}

func (g *Gateway) request(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeGatewayUnavailable, "rules server unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeGatewayUnavailable, "read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.WithMetadata(apperrors.CodeGatewayRejected,
			fmt.Sprintf("rules server rejected %s %s", method, path),
			map[string]string{
				"status": fmt.Sprintf("%d", resp.StatusCode),
				"reason": strings.TrimSpace(string(body)),
			})
	}
	return body, nil
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, string(apperrors.CodeOf(err)))
	return err
}
