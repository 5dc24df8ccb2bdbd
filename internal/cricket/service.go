// Package cricket holds the normalization layer between the CricAPI adapter
// and the gateway's stable JSON contract: featured-player merging, the
// world-cup fallback chain, list caps, and the flag lookup map.
package cricket

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/stadiumstories/cricket-gateway/internal/metrics"
	"github.com/stadiumstories/cricket-gateway/internal/provider/cricapi"
)

const (
	liveScoreLimit     = 8
	worldCupMatchLimit = 10

	// Static series id for the T20 World Cup lookup. Known to go stale
	// between tournaments, which is why the fallback chain exists.
	worldCupSeriesID = "f3e5c7dd-332c-4893-9067-aa2bffe6d2b85"
)

// DataSource is the slice of the CricAPI client the service consumes.
type DataSource interface {
	Players(ctx context.Context, offset int, search string) (json.RawMessage, error)
	Matches(ctx context.Context, offset int) (json.RawMessage, error)
	CurrentMatches(ctx context.Context) (json.RawMessage, error)
	LiveScores(ctx context.Context) (json.RawMessage, error)
	SeriesMatches(ctx context.Context, id string) (json.RawMessage, error)
	Countries(ctx context.Context) (json.RawMessage, error)
}

// Service normalizes provider payloads for the gateway routes.
type Service struct {
	api    DataSource
	logger *slog.Logger
}

// NewService creates a normalization service over a CricAPI data source.
func NewService(api DataSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: api, logger: logger}
}

// --------------------------------------------------------------------------
// Players — featured merge
// --------------------------------------------------------------------------

// PlayersPage returns the players list for the frontend. With a search term
// the provider page is returned verbatim; without one the featured list is
// prepended and provider entries that duplicate a featured name
// (case-insensitively) are dropped.
func (s *Service) PlayersPage(ctx context.Context, offset int, search string) (json.RawMessage, error) {
	raw, err := s.api.Players(ctx, offset, search)
	if err != nil {
		return nil, err
	}
	if search != "" {
		return raw, nil
	}

	var page []cricapi.Player
	if err := json.Unmarshal(raw, &page); err != nil {
		// Unexpected page shape: serve the featured list alone rather
		// than failing the whole route.
		s.logger.Warn("players page decode failed", "error", err)
		page = nil
	}

	merged := MergeFeatured(FeaturedPlayers, page)
	return json.Marshal(merged)
}

// MergeFeatured prepends featured to page, dropping page entries whose name
// matches a featured entry case-insensitively.
func MergeFeatured(featured, page []cricapi.Player) []cricapi.Player {
	names := make(map[string]struct{}, len(featured))
	for _, f := range featured {
		names[strings.ToLower(f.Name)] = struct{}{}
	}

	out := make([]cricapi.Player, 0, len(featured)+len(page))
	out = append(out, featured...)
	for _, p := range page {
		if _, dup := names[strings.ToLower(p.Name)]; dup {
			continue
		}
		out = append(out, p)
	}
	return out
}

// --------------------------------------------------------------------------
// Live scores
// --------------------------------------------------------------------------

// TickerScores returns the first 8 entries of the live-score feed.
func (s *Service) TickerScores(ctx context.Context) (json.RawMessage, error) {
	raw, err := s.api.LiveScores(ctx)
	if err != nil {
		return nil, err
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return raw, nil
	}
	if len(entries) > liveScoreLimit {
		entries = entries[:liveScoreLimit]
	}
	return json.Marshal(entries)
}

// --------------------------------------------------------------------------
// World cup — degrading fallback chain
// --------------------------------------------------------------------------

// WorldCupMatches returns the T20 World Cup match list. It never returns an
// error: a failed series lookup falls back to the general matches list
// filtered to t20/odi and capped at 10, and a total failure yields an empty
// list. Swallowed failures are logged and counted.
func (s *Service) WorldCupMatches(ctx context.Context) json.RawMessage {
	if raw, err := s.api.SeriesMatches(ctx, worldCupSeriesID); err == nil {
		var list cricapi.SeriesMatchList
		if err := json.Unmarshal(raw, &list); err == nil && len(list.MatchList) > 0 {
			if out, err := json.Marshal(list.MatchList); err == nil {
				return out
			}
		}
		s.logger.Warn("world cup series lookup returned no match list, falling back")
	} else {
		s.logger.Warn("world cup series lookup failed, falling back", "error", err)
	}
	metrics.WorldCupFallbacksTotal.WithLabelValues("series_lookup").Inc()

	raw, err := s.api.Matches(ctx, 0)
	if err != nil {
		s.logger.Warn("world cup fallback matches fetch failed, serving empty list", "error", err)
		metrics.WorldCupFallbacksTotal.WithLabelValues("total").Inc()
		return json.RawMessage("[]")
	}

	filtered := filterShortFormat(raw, worldCupMatchLimit)
	out, err := json.Marshal(filtered)
	if err != nil {
		return json.RawMessage("[]")
	}
	return out
}

// filterShortFormat keeps the raw match objects whose matchType is t20 or
// odi, up to limit. Elements stay verbatim; only matchType is probed.
func filterShortFormat(raw json.RawMessage, limit int) []json.RawMessage {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return []json.RawMessage{}
	}

	out := make([]json.RawMessage, 0, limit)
	for _, e := range entries {
		var probe struct {
			MatchType string `json:"matchType"`
		}
		if err := json.Unmarshal(e, &probe); err != nil {
			continue
		}
		if probe.MatchType == "t20" || probe.MatchType == "odi" {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// --------------------------------------------------------------------------
// Countries — flag lookup
// --------------------------------------------------------------------------

// CountryFlags flattens the provider country list into a name→icon map.
// Built per request; never cached.
func (s *Service) CountryFlags(ctx context.Context) (map[string]string, error) {
	raw, err := s.api.Countries(ctx)
	if err != nil {
		return nil, err
	}

	var countries []cricapi.Country
	if err := json.Unmarshal(raw, &countries); err != nil {
		return nil, err
	}

	flags := make(map[string]string, len(countries))
	for _, c := range countries {
		if c.Name == "" {
			continue
		}
		flags[c.Name] = c.GenericFlag
	}
	return flags, nil
}

// --------------------------------------------------------------------------
// Match center — isolated concurrent aggregate
// --------------------------------------------------------------------------

// MatchCenter is the composite payload behind the frontend match view.
type MatchCenter struct {
	Matches        json.RawMessage   `json:"matches"`
	CurrentMatches json.RawMessage   `json:"currentMatches"`
	WorldCup       json.RawMessage   `json:"worldCup"`
	Flags          map[string]string `json:"flags"`
}

// FetchMatchCenter issues the four match-view calls concurrently. Each
// section degrades independently: a failed call yields an empty section and
// a warning, never aborting the aggregate.
func (s *Service) FetchMatchCenter(ctx context.Context) *MatchCenter {
	type section struct {
		name string
		data json.RawMessage
		err  error
	}

	ch := make(chan section, 3)

	go func() {
		d, e := s.api.Matches(ctx, 0)
		ch <- section{"matches", d, e}
	}()
	go func() {
		d, e := s.api.CurrentMatches(ctx)
		ch <- section{"currentMatches", d, e}
	}()
	flagsCh := make(chan map[string]string, 1)
	go func() {
		f, e := s.CountryFlags(ctx)
		if e != nil {
			s.logger.Warn("match center section failed", "section", "flags", "error", e)
			f = map[string]string{}
		}
		flagsCh <- f
	}()

	// WorldCupMatches already degrades internally.
	mc := &MatchCenter{WorldCup: s.WorldCupMatches(ctx)}

	for i := 0; i < 2; i++ {
		res := <-ch
		if res.err != nil {
			s.logger.Warn("match center section failed", "section", res.name, "error", res.err)
			res.data = json.RawMessage("[]")
		}
		switch res.name {
		case "matches":
			mc.Matches = res.data
		case "currentMatches":
			mc.CurrentMatches = res.data
		}
	}
	mc.Flags = <-flagsCh

	return mc
}
