package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/stadiumstories/cricket-gateway/internal/api/respond"
	"github.com/stadiumstories/cricket-gateway/internal/provider/cricapi"
)

// offsetParam parses the optional offset query parameter, defaulting to 0.
func offsetParam(r *http.Request) int {
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return 0
}

// writeUpstreamFailure maps an adapter error onto the route's failure
// policy: provider non-success keeps the original "CricAPI error" message,
// anything else gets the route-specific network message.
func writeUpstreamFailure(w http.ResponseWriter, err error, networkMessage string) {
	if cricapi.IsUpstreamError(err) {
		respond.WriteError(w, http.StatusInternalServerError, "UPSTREAM_ERROR", "CricAPI error")
		return
	}
	respond.WriteError(w, http.StatusInternalServerError, "NETWORK_ERROR", networkMessage)
}

// GetPlayers returns the players list, merged with the featured players when
// no search term is given.
// @Summary List players
// @Tags cricket
// @Produce json
// @Param offset query int false "Page offset"
// @Param search query string false "Search term (bypasses featured merge)"
// @Success 200 {array} cricapi.Player
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/players [get]
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	data, err := h.svc.PlayersPage(r.Context(), offsetParam(r), search)
	if err != nil {
		h.logger.Error("players fetch failed", "error", err)
		writeUpstreamFailure(w, err, "Failed to fetch player data")
		return
	}
	respond.WriteRaw(w, http.StatusOK, data)
}

// GetMatches returns a page of matches, provider-shaped.
// @Summary List matches
// @Tags cricket
// @Produce json
// @Param offset query int false "Page offset"
// @Success 200 {array} cricapi.Match
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/matches [get]
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	data, err := h.cric.Matches(r.Context(), offsetParam(r))
	if err != nil {
		h.logger.Error("matches fetch failed", "error", err)
		writeUpstreamFailure(w, err, "Failed to fetch matches")
		return
	}
	respond.WriteRaw(w, http.StatusOK, data)
}

// GetCurrentMatches returns matches in progress, provider-shaped.
// @Summary List current matches
// @Tags cricket
// @Produce json
// @Success 200 {array} cricapi.Match
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/current-matches [get]
func (h *Handler) GetCurrentMatches(w http.ResponseWriter, r *http.Request) {
	data, err := h.cric.CurrentMatches(r.Context())
	if err != nil {
		h.logger.Error("current matches fetch failed", "error", err)
		writeUpstreamFailure(w, err, "Failed to fetch current matches")
		return
	}
	respond.WriteRaw(w, http.StatusOK, data)
}

// GetLiveScores returns the first 8 entries of the score ticker.
// @Summary Live score ticker
// @Tags cricket
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/live-scores [get]
func (h *Handler) GetLiveScores(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.TickerScores(r.Context())
	if err != nil {
		h.logger.Error("live scores fetch failed", "error", err)
		writeUpstreamFailure(w, err, "Failed to fetch live scores")
		return
	}
	respond.WriteRaw(w, http.StatusOK, data)
}

// GetSeries returns a page of series, provider-shaped.
// @Summary List series
// @Tags cricket
// @Produce json
// @Param offset query int false "Page offset"
// @Success 200 {array} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/series [get]
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	data, err := h.cric.Series(r.Context(), offsetParam(r))
	if err != nil {
		h.logger.Error("series fetch failed", "error", err)
		writeUpstreamFailure(w, err, "Failed to fetch series data")
		return
	}
	respond.WriteRaw(w, http.StatusOK, data)
}

// GetCountries returns the country list used for flag lookups.
// @Summary List countries
// @Tags cricket
// @Produce json
// @Success 200 {array} cricapi.Country
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/countries [get]
func (h *Handler) GetCountries(w http.ResponseWriter, r *http.Request) {
	data, err := h.cric.Countries(r.Context())
	if err != nil {
		h.logger.Error("countries fetch failed", "error", err)
		writeUpstreamFailure(w, err, "Failed to fetch countries")
		return
	}
	respond.WriteRaw(w, http.StatusOK, data)
}

// GetWorldCupMatches returns the T20 World Cup match list. Never fails:
// degraded results are served instead of errors.
// @Summary T20 World Cup matches
// @Tags cricket
// @Produce json
// @Success 200 {array} cricapi.Match
// @Router /api/t20-world-cup-matches [get]
func (h *Handler) GetWorldCupMatches(w http.ResponseWriter, r *http.Request) {
	respond.WriteRaw(w, http.StatusOK, h.svc.WorldCupMatches(r.Context()))
}

// GetMatchCenter returns the composite match-view payload. Each section
// degrades independently; the endpoint never fails.
// @Summary Composite match view
// @Tags cricket
// @Produce json
// @Success 200 {object} cricket.MatchCenter
// @Router /api/match-center [get]
func (h *Handler) GetMatchCenter(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, h.svc.FetchMatchCenter(r.Context()))
}

// --------------------------------------------------------------------------
// Detail endpoints — id required before any outbound call
// --------------------------------------------------------------------------

type detailFetch func(r *http.Request, id string) (json.RawMessage, error)

func (h *Handler) detail(w http.ResponseWriter, r *http.Request, missingMessage string, fetch detailFetch) {
	id := r.URL.Query().Get("id")
	if id == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_ID", missingMessage)
		return
	}

	data, err := fetch(r, id)
	if err != nil {
		h.logger.Error("detail fetch failed", "id", id, "error", err)
		writeUpstreamFailure(w, err, "Failed")
		return
	}
	respond.WriteRaw(w, http.StatusOK, data)
}

// GetPlayerInfo returns full details for one player.
// @Summary Player detail
// @Tags cricket
// @Produce json
// @Param id query string true "Player id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/player-info [get]
func (h *Handler) GetPlayerInfo(w http.ResponseWriter, r *http.Request) {
	h.detail(w, r, "Player ID required", func(r *http.Request, id string) (json.RawMessage, error) {
		return h.cric.PlayerInfo(r.Context(), id)
	})
}

// GetMatchInfo returns full details for one match.
// @Summary Match detail
// @Tags cricket
// @Produce json
// @Param id query string true "Match id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/match-info [get]
func (h *Handler) GetMatchInfo(w http.ResponseWriter, r *http.Request) {
	h.detail(w, r, "Match ID required", func(r *http.Request, id string) (json.RawMessage, error) {
		return h.cric.MatchInfo(r.Context(), id)
	})
}

// GetSeriesInfo returns full details for one series.
// @Summary Series detail
// @Tags cricket
// @Produce json
// @Param id query string true "Series id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/series-info [get]
func (h *Handler) GetSeriesInfo(w http.ResponseWriter, r *http.Request) {
	h.detail(w, r, "Series ID required", func(r *http.Request, id string) (json.RawMessage, error) {
		return h.cric.SeriesInfo(r.Context(), id)
	})
}
