// Package leagueapi exposes the league service over HTTP.
package leagueapi

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	leagueservice "github.com/Black-And-White-Club/scorebook/app/modules/league/application"
	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	leaguehandlers "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/handlers"
	leaguedb "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/scorebook/pkg/httpapi"
	"github.com/Black-And-White-Club/scorebook/pkg/observability/attr"
	"github.com/Black-And-White-Club/scorebook/pkg/results"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// API serves the league routes.
type API struct {
	service leagueservice.Service
	logger  *slog.Logger
}

func NewAPI(service leagueservice.Service, logger *slog.Logger) *API {
	return &API{service: service, logger: logger}
}

// Register mounts the league routes. Mutating routes are wrapped with authorize.
func (a *API) Register(r chi.Router, authorize func(http.Handler) http.Handler) {
	r.Get("/leagues/{leagueID}", a.getLeague)
	r.Get("/leagues/{leagueID}/roster", a.listRoster)
	r.Get("/leagues/{leagueID}/standings", a.getStandings)
	r.Get("/leagues/{leagueID}/standings.png", a.getStandingsChart)
	r.Get("/leagues/{leagueID}/standings.xlsx", a.exportStandings)
	r.Get("/seasons/{seasonID}", a.getSeason)
	r.Get("/seasons/{seasonID}/schedule", a.getSchedule)
	r.Get("/seasons/{seasonID}/makeups", a.getMakeups)

	r.Group(func(r chi.Router) {
		r.Use(authorize)
		r.Post("/leagues", a.createLeague)
		r.Post("/leagues/{leagueID}/players", a.registerPlayer)
		r.Post("/leagues/{leagueID}/seasons", a.startSeason)
		r.Post("/seasons/{seasonID}/advance", a.advanceWeek)
		r.Post("/seasons/{seasonID}/end", a.endSeason)
		r.Put("/seasons/{seasonID}/weeks/{week}/attendance", a.recordAttendance)
		r.Post("/matches", a.recordMatch)
		r.Post("/matches/{matchID}/complete", a.completeMatch)
		r.Delete("/matches/{matchID}", a.deleteMatch)
	})
}

func (a *API) createLeague(w http.ResponseWriter, r *http.Request) {
	var req createLeagueRequest
	if err := httpapi.DecodeJSON(w, r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	format := leaguedomain.Format(req.Format)
	if format == "" {
		format = leaguedomain.FormatRoundRobin
	}
	league, err := a.service.CreateLeague(r.Context(), req.Name, leaguedomain.GameType(req.GameType), format)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, toLeagueResponse(league))
}

func (a *API) getLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return
	}
	league, err := a.service.GetLeague(r.Context(), leagueID)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toLeagueResponse(league))
}

func (a *API) registerPlayer(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := a.scopedLeague(w, r)
	if !ok {
		return
	}
	var req registerPlayerRequest
	if err := httpapi.DecodeJSON(w, r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	player, err := a.service.RegisterPlayer(r.Context(), leagueID, req.GivenName, req.Surname)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, toPlayerResponse(player))
}

func (a *API) listRoster(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return
	}
	roster, err := a.service.ListRoster(r.Context(), leagueID)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	out := make([]playerResponse, 0, len(roster))
	for _, p := range roster {
		out = append(out, toPlayerResponse(p))
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

func (a *API) startSeason(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := a.scopedLeague(w, r)
	if !ok {
		return
	}
	var req startSeasonRequest
	if err := httpapi.DecodeJSON(w, r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	season, err := a.service.StartSeason(r.Context(), leagueID, req.Name, req.StartDate, req.WeeksDuration)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, toSeasonResponse(season))
}

func (a *API) getSeason(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := pathUUID(w, r, "seasonID")
	if !ok {
		return
	}
	season, err := a.service.GetSeason(r.Context(), seasonID)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toSeasonResponse(season))
}

func (a *API) advanceWeek(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := a.scopedSeason(w, r)
	if !ok {
		return
	}
	season, err := a.service.AdvanceWeek(r.Context(), seasonID)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toSeasonResponse(season))
}

func (a *API) endSeason(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := a.scopedSeason(w, r)
	if !ok {
		return
	}
	season, err := a.service.EndSeason(r.Context(), seasonID)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toSeasonResponse(season))
}

func (a *API) recordAttendance(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := a.scopedSeason(w, r)
	if !ok {
		return
	}
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "week must be a number")
		return
	}
	var req attendanceRequest
	if err := httpapi.DecodeJSON(w, r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.service.RecordAttendance(r.Context(), seasonID, week, req.PlayerIDs); err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) recordMatch(w http.ResponseWriter, r *http.Request) {
	var req recordMatchRequest
	if err := httpapi.DecodeJSON(w, r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !allowLeague(w, r, req.LeagueID) {
		return
	}
	cmd := leagueservice.RecordMatchCommand{
		LeagueID:  req.LeagueID,
		SeasonID:  req.SeasonID,
		Week:      req.Week,
		IsMakeup:  req.IsMakeup,
		Completed: req.Completed,
	}
	for _, p := range req.Participants {
		cmd.PlayerIDs = append(cmd.PlayerIDs, p.PlayerID)
		if p.Winner {
			cmd.WinnerIDs = append(cmd.WinnerIDs, p.PlayerID)
		}
	}
	match, err := a.service.RecordMatch(r.Context(), cmd)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, toMatchResponse(match))
}

func (a *API) completeMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := a.scopedMatch(w, r)
	if !ok {
		return
	}
	var req completeMatchRequest
	if err := httpapi.DecodeJSON(w, r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	match, err := a.service.CompleteMatch(r.Context(), matchID, req.WinnerIDs)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toMatchResponse(match))
}

func (a *API) deleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := a.scopedMatch(w, r)
	if !ok {
		return
	}
	if err := a.service.DeleteMatch(r.Context(), matchID); err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) getStandings(w http.ResponseWriter, r *http.Request) {
	leagueID, seasonID, ok := standingsParams(w, r)
	if !ok {
		return
	}
	standings, err := a.service.GetStandings(r.Context(), leagueID, seasonID)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, leaguehandlers.StandingEntries(standings))
}

func (a *API) getStandingsChart(w http.ResponseWriter, r *http.Request) {
	leagueID, seasonID, ok := standingsParams(w, r)
	if !ok {
		return
	}
	png, err := a.service.StandingsChart(r.Context(), leagueID, seasonID)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func (a *API) exportStandings(w http.ResponseWriter, r *http.Request) {
	leagueID, seasonID, ok := standingsParams(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := a.service.ExportStandings(r.Context(), leagueID, seasonID, &buf); err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="standings.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

func (a *API) getSchedule(w http.ResponseWriter, r *http.Request) {
	seasonID, attendees, ok := scheduleParams(w, r)
	if !ok {
		return
	}
	pairings, err := a.service.GetScheduledMatches(r.Context(), seasonID, attendees)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toPairingResponses(pairings))
}

func (a *API) getMakeups(w http.ResponseWriter, r *http.Request) {
	seasonID, attendees, ok := scheduleParams(w, r)
	if !ok {
		return
	}
	pairings, err := a.service.GetMakeupMatches(r.Context(), seasonID, attendees)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toPairingResponses(pairings))
}

// scopedLeague parses {leagueID} and checks it against the bearer token's league.
func (a *API) scopedLeague(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return uuid.Nil, false
	}
	if !allowLeague(w, r, leagueID) {
		return uuid.Nil, false
	}
	return leagueID, true
}

// scopedSeason parses {seasonID}. League-scoped tokens are checked against the league that
// owns the season.
func (a *API) scopedSeason(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	seasonID, ok := pathUUID(w, r, "seasonID")
	if !ok {
		return uuid.Nil, false
	}
	if !httpapi.LeagueScoped(r.Context()) {
		return seasonID, true
	}
	season, err := a.service.GetSeason(r.Context(), seasonID)
	if err != nil {
		a.writeServiceError(w, r, err)
		return uuid.Nil, false
	}
	return seasonID, allowLeague(w, r, season.LeagueID)
}

// scopedMatch is scopedSeason for {matchID}.
func (a *API) scopedMatch(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	matchID, ok := pathUUID(w, r, "matchID")
	if !ok {
		return uuid.Nil, false
	}
	if !httpapi.LeagueScoped(r.Context()) {
		return matchID, true
	}
	match, err := a.service.GetMatch(r.Context(), matchID)
	if err != nil {
		a.writeServiceError(w, r, err)
		return uuid.Nil, false
	}
	return matchID, allowLeague(w, r, match.LeagueID)
}

func allowLeague(w http.ResponseWriter, r *http.Request, leagueID uuid.UUID) bool {
	if !httpapi.LeagueAllowed(r.Context(), leagueID.String()) {
		httpapi.WriteError(w, http.StatusForbidden, "token is not valid for this league")
		return false
	}
	return true
}

func (a *API) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		a.logger.ErrorContext(r.Context(), "League request failed",
			slog.String("path", r.URL.Path),
			attr.Error(err),
		)
		httpapi.WriteError(w, status, "internal error")
		return
	}
	httpapi.WriteError(w, status, err.Error())
}

// StatusFor maps service errors onto HTTP status codes. Errors that are not domain
// failures are internal.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, leaguedb.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, leagueservice.ErrActiveSeasonExists),
		errors.Is(err, leagueservice.ErrMatchAlreadyCompleted),
		errors.Is(err, leaguedomain.ErrSeasonCompleted):
		return http.StatusConflict
	case results.IsFailure(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, name+" must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func standingsParams(w http.ResponseWriter, r *http.Request) (uuid.UUID, *uuid.UUID, bool) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return uuid.Nil, nil, false
	}
	raw := r.URL.Query().Get("season")
	if raw == "" {
		return leagueID, nil, true
	}
	seasonID, err := uuid.Parse(raw)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "season must be a UUID")
		return uuid.Nil, nil, false
	}
	return leagueID, &seasonID, true
}

// scheduleParams reads repeated ?attendee= parameters. Without any the service falls back
// to the attendance recorded for the current week.
func scheduleParams(w http.ResponseWriter, r *http.Request) (uuid.UUID, []uuid.UUID, bool) {
	seasonID, ok := pathUUID(w, r, "seasonID")
	if !ok {
		return uuid.Nil, nil, false
	}
	var attendees []uuid.UUID
	for _, raw := range r.URL.Query()["attendee"] {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpapi.WriteError(w, http.StatusBadRequest, "attendee must be a UUID")
			return uuid.Nil, nil, false
		}
		attendees = append(attendees, id)
	}
	return seasonID, attendees, true
}
