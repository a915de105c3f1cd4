// Package tournamentapi exposes brackets over HTTP.
package tournamentapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	leaguedb "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/repositories"
	tournamentservice "github.com/Black-And-White-Club/scorebook/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/scorebook/app/modules/tournament/domain"
	tournamentdb "github.com/Black-And-White-Club/scorebook/app/modules/tournament/infrastructure/repositories"
	"github.com/Black-And-White-Club/scorebook/pkg/httpapi"
	"github.com/Black-And-White-Club/scorebook/pkg/observability/attr"
	"github.com/Black-And-White-Club/scorebook/pkg/results"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// API serves the tournament routes.
type API struct {
	service tournamentservice.Service
	logger  *slog.Logger
}

func NewAPI(service tournamentservice.Service, logger *slog.Logger) *API {
	return &API{service: service, logger: logger}
}

// Register mounts the tournament routes. Mutating routes are wrapped with authorize.
func (a *API) Register(r chi.Router, authorize func(http.Handler) http.Handler) {
	r.Get("/tournaments/{tournamentID}", a.getBracket)
	r.Get("/leagues/{leagueID}/tournaments", a.listTournaments)

	r.Group(func(r chi.Router) {
		r.Use(authorize)
		r.Post("/seasons/{seasonID}/tournaments", a.createTournament)
		r.Post("/tournament-matches/{matchID}/games", a.recordGame)
	})
}

type createTournamentRequest struct {
	Name     string `json:"name"`
	MaxSeeds int    `json:"max_seeds"`
}

type recordGameRequest struct {
	WinnerID uuid.UUID `json:"winner_id"`
}

type gameRecordedResponse struct {
	Bracket             bracketResponse `json:"bracket"`
	Match               matchResponse   `json:"match"`
	SeriesCompleted     bool            `json:"series_completed"`
	TournamentCompleted bool            `json:"tournament_completed"`
}

func (a *API) createTournament(w http.ResponseWriter, r *http.Request) {
	seasonID, ok := a.scoped(w, r, "seasonID", a.service.SeasonLeague)
	if !ok {
		return
	}
	var req createTournamentRequest
	if err := httpapi.DecodeJSON(w, r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.MaxSeeds < 0 {
		httpapi.WriteError(w, http.StatusBadRequest, "max_seeds must not be negative")
		return
	}
	bracket, err := a.service.CreateTournament(r.Context(), seasonID, req.Name, req.MaxSeeds)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, toBracketResponse(bracket))
}

func (a *API) recordGame(w http.ResponseWriter, r *http.Request) {
	matchID, ok := a.scoped(w, r, "matchID", a.service.MatchLeague)
	if !ok {
		return
	}
	var req recordGameRequest
	if err := httpapi.DecodeJSON(w, r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.WinnerID == uuid.Nil {
		httpapi.WriteError(w, http.StatusBadRequest, "winner_id is required")
		return
	}
	recorded, err := a.service.RecordGame(r.Context(), matchID, req.WinnerID)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, gameRecordedResponse{
		Bracket:             toBracketResponse(recorded.Bracket),
		Match:               toMatchResponse(recorded.Outcome.Match),
		SeriesCompleted:     recorded.Outcome.SeriesCompleted,
		TournamentCompleted: recorded.Outcome.TournamentCompleted,
	})
}

func (a *API) getBracket(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := pathUUID(w, r, "tournamentID")
	if !ok {
		return
	}
	bracket, err := a.service.GetBracket(r.Context(), tournamentID)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, toBracketResponse(bracket))
}

func (a *API) listTournaments(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := pathUUID(w, r, "leagueID")
	if !ok {
		return
	}
	tournaments, err := a.service.ListTournaments(r.Context(), leagueID)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}
	out := make([]tournamentResponse, 0, len(tournaments))
	for _, t := range tournaments {
		out = append(out, toTournamentResponse(t))
	}
	httpapi.WriteJSON(w, http.StatusOK, out)
}

// scoped parses the named path id. League-scoped tokens are checked against the league
// that leagueOf resolves for it.
func (a *API) scoped(w http.ResponseWriter, r *http.Request, name string, leagueOf func(context.Context, uuid.UUID) (uuid.UUID, error)) (uuid.UUID, bool) {
	id, ok := pathUUID(w, r, name)
	if !ok {
		return uuid.Nil, false
	}
	if !httpapi.LeagueScoped(r.Context()) {
		return id, true
	}
	leagueID, err := leagueOf(r.Context(), id)
	if err != nil {
		a.writeServiceError(w, r, err)
		return uuid.Nil, false
	}
	if !httpapi.LeagueAllowed(r.Context(), leagueID.String()) {
		httpapi.WriteError(w, http.StatusForbidden, "token is not valid for this league")
		return uuid.Nil, false
	}
	return id, true
}

func (a *API) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		a.logger.ErrorContext(r.Context(), "Tournament request failed",
			slog.String("path", r.URL.Path),
			attr.Error(err),
		)
		httpapi.WriteError(w, status, "internal error")
		return
	}
	httpapi.WriteError(w, status, err.Error())
}

// StatusFor maps service errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, tournamentdb.ErrNotFound),
		errors.Is(err, leaguedb.ErrNotFound),
		errors.Is(err, tournamentdomain.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, tournamentservice.ErrTournamentExists),
		errors.Is(err, tournamentservice.ErrSeasonNotCompleted),
		errors.Is(err, tournamentdomain.ErrMatchCompleted),
		errors.Is(err, tournamentdomain.ErrTournamentCompleted):
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
