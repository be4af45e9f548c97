package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/seguido/seguido/pkg/logger"
	"github.com/seguido/seguido/pkg/storage"
	"github.com/seguido/seguido/pkg/tracker"
	"go.uber.org/zap"
)

type AddShowRequest struct {
	TmdbID int64 `json:"tmdbId" validate:"required,gt=0"`
}

type ToggleEpisodeRequest struct {
	Season  int `json:"season" validate:"required,gt=0"`
	Episode int `json:"episode" validate:"required,gt=0"`
}

type SetSeasonRequest struct {
	Season   int   `json:"season" validate:"required,gt=0"`
	Episodes int   `json:"episodes" validate:"gte=0"`
	Watched  *bool `json:"watched" validate:"required"`
}

type ReviewRequest struct {
	Rating int32  `json:"rating" validate:"required,gte=1,lte=10"`
	Notes  string `json:"notes"`
}

func showID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid show id")
	}
	return id, nil
}

// SearchTV searches the metadata catalog for shows
func (s Server) SearchTV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		query := r.URL.Query().Get("query")

		result, err := s.tracker.SearchTV(r.Context(), query)
		if err != nil {
			log.Error("failed to search shows", zap.Error(err))
			writeErrorResponse(w, http.StatusBadGateway, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: result})
	}
}

// ListShows returns the library grouped by lifecycle state
func (s Server) ListShows() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		grouped, err := s.tracker.ListShowsGrouped(r.Context(), s.user)
		if err != nil {
			log.Error("failed to list shows", zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: grouped})
	}
}

// AddShow starts tracking a show
func (s Server) AddShow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		var request AddShowRequest
		if err := s.decode(r, &request); err != nil {
			log.Debug("invalid add show request", zap.Error(err))
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		show, err := s.tracker.AddShow(r.Context(), s.user, request.TmdbID)
		if err != nil {
			if errors.Is(err, storage.ErrShowExists) {
				writeErrorResponse(w, http.StatusConflict, err)
				return
			}
			log.Error("failed to add show", zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		writeResponse(w, http.StatusCreated, GenericResponse{Response: show})
	}
}

// GetShow returns one tracked show, ledger included
func (s Server) GetShow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := showID(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		show, err := s.tracker.GetShow(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeErrorResponse(w, http.StatusNotFound, err)
				return
			}
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: show})
	}
}

// RemoveShow stops tracking a show
func (s Server) RemoveShow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := showID(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		if err := s.tracker.RemoveShow(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeErrorResponse(w, http.StatusNotFound, err)
				return
			}
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: "removed"})
	}
}

// withSession loads a show session, runs the mutation, and writes the result
func (s Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*tracker.Session) (any, int, error)) {
	log := logger.FromCtx(r.Context())

	id, err := showID(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err)
		return
	}

	session, err := s.tracker.OpenShow(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, err)
			return
		}
		log.Error("failed to open show", zap.Error(err))
		writeErrorResponse(w, http.StatusInternalServerError, err)
		return
	}

	body, status, err := fn(session)
	if err != nil {
		writeErrorResponse(w, status, err)
		return
	}

	writeResponse(w, http.StatusOK, GenericResponse{Response: body})
}

// ToggleEpisode flips one episode between watched and unwatched
func (s Server) ToggleEpisode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request ToggleEpisodeRequest
		if err := s.decode(r, &request); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		s.withSession(w, r, func(session *tracker.Session) (any, int, error) {
			update, err := session.ToggleEpisode(r.Context(), request.Season, request.Episode)
			if err != nil {
				return nil, http.StatusBadRequest, err
			}
			return update, http.StatusOK, nil
		})
	}
}

// SetSeason marks a whole season watched or unwatched
func (s Server) SetSeason() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request SetSeasonRequest
		if err := s.decode(r, &request); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		s.withSession(w, r, func(session *tracker.Session) (any, int, error) {
			update, err := session.SetSeasonWatched(r.Context(), request.Season, request.Episodes, *request.Watched)
			if err != nil {
				return nil, http.StatusBadRequest, err
			}
			return update, http.StatusOK, nil
		})
	}
}

// ReviewShow stores the rating and notes answering a review prompt
func (s Server) ReviewShow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request ReviewRequest
		if err := s.decode(r, &request); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		s.withSession(w, r, func(session *tracker.Session) (any, int, error) {
			err := session.Rate(r.Context(), request.Rating, request.Notes)
			if err != nil {
				if errors.Is(err, tracker.ErrNotFinished) {
					return nil, http.StatusConflict, err
				}
				return nil, http.StatusBadRequest, err
			}
			return session.Show(), http.StatusOK, nil
		})
	}
}

// FinishShow forces the remote status to ended and locks it
func (s Server) FinishShow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.withSession(w, r, func(session *tracker.Session) (any, int, error) {
			update, err := session.ForceFinish(r.Context())
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return update, http.StatusOK, nil
		})
	}
}

// RevertShow clears the manual override lock
func (s Server) RevertShow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.withSession(w, r, func(session *tracker.Session) (any, int, error) {
			update, err := session.RevertOverride(r.Context())
			if err != nil {
				return nil, http.StatusInternalServerError, err
			}
			return update, http.StatusOK, nil
		})
	}
}
