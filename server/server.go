package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/seguido/seguido/pkg/logger"
	"github.com/seguido/seguido/pkg/tracker"
	"go.uber.org/zap"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type GenericResponse struct {
	Error    *string `json:"error,omitempty"`
	Response any     `json:"response"`
}

// Server houses the dependencies the http api needs, the tracker engine and
// loggers mainly.
type Server struct {
	baseLogger *zap.SugaredLogger
	tracker    *tracker.Tracker
	validate   *validator.Validate
	user       string
}

// New creates a new tracker server. user is the library owner every request
// operates on.
func New(logger *zap.SugaredLogger, t *tracker.Tracker, user string) Server {
	return Server{
		baseLogger: logger,
		tracker:    t,
		validate:   validator.New(),
		user:       user,
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	msg := err.Error()
	return writeResponse(w, status, GenericResponse{
		Error: &msg,
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write(b)
	return nil
}

// decode reads and validates a json request body
func (s Server) decode(r *http.Request, out any) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	return s.validate.Struct(out)
}

// Serve starts the http server and is a blocking call. On shutdown pending
// ledger writes are drained before the process exits.
func (s Server) Serve(port int) error {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/search", s.SearchTV()).Methods(http.MethodGet)

	v1.HandleFunc("/shows", s.ListShows()).Methods(http.MethodGet)
	v1.HandleFunc("/shows", s.AddShow()).Methods(http.MethodPost)
	v1.HandleFunc("/shows/{id}", s.GetShow()).Methods(http.MethodGet)
	v1.HandleFunc("/shows/{id}", s.RemoveShow()).Methods(http.MethodDelete)

	v1.HandleFunc("/shows/{id}/episode", s.ToggleEpisode()).Methods(http.MethodPut)
	v1.HandleFunc("/shows/{id}/season", s.SetSeason()).Methods(http.MethodPut)
	v1.HandleFunc("/shows/{id}/review", s.ReviewShow()).Methods(http.MethodPost)
	v1.HandleFunc("/shows/{id}/finish", s.FinishShow()).Methods(http.MethodPost)
	v1.HandleFunc("/shows/{id}/revert", s.RevertShow()).Methods(http.MethodPost)

	v1.HandleFunc("/sweep", s.StartSweep()).Methods(http.MethodPost)
	v1.HandleFunc("/sync", s.SyncStatus()).Methods(http.MethodGet)
	v1.HandleFunc("/stats", s.Stats()).Methods(http.MethodGet)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
	)(rtr)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: corsHandler,
	}

	go func() {
		s.baseLogger.Info("serving...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil {
			s.baseLogger.Error(err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	return s.tracker.Close(ctx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}

// StartSweep kicks off a reconciliation sweep in the background. A sweep
// already in flight yields a conflict.
func (s Server) StartSweep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		ctx := logger.WithCtx(context.Background(), log)

		if err := s.tracker.StartSweep(ctx, s.user); err != nil {
			writeErrorResponse(w, http.StatusConflict, err)
			return
		}

		writeResponse(w, http.StatusAccepted, GenericResponse{Response: "sweep started"})
	}
}

// SyncStatus reports how many ledger writes are waiting in the queue
func (s Server) SyncStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, GenericResponse{Response: map[string]int64{
			"pending": s.tracker.Queue().Pending(),
		}})
	}
}

// Stats aggregates the user's library
func (s Server) Stats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		stats, err := s.tracker.Stats(r.Context(), s.user)
		if err != nil {
			log.Error("failed to compute stats", zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: stats})
	}
}
