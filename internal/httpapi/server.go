package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/mux"
	"github.com/millermeares/FantasyFootballSuperUser/internal/platform/logging"
	"github.com/millermeares/FantasyFootballSuperUser/internal/service"
)

// Server exposes the reports as JSON for web renderers.
type Server struct {
	router  *mux.Router
	service *service.FantasyService
	logger  *logging.Logger
}

func NewServer(fantasyService *service.FantasyService, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Server{
		router:  mux.NewRouter(),
		service: fantasyService,
		logger:  logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/gameday", s.handleGameday).Methods(http.MethodGet)
	api.HandleFunc("/exposure", s.handleExposure).Methods(http.MethodGet)
	api.HandleFunc("/teams", s.handleTeams).Methods(http.MethodGet)
	api.HandleFunc("/teams/{leagueID}/toggle", s.handleToggle).Methods(http.MethodPost)
	api.HandleFunc("/players/{query}/leagues", s.handlePlayerLeagues).Methods(http.MethodGet)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGameday(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.GetGamedayData(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"data":   data,
		"tables": data.Tables(),
	})
}

func (s *Server) handleExposure(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.GetExposureData(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"data":  data,
		"table": data.Table(),
	})
}

func (s *Server) handleTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.service.ListTeams(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"teams": teams})
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	team, err := s.service.ToggleTeam(r.Context(), mux.Vars(r)["leagueID"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, team)
}

func (s *Server) handlePlayerLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := s.service.GetPlayerLeagues(r.Context(), mux.Vars(r)["query"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, leagues)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": verr.Problems})
	case errors.Is(err, service.ErrNoSnapshot):
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": service.ErrNoSnapshot.Error()})
	case errors.Is(err, service.ErrTeamNotFound), errors.Is(err, service.ErrPlayerNotFound):
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		s.logger.Error("Request failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Error encoding response", "error", err)
	}
}
