package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	nomineedirectory "trustvote/contexts/nominations/nominee-directory"
	voteledger "trustvote/contexts/nominations/vote-ledger"
	"trustvote/contexts/nominations/vote-ledger/application/queries"
	ledgererrors "trustvote/contexts/nominations/vote-ledger/domain/errors"
	ledgerhttp "trustvote/contexts/nominations/vote-ledger/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "trustvote/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	ledger    voteledger.Module
	directory nomineedirectory.Module
}

func New(
	ledger voteledger.Module,
	directory nomineedirectory.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		ledger:    ledger,
		directory: directory,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/ballots/retract", s.handleRetractVote)
	s.mux.HandleFunc("POST /v1/ballots/{nominee_id}", s.handleCastVote)
	s.mux.HandleFunc("POST /v1/transfers", s.handleTransfer)
	s.mux.HandleFunc("GET /v1/leaderboard", s.handleLeaderboard)
	s.mux.HandleFunc("GET /v1/leaderboard/filters", s.handleLeaderboardFilters)
	s.mux.HandleFunc("GET /v1/nominees/{nominee_id}/transfers", s.handleNomineeTransfers)

	s.mux.HandleFunc("GET /v1/nominees", s.handleSearchNominees)
	s.mux.HandleFunc("POST /v1/nominees", s.handleNominate)
	s.mux.HandleFunc("GET /v1/nominees/featured", s.handleFeaturedNominees)
	s.mux.HandleFunc("GET /v1/nominees/{nominee_id}", s.handleGetNominee)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	voterID := r.Header.Get("X-User-Id")
	if voterID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.ledger.Handler.CastVoteHandler(r.Context(), voterID, ledgerhttp.CastVoteRequest{
		NomineeID: r.PathValue("nominee_id"),
	})
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRetractVote(w http.ResponseWriter, r *http.Request) {
	voterID := r.Header.Get("X-User-Id")
	if voterID == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	resp, err := s.ledger.Handler.RetractVoteHandler(r.Context(), voterID)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	initiatedBy := r.Header.Get("X-User-Id")
	if initiatedBy == "" {
		writeLedgerError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req ledgerhttp.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeLedgerError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ledger.Handler.TransferHandler(r.Context(), initiatedBy, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	rankQuery := queries.RankQuery{
		SortKey:      query.Get("sort"),
		College:      query.Get("college"),
		Location:     query.Get("location"),
		SearchPrefix: query.Get("search"),
		Cursor:       query.Get("cursor"),
	}

	if limitRaw := query.Get("limit"); limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeLedgerError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		rankQuery.Limit = limit
	}

	resp, err := s.ledger.Handler.RankHandler(r.Context(), rankQuery)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLeaderboardFilters(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.FilterOptionsHandler(r.Context())
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNomineeTransfers(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ledger.Handler.NomineeTransfersHandler(r.Context(), r.PathValue("nominee_id"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgererrors.ErrNomineeNotFound):
		writeLedgerError(w, http.StatusNotFound, "nominee_not_found", err.Error())
	case errors.Is(err, ledgererrors.ErrInsufficientCredits):
		writeLedgerError(w, http.StatusConflict, "insufficient_credits", err.Error())
	case errors.Is(err, ledgererrors.ErrInvalidBallotInput),
		errors.Is(err, ledgererrors.ErrInvalidTransferAmount),
		errors.Is(err, ledgererrors.ErrSameNominee),
		errors.Is(err, ledgererrors.ErrInvalidRankQuery):
		writeLedgerError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ledgererrors.ErrConflict):
		writeLedgerError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, ledgererrors.ErrUnavailable):
		writeLedgerError(w, http.StatusServiceUnavailable, "unavailable", err.Error())
	default:
		writeLedgerError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLedgerError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ledgerhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
