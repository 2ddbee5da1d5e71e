package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	directoryerrors "trustvote/contexts/nominations/nominee-directory/domain/errors"
	directoryhttp "trustvote/contexts/nominations/nominee-directory/transport/http"
)

func (s *Server) handleNominate(w http.ResponseWriter, r *http.Request) {
	var req directoryhttp.NominateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDirectoryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.directory.Handler.NominateHandler(r.Context(), req)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetNominee(w http.ResponseWriter, r *http.Request) {
	resp, err := s.directory.Handler.GetNomineeHandler(r.Context(), r.PathValue("nominee_id"))
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFeaturedNominees(w http.ResponseWriter, r *http.Request) {
	resp, err := s.directory.Handler.FeaturedHandler(r.Context())
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearchNominees(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := 0
	if limitRaw := query.Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeDirectoryError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.directory.Handler.SearchHandler(r.Context(), query.Get("search"), limit)
	if err != nil {
		writeDirectoryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeDirectoryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, directoryerrors.ErrNomineeNotFound):
		writeDirectoryError(w, http.StatusNotFound, "nominee_not_found", err.Error())
	case errors.Is(err, directoryerrors.ErrNomineeExists):
		writeDirectoryError(w, http.StatusConflict, "nominee_exists", err.Error())
	case errors.Is(err, directoryerrors.ErrInvalidNomination):
		writeDirectoryError(w, http.StatusBadRequest, "invalid_nomination", err.Error())
	default:
		writeDirectoryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeDirectoryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, directoryhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
