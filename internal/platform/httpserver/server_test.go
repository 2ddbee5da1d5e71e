package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	nomineedirectory "trustvote/contexts/nominations/nominee-directory"
	directoryentities "trustvote/contexts/nominations/nominee-directory/domain/entities"
	voteledger "trustvote/contexts/nominations/vote-ledger"
	"trustvote/contexts/nominations/vote-ledger/domain/entities"
	"trustvote/internal/platform/httpserver"
)

func newTestServer(t *testing.T) *httpserver.Server {
	t.Helper()
	ledger := voteledger.NewInMemoryModule([]entities.RankEntry{
		{NomineeID: "nominee-a", Name: "Asha Rao", CollegeName: "IIT Delhi", Location: "Delhi"},
		{NomineeID: "nominee-b", Name: "Bilal Khan", CollegeName: "IIT Bombay", Location: "Mumbai"},
	}, nil)
	directory := nomineedirectory.NewInMemoryModule([]directoryentities.Nominee{
		{NomineeID: "nominee-a", Name: "Asha Rao", Email: "asha@example.edu", CollegeName: "IIT Delhi"},
	}, nil)
	return httpserver.New(ledger, directory, nil, ":0")
}

func doJSON(t *testing.T, server *httpserver.Server, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, req)
	return recorder
}

func TestCastVoteEndpoint(t *testing.T) {
	server := newTestServer(t)

	recorder := doJSON(t, server, http.MethodPost, "/v1/ballots/nominee-a", "voter-1", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var resp struct {
		NomineeID string `json:"nominee_id"`
		Active    bool   `json:"active"`
		Outcome   string `json:"outcome"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if !resp.Active || resp.NomineeID != "nominee-a" || resp.Outcome != "voted" {
		t.Fatalf("unexpected ballot response: %+v", resp)
	}
}

func TestCastVoteRequiresUserHeader(t *testing.T) {
	server := newTestServer(t)

	recorder := doJSON(t, server, http.MethodPost, "/v1/ballots/nominee-a", "", nil)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without X-User-Id, got %d", recorder.Code)
	}
}

func TestCastVoteUnknownNomineeIs404(t *testing.T) {
	server := newTestServer(t)

	recorder := doJSON(t, server, http.MethodPost, "/v1/ballots/nominee-missing", "voter-1", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestRetractEndpoint(t *testing.T) {
	server := newTestServer(t)

	if rec := doJSON(t, server, http.MethodPost, "/v1/ballots/nominee-a", "voter-1", nil); rec.Code != http.StatusOK {
		t.Fatalf("cast failed: %d", rec.Code)
	}
	recorder := doJSON(t, server, http.MethodPost, "/v1/ballots/retract", "voter-1", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var resp struct {
		Active  bool   `json:"active"`
		Outcome string `json:"outcome"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.Active || resp.Outcome != "retracted" {
		t.Fatalf("unexpected retract response: %+v", resp)
	}
}

func TestTransferInsufficientCreditsIs409(t *testing.T) {
	server := newTestServer(t)

	recorder := doJSON(t, server, http.MethodPost, "/v1/transfers", "admin-1", map[string]any{
		"source_nominee_id": "nominee-a",
		"dest_nominee_id":   "nominee-b",
		"amount":            5,
	})
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	server := newTestServer(t)

	if rec := doJSON(t, server, http.MethodPost, "/v1/ballots/nominee-b", "voter-1", nil); rec.Code != http.StatusOK {
		t.Fatalf("cast failed: %d", rec.Code)
	}

	recorder := doJSON(t, server, http.MethodGet, "/v1/leaderboard?limit=10", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var resp struct {
		Items []struct {
			NomineeID string `json:"nominee_id"`
			Votes     int64  `json:"votes"`
		} `json:"items"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 nominees, got %d", len(resp.Items))
	}
	if resp.Items[0].NomineeID != "nominee-b" || resp.Items[0].Votes != 1 {
		t.Fatalf("expected nominee-b on top with 1 vote, got %+v", resp.Items[0])
	}
}

func TestLeaderboardRejectsBadSortAndLimit(t *testing.T) {
	server := newTestServer(t)

	if rec := doJSON(t, server, http.MethodGet, "/v1/leaderboard?sort=popularity", "", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad sort, got %d", rec.Code)
	}
	if rec := doJSON(t, server, http.MethodGet, "/v1/leaderboard?limit=abc", "", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}
}

func TestNominateEndpoint(t *testing.T) {
	server := newTestServer(t)

	recorder := doJSON(t, server, http.MethodPost, "/v1/nominees", "", map[string]any{
		"name":  "Chitra Nair",
		"email": "chitra@example.edu",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	dup := doJSON(t, server, http.MethodPost, "/v1/nominees", "", map[string]any{
		"name":  "Chitra Again",
		"email": "chitra@example.edu",
	})
	if dup.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", dup.Code)
	}
}

func TestGetNomineeEndpoint(t *testing.T) {
	server := newTestServer(t)

	recorder := doJSON(t, server, http.MethodGet, "/v1/nominees/nominee-a", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	missing := doJSON(t, server, http.MethodGet, "/v1/nominees/nope", "", nil)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.Code)
	}
}

func TestFeaturedRouteWinsOverWildcard(t *testing.T) {
	server := newTestServer(t)

	recorder := doJSON(t, server, http.MethodGet, "/v1/nominees/featured", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 from featured route, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var resp struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Fatalf("expected no featured nominees in seed, got %d", len(resp.Items))
	}
}
