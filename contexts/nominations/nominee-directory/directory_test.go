package nomineedirectory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	nomineedirectory "trustvote/contexts/nominations/nominee-directory"
	"trustvote/contexts/nominations/nominee-directory/domain/entities"
	domainerrors "trustvote/contexts/nominations/nominee-directory/domain/errors"
	httptransport "trustvote/contexts/nominations/nominee-directory/transport/http"
)

func TestNominateRegistersNominee(t *testing.T) {
	module := nomineedirectory.NewInMemoryModule(nil, nil)

	resp, err := module.Handler.NominateHandler(context.Background(), httptransport.NominateRequest{
		Name:        "Asha Rao",
		Email:       "Asha.Rao@example.edu",
		CollegeName: "IIT Delhi",
		Location:    "Delhi",
	})
	if err != nil {
		t.Fatalf("nominate failed: %v", err)
	}
	if resp.NomineeID == "" {
		t.Fatalf("expected generated nominee id")
	}
	if resp.Email != "asha.rao@example.edu" {
		t.Fatalf("expected lowercased email, got %s", resp.Email)
	}
	if resp.Votes != 0 {
		t.Fatalf("new nominee must start with zero votes, got %d", resp.Votes)
	}

	got, err := module.Handler.GetNomineeHandler(context.Background(), resp.NomineeID)
	if err != nil {
		t.Fatalf("get after nominate failed: %v", err)
	}
	if got.Name != "Asha Rao" || got.CollegeName != "IIT Delhi" {
		t.Fatalf("profile not persisted: %+v", got)
	}
}

func TestNominateRejectsDuplicateEmail(t *testing.T) {
	module := nomineedirectory.NewInMemoryModule(nil, nil)
	ctx := context.Background()

	first := httptransport.NominateRequest{Name: "Asha Rao", Email: "asha@example.edu"}
	if _, err := module.Handler.NominateHandler(ctx, first); err != nil {
		t.Fatalf("first nominate failed: %v", err)
	}

	dup := httptransport.NominateRequest{Name: "Other Name", Email: "ASHA@example.edu"}
	if _, err := module.Handler.NominateHandler(ctx, dup); !errors.Is(err, domainerrors.ErrNomineeExists) {
		t.Fatalf("expected duplicate email rejection, got %v", err)
	}
}

func TestNominateValidatesInput(t *testing.T) {
	module := nomineedirectory.NewInMemoryModule(nil, nil)
	ctx := context.Background()

	cases := []httptransport.NominateRequest{
		{Name: "", Email: "a@example.edu"},
		{Name: "Asha Rao", Email: ""},
		{Name: "Asha Rao", Email: "not-an-email"},
	}
	for i, req := range cases {
		if _, err := module.Handler.NominateHandler(ctx, req); !errors.Is(err, domainerrors.ErrInvalidNomination) {
			t.Fatalf("case %d: expected invalid nomination, got %v", i, err)
		}
	}
}

func TestGetUnknownNomineeFails(t *testing.T) {
	module := nomineedirectory.NewInMemoryModule(nil, nil)

	if _, err := module.Handler.GetNomineeHandler(context.Background(), "missing"); !errors.Is(err, domainerrors.ErrNomineeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFeaturedReturnsTopThreeByVotes(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seed := []entities.Nominee{
		{NomineeID: "n-1", Name: "One", Email: "one@example.edu", Featured: true, Votes: 4, CreatedAt: base},
		{NomineeID: "n-2", Name: "Two", Email: "two@example.edu", Featured: true, Votes: 9, CreatedAt: base},
		{NomineeID: "n-3", Name: "Three", Email: "three@example.edu", Featured: false, Votes: 20, CreatedAt: base},
		{NomineeID: "n-4", Name: "Four", Email: "four@example.edu", Featured: true, Votes: 7, CreatedAt: base},
		{NomineeID: "n-5", Name: "Five", Email: "five@example.edu", Featured: true, Votes: 1, CreatedAt: base},
	}
	module := nomineedirectory.NewInMemoryModule(seed, nil)

	resp, err := module.Handler.FeaturedHandler(context.Background())
	if err != nil {
		t.Fatalf("featured failed: %v", err)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("expected featured capped at 3, got %d", len(resp.Items))
	}
	want := []string{"n-2", "n-4", "n-1"}
	for i := range want {
		if resp.Items[i].NomineeID != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], resp.Items[i].NomineeID)
		}
	}
}

func TestSearchMatchesPrefixWithDefaultLimit(t *testing.T) {
	seed := []entities.Nominee{
		{NomineeID: "n-1", Name: "Asha Rao", Email: "asha@example.edu"},
		{NomineeID: "n-2", Name: "Aditi Menon", Email: "aditi@example.edu"},
		{NomineeID: "n-3", Name: "Ashok Kumar", Email: "ashok@example.edu"},
		{NomineeID: "n-4", Name: "Bilal Khan", Email: "bilal@example.edu"},
	}
	module := nomineedirectory.NewInMemoryModule(seed, nil)

	resp, err := module.Handler.SearchHandler(context.Background(), "as", 0)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 matches for prefix 'as', got %d", len(resp.Items))
	}
	if resp.Items[0].Name != "Asha Rao" || resp.Items[1].Name != "Ashok Kumar" {
		t.Fatalf("unexpected search order: %+v", resp.Items)
	}
}

func TestSearchEmptyPrefixReturnsNothing(t *testing.T) {
	seed := []entities.Nominee{
		{NomineeID: "n-1", Name: "Asha Rao", Email: "asha@example.edu"},
	}
	module := nomineedirectory.NewInMemoryModule(seed, nil)

	resp, err := module.Handler.SearchHandler(context.Background(), "   ", 5)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Fatalf("expected empty result for blank prefix, got %d", len(resp.Items))
	}
}
