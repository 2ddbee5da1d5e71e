package voteledger_test

import (
	"context"
	"testing"

	"trustvote/contexts/nominations/vote-ledger/application/workers"
	"trustvote/contexts/nominations/vote-ledger/ports"
	httptransport "trustvote/contexts/nominations/vote-ledger/transport/http"
)

type capturePublisher struct {
	topics []string
	events []ports.EventEnvelope
}

func (p *capturePublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func TestOutboxRelayPublishesAndMarksRows(t *testing.T) {
	module := newSeededModule(t)
	ctx := context.Background()

	if _, err := module.Handler.CastVoteHandler(ctx, "voter-1", httptransport.CastVoteRequest{NomineeID: "nominee-a"}); err != nil {
		t.Fatalf("cast failed: %v", err)
	}
	if _, err := module.Handler.CastVoteHandler(ctx, "voter-2", httptransport.CastVoteRequest{NomineeID: "nominee-b"}); err != nil {
		t.Fatalf("cast failed: %v", err)
	}

	publisher := &capturePublisher{}
	relay := workers.OutboxRelay{
		Outbox:    module.Store,
		Publisher: publisher,
		Clock:     module.Store,
		BatchSize: 10,
	}
	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}

	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.events))
	}
	for i, topic := range publisher.topics {
		if topic != "vote.cast" {
			t.Fatalf("event %d: expected topic vote.cast, got %s", i, topic)
		}
	}
	for i, event := range publisher.events {
		if event.EventType != "vote.cast" {
			t.Fatalf("event %d: expected vote.cast, got %s", i, event.EventType)
		}
		if event.SourceService != "vote-ledger" {
			t.Fatalf("event %d: unexpected source %s", i, event.SourceService)
		}
	}

	pending, err := module.Store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending rows after relay, got %d", len(pending))
	}
}

func TestOutboxRelayIsIdleWithNothingPending(t *testing.T) {
	module := newSeededModule(t)

	publisher := &capturePublisher{}
	relay := workers.OutboxRelay{
		Outbox:    module.Store,
		Publisher: publisher,
		Clock:     module.Store,
		BatchSize: 10,
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.events) != 0 {
		t.Fatalf("expected no events published, got %d", len(publisher.events))
	}
}
