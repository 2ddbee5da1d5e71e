// Package voteledger implements the vote ledger and transfer engine inside
// the nominations context.
//
// The module owns ballot lifecycle orchestration (cast/toggle/retract),
// credit transfers between nominee tallies, leaderboard reads, and ledger
// event production through an outbox-backed relay worker. It keeps business
// rules in application/domain layers and isolates infrastructure concerns
// behind ports and adapters.
package voteledger
