package entities

// RankEntry joins a nominee's live tally with the display attributes owned by
// the nominee directory. The ledger never writes the profile fields.
type RankEntry struct {
	NomineeID   string
	Name        string
	CollegeName string
	Location    string
	PhotoURL    string
	Votes       int64
}
