package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CastVoteRequest struct {
	NomineeID string `json:"nominee_id"`
}

type BallotResponse struct {
	VoterID   string `json:"voter_id"`
	NomineeID string `json:"nominee_id,omitempty"`
	Active    bool   `json:"active"`
	Outcome   string `json:"outcome"`
}

type TransferRequest struct {
	SourceNomineeID string `json:"source_nominee_id"`
	DestNomineeID   string `json:"dest_nominee_id"`
	Amount          int64  `json:"amount"`
}

type TransferResponse struct {
	TransferID      string `json:"transfer_id"`
	SourceNomineeID string `json:"source_nominee_id"`
	DestNomineeID   string `json:"dest_nominee_id"`
	Amount          int64  `json:"amount"`
	InitiatedBy     string `json:"initiated_by,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
}

type RankItem struct {
	NomineeID   string `json:"nominee_id"`
	Name        string `json:"name"`
	CollegeName string `json:"college_name,omitempty"`
	Location    string `json:"location,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Votes       int64  `json:"votes"`
}

type RankResponse struct {
	Items      []RankItem `json:"items"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

type FilterOptionsResponse struct {
	Colleges  []string `json:"colleges"`
	Locations []string `json:"locations"`
}
