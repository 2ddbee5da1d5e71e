package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type NominateRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	CollegeName     string `json:"college_name,omitempty"`
	Description     string `json:"description,omitempty"`
	Reason          string `json:"reason,omitempty"`
	Location        string `json:"location,omitempty"`
	PhotoURL        string `json:"photo_url,omitempty"`
	LinkedinProfile string `json:"linkedin_profile,omitempty"`
}

type NomineeResponse struct {
	NomineeID       string `json:"nominee_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	CollegeName     string `json:"college_name,omitempty"`
	Description     string `json:"description,omitempty"`
	Reason          string `json:"reason,omitempty"`
	Location        string `json:"location,omitempty"`
	PhotoURL        string `json:"photo_url,omitempty"`
	LinkedinProfile string `json:"linkedin_profile,omitempty"`
	Featured        bool   `json:"featured"`
	Votes           int64  `json:"votes"`
	CreatedAt       string `json:"created_at"`
}

type NomineeListResponse struct {
	Items []NomineeResponse `json:"items"`
}
