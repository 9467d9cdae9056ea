package users

// MeResponse is the entitlement/status payload the frontend polls. Plan is
// "guest" for anonymous actors.
type MeResponse struct {
	LoggedIn  bool    `json:"logged_in"`
	Email     *string `json:"email"`
	Plan      string  `json:"plan"`
	Used      int64   `json:"used"`
	Limit     int64   `json:"limit"`
	Remaining int64   `json:"remaining"`
}
