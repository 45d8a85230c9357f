package models

// TokenPair is what the backend hands out after a successful 2FA check or a
// refresh. RefreshToken may be empty on refresh, meaning "keep the old one".
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
