// Package common contains shared constants and sentinel errors used across
// the CASIEC console and its reference backend.
package common

const (
	// AuthorizationHeader carries the bearer access token on outbound requests.
	AuthorizationHeader = "Authorization"

	// BearerPrefix precedes the access token in AuthorizationHeader.
	BearerPrefix = "Bearer "

	// AccessTokenKey and RefreshTokenKey are the durable storage keys of the
	// client session tokens.
	AccessTokenKey  = "casiec_token"
	RefreshTokenKey = "casiec_refresh_token"
)
