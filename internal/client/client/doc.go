// Package client is the console's HTTP transport to the CASIEC backend.
//
// # Overview
//
// HTTPClient sends JSON or multipart requests relative to a base URL and
// decodes JSON responses. Every request carries the session's current access
// token as a bearer credential.
//
// # Session refresh
//
// A 401 on a call that has not been retried triggers a token refresh through
// a dedicated POST /auth/refresh that bypasses this logic. Only one refresh
// runs at a time: calls that hit a 401 while it is in flight wait in a queue
// and are woken in arrival order with the new token, or with the refresh
// error. A failed refresh clears both stored tokens and sends the view router
// home. Each call is retried at most once.
//
// # Errors
//
// Failures are mapped to ErrUnauthorized, ErrSessionExpired, ErrUnavailable or
// an *APIError carrying the backend's message; match them with errors.Is and
// errors.As. A 401 that carries a message is an *APIError that also matches
// ErrUnauthorized.
package client
