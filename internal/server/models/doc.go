// Package models defines server-side data models persisted by the
// repositories.
package models
