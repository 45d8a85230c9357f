// Package models holds the console's domain types: CMS content, inbound
// applications and contact messages, and the session token pair. Wire-format
// mapping lives in the services package.
package models
