// Package repomanager ties the repositories to a storage backend. Callers get
// repositories bound to the shared connection, or to a transaction through
// WithTx.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/casiec/internal/server/repositories/challenges"
	"github.com/dmitrijs2005/casiec/internal/server/repositories/records"
	"github.com/dmitrijs2005/casiec/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/casiec/internal/server/repositories/users"
)

// Repositories is the set of repositories bound to one handle.
type Repositories struct {
	Users         users.Repository
	RefreshTokens refreshtokens.Repository
	Challenges    challenges.Repository
	Records       records.Repository
}

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Repositories() Repositories
	// WithTx runs fn with repositories bound to one transaction. The
	// transaction commits when fn returns nil.
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Close() error
}
