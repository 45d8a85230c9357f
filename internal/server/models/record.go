package models

import "time"

// Collection names a content collection served under /<collection>.
type Collection string

const (
	CollectionArticles  Collection = "article"
	CollectionTeam      Collection = "team"
	CollectionCampaigns Collection = "campaign"
	CollectionTicker    Collection = "ticker"
	CollectionCarousel  Collection = "carousel"
	CollectionFinance   Collection = "finance"
	CollectionSupport   Collection = "support"
	CollectionContact   Collection = "contact"
)

// Collections lists every collection the API exposes.
var Collections = []Collection{
	CollectionArticles,
	CollectionTeam,
	CollectionCampaigns,
	CollectionTicker,
	CollectionCarousel,
	CollectionFinance,
	CollectionSupport,
	CollectionContact,
}

// Record is one document of a collection. Data holds the client-visible
// fields; ID and CreatedAt are owned by the store.
type Record struct {
	ID         string
	Collection Collection
	Data       map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// String returns the string field name of Data, or "" when it is absent or
// not a string.
func (r *Record) String(name string) string {
	s, _ := r.Data[name].(string)
	return s
}
