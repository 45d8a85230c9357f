package models

import (
	"fmt"
	"strings"
)

const (
	DefaultReadTime        = "5 min read"
	DefaultAuthor          = "CASIEC Editorial"
	DefaultArticleGradient = "from-gray-900 to-black"
	DefaultTeamGradient    = "from-blue-600 to-indigo-900"
	DefaultContextType     = "advert"
	DefaultCampaignTag     = "Active"

	// TempIDPrefix marks records created locally that the backend has not
	// assigned an id to yet.
	TempIDPrefix = "temp-"
)

// IsPersistedID reports whether id names a record that already exists on
// the backend, i.e. saves should PATCH rather than POST.
func IsPersistedID(id string) bool {
	return id != "" && !strings.HasPrefix(id, TempIDPrefix)
}

type Article struct {
	ID            string
	Title         string
	Excerpt       string
	Category      string
	ReadTime      string
	Author        string
	Date          string
	ImageGradient string
	ImageURL      string
	Content       string
}

type TeamMember struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Bio            string `json:"bio"`
	ImageGradient  string `json:"imageGradient,omitempty"`
	Specialization string `json:"specialization"`
	ImageURL       string `json:"imageUrl,omitempty"`
	LinkedIn       string `json:"linkedin,omitempty"`
	Twitter        string `json:"twitter,omitempty"`
	Email          string `json:"email,omitempty"`
}

type Campaign struct {
	ID          string `json:"id,omitempty"`
	Headline    string `json:"headline"`
	Summary     string `json:"summary"`
	ContextType string `json:"contextType"`
	Tag         string `json:"tag"`
	Image       string `json:"image,omitempty"`
	URL         string `json:"url,omitempty"`
}

type CarouselType string

const (
	CarouselNews     CarouselType = "news"
	CarouselEco      CarouselType = "eco"
	CarouselAdvert   CarouselType = "advert"
	CarouselProduct  CarouselType = "product"
	CarouselCustomer CarouselType = "customer"
)

func ParseCarouselType(s string) (CarouselType, error) {
	switch t := CarouselType(strings.ToLower(s)); t {
	case CarouselNews, CarouselEco, CarouselAdvert, CarouselProduct, CarouselCustomer:
		return t, nil
	}
	return "", fmt.Errorf("unknown carousel type %q", s)
}

type CarouselItem struct {
	ID            string       `json:"id,omitempty"`
	Type          CarouselType `json:"type"`
	Title         string       `json:"title"`
	Summary       string       `json:"summary"`
	Tag           string       `json:"tag,omitempty"`
	Date          string       `json:"date,omitempty"`
	Link          string       `json:"link,omitempty"`
	LinkText      string       `json:"linkText,omitempty"`
	ImageGradient string       `json:"imageGradient,omitempty"`
	ImageURL      string       `json:"imageUrl,omitempty"`
	StatLabel     string       `json:"statLabel,omitempty"`
	StatValue     string       `json:"statValue,omitempty"`
	URL           string       `json:"url,omitempty"`
}

type TickerCategory string

const (
	TickerMarket    TickerCategory = "Market"
	TickerCorporate TickerCategory = "Corporate"
	TickerUrgent    TickerCategory = "Urgent"
)

func ParseTickerCategory(s string) (TickerCategory, error) {
	for _, c := range []TickerCategory{TickerMarket, TickerCorporate, TickerUrgent} {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown ticker category %q", s)
}

type TickerItem struct {
	ID       string         `json:"id,omitempty"`
	Text     string         `json:"text"`
	Category TickerCategory `json:"category"`
	IsManual bool           `json:"isManual"`
}

// Image is a file picked for upload alongside a content record.
type Image struct {
	FileName string
	Data     []byte
}
