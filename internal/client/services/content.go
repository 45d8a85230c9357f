package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/casiec/internal/client/client"
	"github.com/dmitrijs2005/casiec/internal/client/models"
	"github.com/dmitrijs2005/casiec/internal/netx"
)

const (
	resArticle  = "article"
	resTeam     = "team"
	resCampaign = "campaign"
	resCarousel = "carousel"
	resTicker   = "ticker"
)

// ContentService manages the public site's editorial content. Saves PATCH a
// record that already exists on the backend and POST anything else. When an
// image is given the record is sent as multipart form data with the file
// under "image".
type ContentService interface {
	Articles(ctx context.Context) ([]models.Article, error)
	Article(ctx context.Context, id string) (models.Article, error)
	SaveArticle(ctx context.Context, a models.Article, img *models.Image) error
	DeleteArticle(ctx context.Context, id string) error

	Team(ctx context.Context) ([]models.TeamMember, error)
	SaveTeamMember(ctx context.Context, m models.TeamMember, img *models.Image) error
	DeleteTeamMember(ctx context.Context, id string) error

	Campaigns(ctx context.Context) ([]models.Campaign, error)
	SaveCampaign(ctx context.Context, c models.Campaign, img *models.Image) error
	DeleteCampaign(ctx context.Context, id string) error

	Carousel(ctx context.Context) ([]models.CarouselItem, error)
	SaveCarouselItem(ctx context.Context, item models.CarouselItem) error
	DeleteCarouselItem(ctx context.Context, id string) error

	Ticker(ctx context.Context) ([]models.TickerItem, error)
	AddTickerItem(ctx context.Context, item models.TickerItem) error
	DeleteTickerItem(ctx context.Context, id string) error
}

type contentService struct {
	api API
}

func NewContentService(api API) ContentService {
	return &contentService{api: api}
}

type articleWire struct {
	ID            string `json:"id,omitempty"`
	Headline      string `json:"headline"`
	Summary       string `json:"summary"`
	Category      string `json:"category"`
	Image         string `json:"image,omitempty"`
	ReadTime      string `json:"readTime"`
	Author        string `json:"author"`
	ImageGradient string `json:"imageGradient"`
	Content       string `json:"content,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

func (w articleWire) model() models.Article {
	return models.Article{
		ID:            w.ID,
		Title:         w.Headline,
		Excerpt:       w.Summary,
		Category:      w.Category,
		ReadTime:      orDefault(w.ReadTime, models.DefaultReadTime),
		Author:        orDefault(w.Author, models.DefaultAuthor),
		Date:          displayDate(w.CreatedAt),
		ImageGradient: orDefault(w.ImageGradient, models.DefaultArticleGradient),
		ImageURL:      w.Image,
		Content:       w.Content,
	}
}

func (s *contentService) Articles(ctx context.Context) ([]models.Article, error) {
	var wire []articleWire
	if err := s.api.Do(ctx, http.MethodGet, "/"+resArticle, nil, &wire); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	out := make([]models.Article, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.model())
	}
	return out, nil
}

func (s *contentService) Article(ctx context.Context, id string) (models.Article, error) {
	var w articleWire
	if err := s.api.Do(ctx, http.MethodGet, resourcePath(resArticle, id), nil, &w); err != nil {
		return models.Article{}, fmt.Errorf("get article %s: %w", id, err)
	}
	return w.model(), nil
}

func (s *contentService) SaveArticle(ctx context.Context, a models.Article, img *models.Image) error {
	var body *client.Body
	var err error
	if img != nil {
		fields := map[string]string{
			"headline":      a.Title,
			"summary":       a.Excerpt,
			"category":      a.Category,
			"readTime":      a.ReadTime,
			"author":        a.Author,
			"imageGradient": a.ImageGradient,
		}
		if a.Content != "" {
			fields["content"] = a.Content
		}
		body, err = client.MultipartBody(fields, imagePart(img))
	} else {
		body, err = client.JSONBody(articleWire{
			Headline:      a.Title,
			Summary:       a.Excerpt,
			Category:      a.Category,
			Image:         a.ImageURL,
			ReadTime:      a.ReadTime,
			Author:        a.Author,
			ImageGradient: a.ImageGradient,
			Content:       a.Content,
		})
	}
	if err != nil {
		return err
	}
	return s.save(ctx, resArticle, a.ID, body)
}

func (s *contentService) DeleteArticle(ctx context.Context, id string) error {
	return s.remove(ctx, resArticle, id)
}

func (s *contentService) Team(ctx context.Context) ([]models.TeamMember, error) {
	var out []models.TeamMember
	if err := s.api.Do(ctx, http.MethodGet, "/"+resTeam, nil, &out); err != nil {
		return nil, fmt.Errorf("list team: %w", err)
	}
	return out, nil
}

func (s *contentService) SaveTeamMember(ctx context.Context, m models.TeamMember, img *models.Image) error {
	var body *client.Body
	var err error
	if img != nil {
		fields := map[string]string{
			"name":           m.Name,
			"role":           m.Role,
			"bio":            m.Bio,
			"specialization": m.Specialization,
			"imageGradient":  orDefault(m.ImageGradient, models.DefaultTeamGradient),
		}
		setIf(fields, "linkedin", m.LinkedIn)
		setIf(fields, "twitter", m.Twitter)
		setIf(fields, "email", m.Email)
		body, err = client.MultipartBody(fields, imagePart(img))
	} else {
		payload := m
		payload.ID = ""
		body, err = client.JSONBody(payload)
	}
	if err != nil {
		return err
	}
	return s.save(ctx, resTeam, m.ID, body)
}

func (s *contentService) DeleteTeamMember(ctx context.Context, id string) error {
	return s.remove(ctx, resTeam, id)
}

func (s *contentService) Campaigns(ctx context.Context) ([]models.Campaign, error) {
	var out []models.Campaign
	if err := s.api.Do(ctx, http.MethodGet, "/"+resCampaign, nil, &out); err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return out, nil
}

func (s *contentService) SaveCampaign(ctx context.Context, c models.Campaign, img *models.Image) error {
	var body *client.Body
	var err error
	if img != nil {
		// The uploaded file replaces the image, so no "image" text field.
		fields := map[string]string{
			"headline":    c.Headline,
			"summary":     c.Summary,
			"contextType": orDefault(c.ContextType, models.DefaultContextType),
			"tag":         orDefault(c.Tag, models.DefaultCampaignTag),
		}
		setIf(fields, "url", c.URL)
		body, err = client.MultipartBody(fields, imagePart(img))
	} else {
		payload := c
		payload.ID = ""
		body, err = client.JSONBody(payload)
	}
	if err != nil {
		return err
	}
	return s.save(ctx, resCampaign, c.ID, body)
}

func (s *contentService) DeleteCampaign(ctx context.Context, id string) error {
	return s.remove(ctx, resCampaign, id)
}

func (s *contentService) Carousel(ctx context.Context) ([]models.CarouselItem, error) {
	var out []models.CarouselItem
	if err := s.api.Do(ctx, http.MethodGet, "/"+resCarousel, nil, &out); err != nil {
		return nil, fmt.Errorf("list carousel: %w", err)
	}
	return out, nil
}

func (s *contentService) SaveCarouselItem(ctx context.Context, item models.CarouselItem) error {
	payload := item
	if !models.IsPersistedID(item.ID) {
		payload.ID = ""
	}
	body, err := client.JSONBody(payload)
	if err != nil {
		return err
	}
	return s.save(ctx, resCarousel, item.ID, body)
}

func (s *contentService) DeleteCarouselItem(ctx context.Context, id string) error {
	return s.remove(ctx, resCarousel, id)
}

func (s *contentService) Ticker(ctx context.Context) ([]models.TickerItem, error) {
	var out []models.TickerItem
	if err := s.api.Do(ctx, http.MethodGet, "/"+resTicker, nil, &out); err != nil {
		return nil, fmt.Errorf("list ticker: %w", err)
	}
	return out, nil
}

func (s *contentService) AddTickerItem(ctx context.Context, item models.TickerItem) error {
	body, err := client.JSONBody(map[string]any{
		"text":     item.Text,
		"category": item.Category,
		"isManual": item.IsManual,
	})
	if err != nil {
		return err
	}
	if err := s.api.Do(ctx, http.MethodPost, "/"+resTicker, body, nil); err != nil {
		return fmt.Errorf("add ticker item: %w", err)
	}
	return nil
}

func (s *contentService) DeleteTickerItem(ctx context.Context, id string) error {
	return s.remove(ctx, resTicker, id)
}

func (s *contentService) save(ctx context.Context, resource, id string, body *client.Body) error {
	method, path := http.MethodPost, "/"+resource
	if models.IsPersistedID(id) {
		method, path = http.MethodPatch, resourcePath(resource, id)
	}
	if err := s.api.Do(ctx, method, path, body, nil); err != nil {
		return fmt.Errorf("save %s: %w", resource, err)
	}
	return nil
}

func (s *contentService) remove(ctx context.Context, resource, id string) error {
	if err := s.api.Do(ctx, http.MethodDelete, resourcePath(resource, id), nil, nil); err != nil {
		return fmt.Errorf("delete %s %s: %w", resource, id, err)
	}
	return nil
}

func imagePart(img *models.Image) *netx.FilePart {
	return &netx.FilePart{FieldName: "image", FileName: orDefault(img.FileName, "image"), Data: img.Data}
}

func setIf(fields map[string]string, key, value string) {
	if value != "" {
		fields[key] = value
	}
}
