package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/casiec/internal/common"
	"github.com/dmitrijs2005/casiec/internal/logging"
	"github.com/dmitrijs2005/casiec/internal/server/models"
	"github.com/dmitrijs2005/casiec/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ErrUploadsDisabled is returned when a record carries an image but no
// image store is configured.
var ErrUploadsDisabled = errors.New("image uploads are not configured")

var (
	applicationStatuses = []string{"pending", "reviewed", "approved", "declined"}
	contactStatuses     = []string{"Unread", "Replied", "Archived", "opened"}
	tickerCategories    = []string{"Market", "Corporate", "Urgent"}
	carouselTypes       = []string{"news", "eco", "advert", "product", "customer"}

	// store-owned keys are never taken from a request body
	reservedFields = []string{"id", "createdAt", "updatedAt"}

	imageFields = map[models.Collection]string{
		models.CollectionArticles:  "image",
		models.CollectionCampaigns: "image",
		models.CollectionTeam:      "imageUrl",
		models.CollectionCarousel:  "imageUrl",
	}
)

// Upload is an image attached to a create or update.
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ImageStore keeps uploaded images and returns the URL they are served at.
type ImageStore interface {
	Put(ctx context.Context, fileName, contentType string, data []byte) (string, error)
}

type ContentService struct {
	repomanager repomanager.RepositoryManager
	images      ImageStore
	logger      logging.Logger
}

// NewContentService builds the service. images may be nil, in which case
// requests that carry an image fail with ErrUploadsDisabled.
func NewContentService(m repomanager.RepositoryManager, images ImageStore, logger logging.Logger) *ContentService {
	return &ContentService{repomanager: m, images: images, logger: logger}
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, fmt.Sprintf(format, args...))
}

// Known reports whether c is served by the API.
func Known(c models.Collection) bool {
	return slices.Contains(models.Collections, c)
}

func (s *ContentService) List(ctx context.Context, c models.Collection) ([]models.Record, error) {
	return s.repomanager.Repositories().Records.List(ctx, c)
}

func (s *ContentService) Get(ctx context.Context, c models.Collection, id string) (*models.Record, error) {
	if uuid.Validate(id) != nil {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Repositories().Records.Get(ctx, c, id)
}

// Create validates data, applies the collection's defaults, stores img if
// given and inserts the record.
func (s *ContentService) Create(ctx context.Context, c models.Collection, data map[string]any, img *Upload) (*models.Record, error) {
	data = clean(data)
	applyDefaults(c, data)
	if err := validate(c, data, true); err != nil {
		return nil, err
	}

	repos := s.repomanager.Repositories()
	if c == models.CollectionContact && str(data, "subject") == "" {
		dup, err := repos.Records.FindByField(ctx, c, "email", str(data, "email"))
		if err != nil {
			return nil, err
		}
		for _, r := range dup {
			if r.String("subject") == "" {
				return nil, fmt.Errorf("%w: email is already subscribed", common.ErrorAlreadyExists)
			}
		}
	}

	if err := s.attach(ctx, c, data, img); err != nil {
		return nil, err
	}
	return repos.Records.Create(ctx, &models.Record{Collection: c, Data: data})
}

// Update merges patch into the stored record after validating the fields it
// sets.
func (s *ContentService) Update(ctx context.Context, c models.Collection, id string, patch map[string]any, img *Upload) (*models.Record, error) {
	if uuid.Validate(id) != nil {
		return nil, common.ErrorNotFound
	}
	patch = clean(patch)
	if err := validate(c, patch, false); err != nil {
		return nil, err
	}
	if err := s.attach(ctx, c, patch, img); err != nil {
		return nil, err
	}
	return s.repomanager.Repositories().Records.Update(ctx, c, id, patch)
}

func (s *ContentService) Delete(ctx context.Context, c models.Collection, id string) error {
	if uuid.Validate(id) != nil {
		return common.ErrorNotFound
	}
	return s.repomanager.Repositories().Records.Delete(ctx, c, id)
}

// MarkOpened flags a contact message as read without touching its status.
func (s *ContentService) MarkOpened(ctx context.Context, id string) (*models.Record, error) {
	return s.Update(ctx, models.CollectionContact, id, map[string]any{"opened": true}, nil)
}

func (s *ContentService) attach(ctx context.Context, c models.Collection, data map[string]any, img *Upload) error {
	if img == nil || len(img.Data) == 0 {
		return nil
	}
	field, ok := imageFields[c]
	if !ok {
		return validationError("%s records do not take images", c)
	}
	if s.images == nil {
		return ErrUploadsDisabled
	}
	url, err := s.images.Put(ctx, img.FileName, img.ContentType, img.Data)
	if err != nil {
		return fmt.Errorf("store image: %w", err)
	}
	s.logger.Debug(ctx, "image stored", "collection", c, "url", url)
	data[field] = url
	return nil
}

func clean(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if !slices.Contains(reservedFields, k) {
			out[k] = v
		}
	}
	return out
}

func str(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return strings.TrimSpace(s)
}

func applyDefaults(c models.Collection, data map[string]any) {
	setDefault := func(key string, v any) {
		if _, ok := data[key]; !ok {
			data[key] = v
		}
	}

	switch c {
	case models.CollectionFinance, models.CollectionSupport:
		setDefault("status", "pending")
	case models.CollectionContact:
		setDefault("status", "Unread")
		setDefault("opened", false)
		if email := str(data, "email"); email != "" {
			data["email"] = strings.ToLower(email)
		}
	case models.CollectionTicker:
		setDefault("category", "Market")
		setDefault("isManual", true)
	}
}

type rule struct {
	required []string
	enums    map[string][]string
}

var rules = map[models.Collection]rule{
	models.CollectionArticles:  {required: []string{"headline"}},
	models.CollectionTeam:      {required: []string{"name", "role"}},
	models.CollectionCampaigns: {required: []string{"headline"}},
	models.CollectionTicker: {
		required: []string{"text"},
		enums:    map[string][]string{"category": tickerCategories},
	},
	models.CollectionCarousel: {
		required: []string{"title", "type"},
		enums:    map[string][]string{"type": carouselTypes},
	},
	models.CollectionFinance: {
		required: []string{"fullName", "email", "phone", "businessName", "financialProduct"},
		enums:    map[string][]string{"status": applicationStatuses},
	},
	models.CollectionSupport: {
		required: []string{"fullName", "email", "phone", "businessName", "advisoryPillars"},
		enums:    map[string][]string{"status": applicationStatuses},
	},
	models.CollectionContact: {
		required: []string{"email"},
		enums:    map[string][]string{"status": contactStatuses},
	},
}

// validate checks data against the collection's rule. On create every
// required field must be set; on update only the fields present are checked.
func validate(c models.Collection, data map[string]any, create bool) error {
	r := rules[c]

	for _, key := range r.required {
		v, present := data[key]
		if !present && !create {
			continue
		}
		if s, ok := v.(string); !ok || strings.TrimSpace(s) == "" {
			return validationError("%s is required", key)
		}
	}

	for key, allowed := range r.enums {
		v, present := data[key]
		if !present {
			continue
		}
		if s, ok := v.(string); !ok || !slices.Contains(allowed, s) {
			return validationError("%s must be one of %s", key, strings.Join(allowed, ", "))
		}
	}

	if c == models.CollectionFinance {
		if bvn := str(data, "bvn"); bvn != "" && !isDigits(bvn, 11) {
			return validationError("bvn must be 11 digits")
		}
	}
	return nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
