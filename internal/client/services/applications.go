package services

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/dmitrijs2005/casiec/internal/client/client"
	"github.com/dmitrijs2005/casiec/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// ApplicationService reads and moderates wizard submissions. Applications
// live in two backend collections; every call that targets one record names
// its category explicitly.
type ApplicationService interface {
	List(ctx context.Context) ([]models.Application, error)
	Submit(ctx context.Context, category models.Category, payload models.ApplicationPayload) error
	UpdateStatus(ctx context.Context, category models.Category, id string, status models.ApplicationStatus) error
	Delete(ctx context.Context, category models.Category, id string) error
}

type applicationService struct {
	api API
}

func NewApplicationService(api API) ApplicationService {
	return &applicationService{api: api}
}

type applicationWire struct {
	ID               string `json:"id"`
	CreatedAt        string `json:"createdAt"`
	FinancialProduct string `json:"financialProduct"`
	AdvisoryPillars  string `json:"advisoryPillars"`
	BusinessName     string `json:"businessName"`
	RegNumber        string `json:"regNumber"`
	IndustryFocus    string `json:"industryFocus"`
	FullName         string `json:"fullName"`
	DesignatedRole   string `json:"designatedRole"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Requirement      string `json:"requirement"`
	Status           string `json:"status"`
}

func (w applicationWire) model(category models.Category) models.Application {
	a := models.Application{
		ID:           w.ID,
		Date:         parseTime(w.CreatedAt),
		BusinessName: w.BusinessName,
		RegNumber:    w.RegNumber,
		Industry:     w.IndustryFocus,
		FullName:     w.FullName,
		Role:         w.DesignatedRole,
		Email:        w.Email,
		Phone:        w.Phone,
		Description:  w.Requirement,
	}
	if category == models.CategoryFinance {
		a.Type, a.Product = models.PathFinancial, w.FinancialProduct
	} else {
		a.Type, a.Product = models.PathBusinessSupport, w.AdvisoryPillars
	}
	st, err := models.ParseApplicationStatus(w.Status)
	if err != nil {
		st = models.StatusPending
	}
	a.Status = st
	return a
}

// List fetches both collections concurrently and returns them merged,
// newest first. Either collection failing fails the whole list.
func (s *applicationService) List(ctx context.Context) ([]models.Application, error) {
	var finance, support []models.Application

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		finance, err = s.listCategory(gctx, models.CategoryFinance)
		return err
	})
	g.Go(func() (err error) {
		support, err = s.listCategory(gctx, models.CategorySupport)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.Application, 0, len(finance)+len(support))
	out = append(out, finance...)
	out = append(out, support...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *applicationService) listCategory(ctx context.Context, category models.Category) ([]models.Application, error) {
	var wire []applicationWire
	if err := s.api.Do(ctx, http.MethodGet, "/"+string(category), nil, &wire); err != nil {
		return nil, fmt.Errorf("list %s applications: %w", category, err)
	}
	out := make([]models.Application, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.model(category))
	}
	return out, nil
}

func (s *applicationService) Submit(ctx context.Context, category models.Category, payload models.ApplicationPayload) error {
	body, err := client.JSONBody(payload)
	if err != nil {
		return err
	}
	if err := s.api.Do(ctx, http.MethodPost, "/"+string(category), body, nil); err != nil {
		return fmt.Errorf("submit %s application: %w", category, err)
	}
	return nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, category models.Category, id string, status models.ApplicationStatus) error {
	body, err := client.JSONBody(map[string]string{"status": status.Wire()})
	if err != nil {
		return err
	}
	if err := s.api.Do(ctx, http.MethodPatch, resourcePath(string(category), id), body, nil); err != nil {
		return fmt.Errorf("update %s application %s: %w", category, id, err)
	}
	return nil
}

func (s *applicationService) Delete(ctx context.Context, category models.Category, id string) error {
	if err := s.api.Do(ctx, http.MethodDelete, resourcePath(string(category), id), nil, nil); err != nil {
		return fmt.Errorf("delete %s application %s: %w", category, id, err)
	}
	return nil
}
