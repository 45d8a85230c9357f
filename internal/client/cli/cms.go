package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/casiec/internal/client/client"
	"github.com/dmitrijs2005/casiec/internal/client/models"
)

// readFile is a test seam for loading images picked for upload.
var readFile = os.ReadFile

const cmsUsage = "usage: cms <articles|team|campaigns|carousel|ticker|applications|inquiries|subscribers> [new|edit <id>|delete <id>]"

// CMS lists a collection or creates, edits or deletes one of its records.
func (a *App) CMS(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(cmsUsage)
	}
	collection, action, id := args[0], "", ""
	if len(args) > 1 {
		action = args[1]
	}
	if len(args) > 2 {
		id = args[2]
	}
	if (action == "edit" || action == "delete") && id == "" {
		return fmt.Errorf("usage: cms %s %s <id>", collection, action)
	}

	switch collection {
	case "articles":
		return a.cmsArticles(ctx, action, id)
	case "team":
		return a.cmsTeam(ctx, action, id)
	case "campaigns":
		return a.cmsCampaigns(ctx, action, id)
	case "carousel":
		return a.cmsCarousel(ctx, action, id)
	case "ticker":
		return a.cmsTicker(ctx, action, id)
	case "applications":
		for _, app := range a.board.Refresh(ctx).Applications {
			printApplicationLine(app)
		}
		return nil
	case "inquiries":
		for _, in := range a.board.Refresh(ctx).Inquiries {
			printInquiryLine(in)
		}
		return nil
	case "subscribers":
		return a.listSubscribers(ctx)
	}
	return errors.New(cmsUsage)
}

func findByID[T any](items []T, id string, idOf func(T) string) (T, error) {
	for _, it := range items {
		if idOf(it) == id {
			return it, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("record %s not found", id)
}

func (a *App) confirmDelete(what string) (bool, error) {
	return GetConfirm(a.reader, fmt.Sprintf("Delete %s?", what), a.out)
}

func unknownAction(action string) error {
	return fmt.Errorf("unknown action %q (want new, edit or delete)", action)
}

// askImage reads an optional image path. An empty answer uploads nothing.
func (a *App) askImage() (*models.Image, error) {
	path, err := GetSimpleText(a.reader, "Image file (optional)", a.out)
	if err != nil || path == "" {
		return nil, err
	}
	data, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return &models.Image{FileName: filepath.Base(path), Data: data}, nil
}

// fields prompts for each value in turn, showing the current one.
func (a *App) fields(prompts []string, values ...*string) error {
	for i, p := range prompts {
		v, err := GetWithDefault(a.reader, p, *values[i], a.out)
		if err != nil {
			return err
		}
		*values[i] = v
	}
	return nil
}

func (a *App) cmsArticles(ctx context.Context, action, id string) error {
	articles := a.snapshot(ctx).Articles
	switch action {
	case "":
		for _, ar := range articles {
			printlnFn(fmt.Sprintf("  %s  %s  %s (%s, %s)", ar.ID, ar.Date, ar.Title, ar.Category, ar.Author))
		}
		return nil
	case "delete":
		ok, err := a.confirmDelete("article " + id)
		if err != nil || !ok {
			return err
		}
		_ = a.board.DeleteArticle(ctx, id)
		return nil
	case "new", "edit":
	default:
		return unknownAction(action)
	}

	var ar models.Article
	if action == "edit" {
		var err error
		if ar, err = findByID(articles, id, func(a models.Article) string { return a.ID }); err != nil {
			return err
		}
	}
	if err := a.fields(
		[]string{"Title", "Category", "Excerpt", "Author", "Read time"},
		&ar.Title, &ar.Category, &ar.Excerpt, &ar.Author, &ar.ReadTime,
	); err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", ar.Content, a.out)
	if err != nil {
		return err
	}
	ar.Content = content
	img, err := a.askImage()
	if err != nil {
		return err
	}
	_ = a.board.SaveArticle(ctx, ar, img)
	return nil
}

func (a *App) cmsTeam(ctx context.Context, action, id string) error {
	team := a.snapshot(ctx).Team
	switch action {
	case "":
		for _, m := range team {
			printlnFn(fmt.Sprintf("  %s  %s, %s", m.ID, m.Name, m.Role))
		}
		return nil
	case "delete":
		ok, err := a.confirmDelete("team member " + id)
		if err != nil || !ok {
			return err
		}
		_ = a.board.DeleteTeamMember(ctx, id)
		return nil
	case "new", "edit":
	default:
		return unknownAction(action)
	}

	var m models.TeamMember
	if action == "edit" {
		var err error
		if m, err = findByID(team, id, func(m models.TeamMember) string { return m.ID }); err != nil {
			return err
		}
	}
	if err := a.fields(
		[]string{"Name", "Role", "Specialization", "Bio", "Email", "LinkedIn URL", "Twitter URL"},
		&m.Name, &m.Role, &m.Specialization, &m.Bio, &m.Email, &m.LinkedIn, &m.Twitter,
	); err != nil {
		return err
	}
	img, err := a.askImage()
	if err != nil {
		return err
	}
	_ = a.board.SaveTeamMember(ctx, m, img)
	return nil
}

func (a *App) cmsCampaigns(ctx context.Context, action, id string) error {
	campaigns := a.snapshot(ctx).Campaigns
	switch action {
	case "":
		for _, c := range campaigns {
			printlnFn(fmt.Sprintf("  %s  [%s] %s", c.ID, c.Tag, c.Headline))
		}
		return nil
	case "delete":
		ok, err := a.confirmDelete("campaign " + id)
		if err != nil || !ok {
			return err
		}
		_ = a.board.DeleteCampaign(ctx, id)
		return nil
	case "new", "edit":
	default:
		return unknownAction(action)
	}

	var c models.Campaign
	if action == "edit" {
		var err error
		if c, err = findByID(campaigns, id, func(c models.Campaign) string { return c.ID }); err != nil {
			return err
		}
	}
	if err := a.fields(
		[]string{"Headline", "Summary", "Tag", "Context type", "Link URL"},
		&c.Headline, &c.Summary, &c.Tag, &c.ContextType, &c.URL,
	); err != nil {
		return err
	}
	img, err := a.askImage()
	if err != nil {
		return err
	}
	_ = a.board.SaveCampaign(ctx, c, img)
	return nil
}

var carouselTypes = []string{
	string(models.CarouselNews), string(models.CarouselEco), string(models.CarouselAdvert),
	string(models.CarouselProduct), string(models.CarouselCustomer),
}

func (a *App) cmsCarousel(ctx context.Context, action, id string) error {
	items := a.snapshot(ctx).Carousel
	switch action {
	case "":
		for _, c := range items {
			printlnFn(fmt.Sprintf("  %s  %-8s %s", c.ID, c.Type, c.Title))
		}
		return nil
	case "delete":
		ok, err := a.confirmDelete("slide " + id)
		if err != nil || !ok {
			return err
		}
		_ = a.board.DeleteCarouselItem(ctx, id)
		return nil
	case "new", "edit":
	default:
		return unknownAction(action)
	}

	item := models.CarouselItem{Type: models.CarouselNews}
	if action == "edit" {
		var err error
		if item, err = findByID(items, id, func(c models.CarouselItem) string { return c.ID }); err != nil {
			return err
		}
	}
	kind, err := GetChoice(a.reader, "Slide type", carouselTypes, string(item.Type), a.out)
	if err != nil {
		return err
	}
	if item.Type, err = models.ParseCarouselType(kind); err != nil {
		return err
	}
	if err := a.fields(
		[]string{"Title", "Summary", "Tag", "Link", "Link text", "Stat label", "Stat value", "Image URL"},
		&item.Title, &item.Summary, &item.Tag, &item.Link, &item.LinkText,
		&item.StatLabel, &item.StatValue, &item.ImageURL,
	); err != nil {
		return err
	}
	_ = a.board.SaveCarouselItem(ctx, item)
	return nil
}

var tickerCategories = []string{
	string(models.TickerMarket), string(models.TickerCorporate), string(models.TickerUrgent),
}

func (a *App) cmsTicker(ctx context.Context, action, id string) error {
	switch action {
	case "":
		for _, t := range a.snapshot(ctx).Ticker {
			printlnFn(fmt.Sprintf("  %s  [%s] %s", t.ID, t.Category, t.Text))
		}
		return nil
	case "delete":
		ok, err := a.confirmDelete("ticker item " + id)
		if err != nil || !ok {
			return err
		}
		_ = a.board.DeleteTicker(ctx, id)
		return nil
	case "new":
	default:
		return fmt.Errorf("unknown action %q (want new or delete)", action)
	}

	text, err := GetSimpleText(a.reader, "Headline", a.out)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		a.toasts.Error("Ticker text cannot be empty.")
		return nil
	}
	category, err := GetChoice(a.reader, "Category", tickerCategories, string(models.TickerMarket), a.out)
	if err != nil {
		return err
	}
	_ = a.board.PostTicker(ctx, text, models.TickerCategory(category))
	return nil
}

func (a *App) listSubscribers(ctx context.Context) error {
	subs, err := a.inquiries.Subscriptions(ctx)
	if err != nil {
		a.toasts.Error(client.Message(err, "Could not load subscribers."))
		return nil
	}
	for _, s := range subs {
		printlnFn(fmt.Sprintf("  %s  %s (%s)", s.ID, s.Email, formatDate(s.Date)))
	}
	return nil
}
