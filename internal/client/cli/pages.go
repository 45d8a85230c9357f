package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/casiec/internal/client/client"
	"github.com/dmitrijs2005/casiec/internal/client/models"
	"github.com/dmitrijs2005/casiec/internal/client/views"
	"github.com/dmitrijs2005/casiec/internal/client/wizard"
)

// Go navigates to target and renders the resulting view.
func (a *App) Go(ctx context.Context, target string) error {
	v := a.router.Navigate(target)
	return a.render(ctx, v)
}

// render prints a short text listing for v. Every view is fetched afresh;
// a failed fetch is reported as a toast and leaves the page empty.
func (a *App) render(ctx context.Context, v views.View) error {
	printlnFn(heading(v))

	switch v.Route {
	case views.RouteHome:
		a.renderHome(ctx)
	case views.RouteAbout:
		printlnFn("CASIEC provides credit, investment and business support services to Nigerian enterprises.")
		printlnFn("Type 'go team' to meet the people behind it.")
	case views.RouteTeam:
		a.renderTeam(ctx)
	case views.RouteFunding:
		printList(wizard.Products(models.PathFinancial))
		printlnFn("Type 'apply financial' to start an application.")
	case views.RouteSupport:
		printList(wizard.Products(models.PathBusinessSupport))
		printlnFn("Type 'apply support' to request business support.")
	case views.RouteInvestment:
		a.renderCampaigns(ctx)
	case views.RouteArticles:
		a.renderArticles(ctx)
	case views.RouteArticle:
		return a.renderArticle(ctx, v.ArticleID)
	case views.RouteAdmin:
		if !a.isLoggedIn() {
			printlnFn("Staff sign-in required. Type 'login'.")
			return nil
		}
		return a.Dash(ctx)
	}
	return nil
}

func heading(v views.View) string {
	title := string(v.Route)
	if v.Route == views.RouteArticle {
		title = "article " + v.ArticleID
	}
	return "== " + strings.ToUpper(title[:1]) + title[1:] + " =="
}

func printList(items []string) {
	for i, it := range items {
		printlnFn(fmt.Sprintf("%2d. %s", i+1, it))
	}
}

func (a *App) unavailable(ctx context.Context, what string, err error) {
	a.logger.Warn(ctx, "page data unavailable", "collection", what, "error", err)
	a.toasts.Error(client.Message(err, fmt.Sprintf("Could not load %s.", what)))
}

func (a *App) renderHome(ctx context.Context) {
	if items, err := a.content.Ticker(ctx); err != nil {
		a.unavailable(ctx, "ticker", err)
	} else {
		for _, t := range items {
			printlnFn(fmt.Sprintf("[%s] %s", t.Category, t.Text))
		}
	}
	if items, err := a.content.Carousel(ctx); err != nil {
		a.unavailable(ctx, "carousel", err)
	} else {
		for _, c := range items {
			printlnFn(fmt.Sprintf("* %s: %s", c.Title, c.Summary))
		}
	}
	printlnFn("Views: " + routeNames())
}

func routeNames() string {
	names := make([]string, 0, len(views.Routes))
	for _, r := range views.Routes {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}

func (a *App) renderTeam(ctx context.Context) {
	team, err := a.content.Team(ctx)
	if err != nil {
		a.unavailable(ctx, "team", err)
		return
	}
	for _, m := range team {
		line := fmt.Sprintf("%s, %s", m.Name, m.Role)
		if m.Specialization != "" {
			line += " (" + m.Specialization + ")"
		}
		printlnFn(line)
	}
}

func (a *App) renderCampaigns(ctx context.Context) {
	campaigns, err := a.content.Campaigns(ctx)
	if err != nil {
		a.unavailable(ctx, "campaigns", err)
		return
	}
	for _, c := range campaigns {
		printlnFn(fmt.Sprintf("[%s] %s: %s", c.Tag, c.Headline, c.Summary))
	}
}

func (a *App) renderArticles(ctx context.Context) {
	articles, err := a.content.Articles(ctx)
	if err != nil {
		a.unavailable(ctx, "articles", err)
		return
	}
	for _, ar := range articles {
		printlnFn(fmt.Sprintf("%s  %s  %s (%s)", ar.ID, ar.Date, ar.Title, ar.Category))
	}
	printlnFn("Type 'article <id>' to read one.")
}

func (a *App) renderArticle(ctx context.Context, id string) error {
	ar, err := a.content.Article(ctx, id)
	if err != nil {
		a.unavailable(ctx, "article", err)
		return nil
	}
	printlnFn(ar.Title)
	printlnFn(fmt.Sprintf("%s | %s | %s", ar.Author, ar.Date, ar.ReadTime))
	if ar.Excerpt != "" {
		printlnFn(ar.Excerpt)
	}
	printlnFn("")
	printlnFn(ar.Content)
	return nil
}
