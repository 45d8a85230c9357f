// Package views resolves hash-style locations ("#team", "#article/42") to the
// console's views.
package views

import (
	"strings"
	"sync"
)

type Route string

const (
	RouteHome       Route = "home"
	RouteAbout      Route = "about"
	RouteTeam       Route = "team"
	RouteFunding    Route = "funding"
	RouteSupport    Route = "support"
	RouteInvestment Route = "investment"
	RouteArticles   Route = "articles"
	RouteArticle    Route = "article"
	RouteAdmin      Route = "admin"
)

// Routes lists the plain routes, in menu order. The parameterised article
// route is reached through RouteArticles.
var Routes = []Route{
	RouteHome, RouteAbout, RouteTeam, RouteFunding, RouteSupport,
	RouteInvestment, RouteArticles, RouteAdmin,
}

// View is a resolved location. ArticleID is set only for RouteArticle.
type View struct {
	Route     Route
	ArticleID string
}

func (v View) Hash() string {
	if v.Route == RouteArticle {
		return "#" + string(RouteArticle) + "/" + v.ArticleID
	}
	return "#" + string(v.Route)
}

// Parse resolves a hash. Anything unknown, including "article/" with no id,
// resolves to home.
func Parse(hash string) View {
	h := strings.TrimSpace(hash)
	h = strings.TrimPrefix(h, "#")
	h = strings.Trim(h, "/")

	if id, ok := strings.CutPrefix(h, string(RouteArticle)+"/"); ok {
		if id = strings.TrimSpace(id); id != "" && !strings.Contains(id, "/") {
			return View{Route: RouteArticle, ArticleID: id}
		}
		return View{Route: RouteHome}
	}
	for _, r := range Routes {
		if h == string(r) {
			return View{Route: r}
		}
	}
	return View{Route: RouteHome}
}

// Router holds the current view. It starts at home.
type Router struct {
	mu        sync.RWMutex
	current   View
	listeners []func(View)
}

func NewRouter() *Router {
	return &Router{current: View{Route: RouteHome}}
}

func (r *Router) Current() View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// OnChange registers fn to be called after every change of view.
func (r *Router) OnChange(fn func(View)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Navigate moves to the view named by hash and returns it.
func (r *Router) Navigate(hash string) View {
	v := Parse(hash)
	r.set(v)
	return v
}

// RedirectHome sends the user to the landing view unless already there.
func (r *Router) RedirectHome() {
	if r.Current().Route == RouteHome {
		return
	}
	r.set(View{Route: RouteHome})
}

func (r *Router) set(v View) {
	r.mu.Lock()
	changed := r.current != v
	r.current = v
	listeners := append([]func(View){}, r.listeners...)
	r.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range listeners {
		fn(v)
	}
}
