// Package httpapi exposes the CASIEC REST backend: sign-in with a second
// factor and CRUD over the content collections.
package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/casiec/internal/logging"
	"github.com/dmitrijs2005/casiec/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// collections anyone may read
var publicReads = map[models.Collection]bool{
	models.CollectionArticles:  true,
	models.CollectionTeam:      true,
	models.CollectionCampaigns: true,
	models.CollectionTicker:    true,
	models.CollectionCarousel:  true,
}

// collections anyone may write to
var publicWrites = map[models.Collection]bool{
	models.CollectionFinance: true,
	models.CollectionSupport: true,
	models.CollectionContact: true,
}

type RouterOptions struct {
	AllowedOrigins []string
}

func NewRouter(authSvc AuthService, contentSvc ContentService, logger logging.Logger, opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	requireAuth := BearerAuth(authSvc)

	ah := NewAuthHandler(authSvc, logger.With("module", "auth_handler"))
	r.Route("/auth", func(rr chi.Router) {
		rr.Post("/login", ah.Login)
		rr.Post("/verify-2fa", ah.Verify2FA)
		rr.Post("/refresh", ah.Refresh)
		rr.With(requireAuth).Post("/logout", ah.Logout)
	})

	ch := NewContentHandler(contentSvc, logger.With("module", "content_handler"))
	for _, c := range models.Collections {
		read := r.With()
		if !publicReads[c] {
			read = r.With(requireAuth)
		}
		write := r.With()
		if !publicWrites[c] {
			write = r.With(requireAuth)
		}

		base := "/" + string(c)
		read.Get(base, ch.List(c))
		read.Get(base+"/{id}", ch.Get(c))
		write.Post(base, ch.Create(c))
		r.With(requireAuth).Patch(base+"/{id}", ch.Update(c))
		r.With(requireAuth).Delete(base+"/{id}", ch.Delete(c))
	}
	r.With(requireAuth).Put("/"+string(models.CollectionContact)+"/{id}/opened", ch.MarkOpened)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})
	return r
}
