package rest

import (
	"net/http"

	"github.com/dmitrijs2005/bazaarbuddy/internal/common"
	"github.com/dmitrijs2005/bazaarbuddy/internal/logging"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/auth"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// API holds the handlers' dependencies.
type API struct {
	products *services.ProductService
	users    *services.UserService
	images   *services.ImageService
	verifier *auth.Verifier
	logger   logging.Logger
}

func NewAPI(ps *services.ProductService, us *services.UserService, is *services.ImageService, v *auth.Verifier, l logging.Logger) *API {
	return &API{
		products: ps,
		users:    us,
		images:   is,
		verifier: v,
		logger:   l.With("module", "rest"),
	}
}

// Router builds the chi routing tree with the baseline middleware.
func (a *API) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(a.logger, requestLogOpts{
		SkipPaths:     []string{"/healthz"},
		RedactHeaders: []string{common.AuthTokenHeaderName, "Authorization", "Cookie"},
	}))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", common.AuthTokenHeaderName},
		MaxAge:         300,
	}))

	r.Get("/", a.root)
	r.Get("/healthz", a.healthz)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", a.listProducts)
		r.Post("/", a.requireAuth(a.createProduct))
		r.Get("/{id}", a.getProduct)
		r.Put("/{id}/sold", a.requireAuth(a.markSold))
		r.Delete("/{id}", a.requireAuth(a.deleteProduct))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", a.register)
		r.Post("/login", a.login)
		r.Get("/me", a.requireAuth(a.me))
	})

	r.Post("/api/uploads/images", a.requireAuth(a.newImageUpload))

	return r
}

func (a *API) root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("BazaarBuddy API is running..."))
}

func (a *API) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
