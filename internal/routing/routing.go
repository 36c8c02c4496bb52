package routing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"storefront/pkg/handlers"
	"storefront/pkg/response"
)

const shutdownTimeout = 10 * time.Second

type Handlers struct {
	Auth       *handlers.AuthHandler
	Products   *handlers.ProductHandler
	Categories *handlers.CategoryHandler
	Cart       *handlers.CartHandler
	Images     *handlers.ImageHandler
}

// InitRoutes registers the /api routes on api. Mutating catalog and image
// routes go through admin.
func InitRoutes(api *mux.Router, h Handlers, admin mux.MiddlewareFunc) {
	adminOnly := func(fn http.HandlerFunc) http.Handler {
		return admin(fn)
	}

	authRouter := api.PathPrefix("/auth").Subrouter()
	productsRouter := api.PathPrefix("/products").Subrouter()
	categoriesRouter := api.PathPrefix("/categories").Subrouter()
	cartRouter := api.PathPrefix("/cart").Subrouter()

	/* auth routers */
	authRouter.HandleFunc("/register", h.Auth.Register).Methods(http.MethodPost).Name("register")
	authRouter.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost).Name("login")
	authRouter.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost).Name("logout")
	authRouter.HandleFunc("/me", h.Auth.Me).Methods(http.MethodGet).Name("me")

	/* products routers */
	productsRouter.HandleFunc("", h.Products.List).Methods(http.MethodGet).Name("products")
	productsRouter.Handle("", adminOnly(h.Products.Create)).Methods(http.MethodPost)
	productsRouter.HandleFunc("/featured", h.Products.Featured).Methods(http.MethodGet).Name("featured")
	productsRouter.HandleFunc("/{id}", h.Products.Get).Methods(http.MethodGet).Name("product")
	productsRouter.Handle("/{id}", adminOnly(h.Products.Update)).Methods(http.MethodPut)
	productsRouter.Handle("/{id}", adminOnly(h.Products.Delete)).Methods(http.MethodDelete)
	productsRouter.HandleFunc("/{id}/related", h.Products.Related).Methods(http.MethodGet).Name("related")

	/* categories routers */
	categoriesRouter.HandleFunc("", h.Categories.List).Methods(http.MethodGet).Name("categories")
	categoriesRouter.Handle("", adminOnly(h.Categories.Create)).Methods(http.MethodPost)
	categoriesRouter.HandleFunc("/{id}", h.Categories.Get).Methods(http.MethodGet).Name("category")
	categoriesRouter.Handle("/{id}", adminOnly(h.Categories.Update)).Methods(http.MethodPut)
	categoriesRouter.Handle("/{id}", adminOnly(h.Categories.Delete)).Methods(http.MethodDelete)

	/* cart routers */
	cartRouter.HandleFunc("", h.Cart.Get).Methods(http.MethodGet).Name("cart")
	cartRouter.HandleFunc("", h.Cart.Add).Methods(http.MethodPost)
	cartRouter.HandleFunc("", h.Cart.Update).Methods(http.MethodPut)
	cartRouter.HandleFunc("", h.Cart.Remove).Methods(http.MethodDelete)

	/* image routers */
	api.Handle("/upload", adminOnly(h.Images.Upload)).Methods(http.MethodPost).Name("upload")
	api.HandleFunc("/images/{id}", h.Images.Get).Methods(http.MethodGet).Name("image")
	api.Handle("/images/{id}", adminOnly(h.Images.Delete)).Methods(http.MethodDelete)
}

func ServeStaticFiles(r *mux.Router, dir string) {
	fs := http.FileServer(http.Dir(dir))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))
}

// ServeFallback answers unknown /api and /static paths with a JSON 404 and
// hands every other path to the client bundle's index.html.
func ServeFallback(r *mux.Router, dir string) {
	index := filepath.Join(dir, "html", "index.html")
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/static/") {
			response.Error(w, http.StatusNotFound, "Not found")
			return
		}
		http.ServeFile(w, r, index)
	})
}

func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// StartServer serves until ctx is cancelled, then drains in-flight requests.
func StartServer(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
