package main

import (
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"zeromonos.org/zeromonos-web/internal/content"
	"zeromonos.org/zeromonos-web/internal/gateway"
	mw "zeromonos.org/zeromonos-web/internal/middleware"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	contentDir   = "content"
	// devMode is set in main() based on env: ZEROMONOS_WEB_DEV (preferred) or DEV (fallback)
	devMode   bool
	tmplCache *template.Template

	apiClient    *gateway.Client
	muniLoader   *gateway.Loader
	contentStore *content.Store
)

func main() {
	// Flags/environment
	var (
		addr     string
		tmplPath string
		pubPath  string
		cntPath  string
		apiURL   string
	)
	// Port resolution: prefer ZEROMONOS_WEB_PORT, then Cloud Run's PORT, else 8080
	port := os.Getenv("ZEROMONOS_WEB_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}
	api := os.Getenv("ZEROMONOS_API_URL")
	if api == "" {
		api = "http://localhost:8081"
	}
	flag.StringVar(&addr, "addr", ":"+port, "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", templatesDir, "templates directory")
	flag.StringVar(&pubPath, "public", publicDir, "public assets directory")
	flag.StringVar(&cntPath, "content", contentDir, "info pages directory")
	flag.StringVar(&apiURL, "api", api, "booking API base URL")
	flag.Parse()

	templatesDir = tmplPath
	publicDir = pubPath
	contentDir = cntPath

	// Dev mode: prefer ZEROMONOS_WEB_DEV, fallback to DEV
	devMode = os.Getenv("ZEROMONOS_WEB_DEV") != "" || os.Getenv("DEV") != ""

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			log.Fatalf("parse templates: %v", err)
		}
		tmplCache = tc
	}

	apiClient = gateway.NewClient(apiURL)
	muniLoader = gateway.NewLoader(apiClient)
	contentStore = content.NewStore(contentDir)

	r := newRouter()

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("web listening on %s (devMode=%v, api=%s)", addr, devMode, apiURL)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %v", err)
	}
}

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(middleware.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Session)
	r.Use(mw.CSRF)
	r.Use(mw.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Static assets under /assets/
	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets")))
	r.Handle("/assets/*", assets)

	// Home page
	r.Get("/", HomeHandler)

	// Booking flow
	r.Get("/booking/new", BookingNewHandler)
	r.Post("/booking", BookingCreateHandler)
	r.Get("/booking/suggest", SuggestFrag)

	// Lookup and cancellation
	r.Get("/booking/lookup", LookupHandler)
	r.Get("/booking/lookup/result", LookupResultFrag)
	r.Post("/booking/{token}/cancel", BookingCancelHandler)

	// Staff dashboard
	r.Get("/staff", StaffHandler)
	r.Get("/staff/table", StaffTableFrag)
	r.Post("/staff/bookings/{token}/status", StaffStatusUpdateHandler)
	r.Get("/staff/bookings/{token}/history", StaffHistoryFrag)

	// Error page
	r.Get("/error", ErrorHandler)

	// Info pages
	r.Get("/info/{slug}", InfoHandler)

	r.NotFound(NotFoundHandler)

	return r
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

func templates() (*template.Template, error) {
	if devMode {
		return parseTemplates()
	}
	if tmplCache == nil {
		return nil, fmt.Errorf("template cache not initialized")
	}
	return tmplCache, nil
}

// renderTemplate executes a single named template (pages and fragments
// alike). In dev mode, templates are reparsed on each request.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	t, err := templates()
	if err != nil {
		http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
		return
	}
}

// renderPage executes a full-document page template.
func renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	renderTemplate(w, r, "page_"+name, data)
}
