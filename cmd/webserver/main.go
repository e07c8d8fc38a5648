package main

import (
	"encoding/gob"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"

	"mcqgenerator"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
)

type Server struct {
	cfg        mcqgenerator.Config
	db         *mcqgenerator.DB
	store      *sessions.FilesystemStore
	client     *http.Client
	generator  *mcqgenerator.Generator
	templates  map[string]*template.Template
	pdfSupport bool
}

func init() {
	gob.Register(mcqgenerator.MCQSet{})
	gob.Register(mcqgenerator.TestOutcome{})
}

func main() {
	cfg := mcqgenerator.FromEnv()
	mcqgenerator.SetVerbose(cfg.Verbose)

	// Initialize database
	db, err := mcqgenerator.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Create tables
	if err := db.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	// Initialize session store
	if err := os.MkdirAll(cfg.SessionDir, 0o700); err != nil {
		log.Fatalf("Failed to create session directory: %v", err)
	}
	store := sessions.NewFilesystemStore(cfg.SessionDir, []byte(cfg.SessionSecret))
	// Question sets exceed the default 4KB session limit
	store.MaxLength(1 << 20)

	server := &Server{
		cfg:        cfg,
		db:         db,
		store:      store,
		client:     mcqgenerator.NewHTTPClient(),
		generator:  mcqgenerator.NewGenerator(db),
		templates:  loadTemplates(),
		pdfSupport: mcqgenerator.PDFSupported(),
	}

	if server.pdfSupport {
		log.Printf("PDF support enabled")
	} else {
		log.Printf("PDF support disabled (pdftotext not found)")
	}

	log.Printf("Starting server on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, server.routes()))
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(s.recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/generate", s.handleGenerate)
	r.Get("/result", s.handleResult)
	r.Get("/download_pdf", s.handleDownloadPDF)
	r.Get("/test_mode", s.handleTestMode)
	r.Post("/submit_test", s.handleSubmitTest)
	r.Get("/test_results", s.handleTestResults)
	r.Get("/analytics", s.handleAnalytics)
	r.Get("/export_json", s.handleExportJSON)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("ok")) })
	r.NotFound(s.handleNotFound)

	return r
}

// recoverer turns panics into the 500 page; the stack stays server-side.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s: %v", r.URL.Path, rec)
				w.WriteHeader(http.StatusInternalServerError)
				if err := s.templates["500"].ExecuteTemplate(w, "base.html", map[string]interface{}{}); err != nil {
					log.Printf("Template error in 500: %v", err)
				}
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func loadTemplates() map[string]*template.Template {
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"printf": fmt.Sprintf,
	}

	templates := make(map[string]*template.Template)

	templateFiles := []struct {
		name string
		file string
	}{
		{"index", "templates/index.html"},
		{"mcqs", "templates/mcqs.html"},
		{"result", "templates/result.html"},
		{"test_mode", "templates/test_mode.html"},
		{"test_results", "templates/test_results.html"},
		{"analytics", "templates/analytics.html"},
		{"404", "templates/404.html"},
		{"500", "templates/500.html"},
	}

	for _, tmpl := range templateFiles {
		templates[tmpl.name] = template.Must(template.New(tmpl.name).Funcs(funcMap).ParseFiles("templates/base.html", tmpl.file))
	}

	return templates
}
