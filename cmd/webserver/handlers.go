package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"mcqgenerator"

	"github.com/gorilla/sessions"
)

const sessionName = "mcq-session"

const (
	sessionKeyMCQs    = "mcqs"
	sessionKeyResults = "test_results"
)

func (s *Server) session(r *http.Request) *sessions.Session {
	// An undecodable cookie yields a fresh session, which is fine here.
	sess, _ := s.store.Get(r, sessionName)
	return sess
}

// flashAndRedirect records a user-facing notice and sends the caller back
// to the entry point. This is the failure path for the whole route table.
func (s *Server) flashAndRedirect(w http.ResponseWriter, r *http.Request, msg string) {
	sess := s.session(r)
	sess.AddFlash(msg)
	if err := sess.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// render executes a page template against base.html, draining any pending
// flash notices into the page data.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}

	sess := s.session(r)
	if flashes := sess.Flashes(); len(flashes) > 0 {
		data["Flashes"] = flashes
		if err := sess.Save(r, w); err != nil {
			log.Printf("Session save error: %v", err)
		}
	}

	if err := s.templates[name].ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Template error in %s: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

// currentSet returns the session's active question set, if any.
func (s *Server) currentSet(r *http.Request) (mcqgenerator.MCQSet, bool) {
	sess := s.session(r)
	v, ok := sess.Values[sessionKeyMCQs]
	if !ok {
		return mcqgenerator.MCQSet{}, false
	}
	set, ok := v.(mcqgenerator.MCQSet)
	if !ok || len(set.MCQs) == 0 {
		return mcqgenerator.MCQSet{}, false
	}
	return set, true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "index", map[string]interface{}{
		"PDFSupport": s.pdfSupport,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	// Multipart when a file is attached, urlencoded otherwise.
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		if err := r.ParseForm(); err != nil {
			s.flashAndRedirect(w, r, "Invalid form submission.")
			return
		}
	}

	textInput := strings.TrimSpace(r.FormValue("manual_input"))
	urlInput := strings.TrimSpace(r.FormValue("url_link"))

	numQuestions := 5
	if v := r.FormValue("num_questions"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			numQuestions = n
		}
	}
	if numQuestions > mcqgenerator.MaxQuestions {
		s.flashAndRedirect(w, r, "Maximum 30 questions allowed.")
		return
	}

	// First non-empty source wins; the others are ignored.
	text := ""
	source := "Text Input"
	switch {
	case textInput != "":
		text = textInput
	case urlInput != "":
		text = mcqgenerator.ExtractTextFromURL(s.client, urlInput)
		source = "URL: " + urlInput
		if mcqgenerator.HasExtractionError(text) {
			s.flashAndRedirect(w, r, text)
			return
		}
	default:
		extracted, pdfSource, err := s.extractUpload(r)
		if err != nil {
			s.flashAndRedirect(w, r, err.Error())
			return
		}
		if pdfSource != "" {
			text = extracted
			source = pdfSource
		}
	}

	if len(text) < mcqgenerator.MinInputLength {
		s.flashAndRedirect(w, r, "Please provide sufficient text (50+ characters).")
		return
	}

	set := s.generator.Generate(text, source, numQuestions)

	sess := s.session(r)
	sess.Values[sessionKeyMCQs] = *set
	if err := sess.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}

	mcqgenerator.VerboseLog("Generated %d MCQs and stored in session", len(set.MCQs))

	s.render(w, r, "mcqs", map[string]interface{}{
		"MCQs":         set.MCQs,
		"InputText":    set.TextPreview,
		"NumGenerated": len(set.MCQs),
		"InputSource":  set.Source,
	})
}

// extractUpload pulls text out of an uploaded document, if one was sent
// and the extraction capability is available. Returns an empty source
// when no usable upload was present.
func (s *Server) extractUpload(r *http.Request) (text, source string, err error) {
	file, header, ferr := r.FormFile("pdf_file")
	if ferr != nil || header.Filename == "" {
		return "", "", nil
	}
	defer file.Close()

	if !s.pdfSupport {
		return "", "", nil
	}

	// pdftotext works on files, so spill the upload to a temp file.
	tmp, terr := os.CreateTemp("", "upload-*.pdf")
	if terr != nil {
		return "", "", fmt.Errorf("Error reading PDF: %v", terr)
	}
	defer os.Remove(tmp.Name())

	if _, cerr := io.Copy(tmp, file); cerr != nil {
		tmp.Close()
		return "", "", fmt.Errorf("Error reading PDF: %v", cerr)
	}
	tmp.Close()

	text = mcqgenerator.ExtractTextFromPDF(tmp.Name())
	source = "PDF: " + header.Filename
	if mcqgenerator.HasExtractionError(text) {
		return "", "", fmt.Errorf("%s", text)
	}
	return text, source, nil
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	set, _ := s.currentSet(r)
	analytics := s.db.GetAnalytics()

	categoryCounts := map[string]int{}
	difficultyCounts := map[string]int{}
	for _, mcq := range set.MCQs {
		categoryCounts[string(mcq.Category)]++
		difficultyCounts[string(mcq.Difficulty)]++
	}

	s.render(w, r, "result", map[string]interface{}{
		"MCQs":             set.MCQs,
		"InputSource":      set.Source,
		"InputText":        set.TextPreview,
		"Analytics":        analytics,
		"CategoryCounts":   categoryCounts,
		"DifficultyCounts": difficultyCounts,
	})
}

func (s *Server) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	set, _ := s.currentSet(r)
	data, err := mcqgenerator.RenderPDF(&set)
	if err != nil {
		log.Printf("PDF render error: %v", err)
		http.Error(w, "PDF Error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename=mcqs.pdf`)
	w.Write(data)
}

func (s *Server) handleTestMode(w http.ResponseWriter, r *http.Request) {
	set, ok := s.currentSet(r)
	if !ok {
		s.flashAndRedirect(w, r, "Please generate MCQs first.")
		return
	}

	// One minute per question.
	timer := len(set.MCQs) * 60

	s.render(w, r, "test_mode", map[string]interface{}{
		"MCQs":  set.MCQs,
		"Timer": timer,
	})
}

func (s *Server) handleSubmitTest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.flashAndRedirect(w, r, "Invalid form submission.")
		return
	}

	set, ok := s.currentSet(r)
	if !ok {
		s.flashAndRedirect(w, r, "No MCQs found. Please generate questions first.")
		return
	}

	answers := make(map[int]string, len(set.MCQs))
	for i := range set.MCQs {
		answers[i+1] = r.FormValue(fmt.Sprintf("q%d", i+1))
	}

	outcome := mcqgenerator.GradeTest(set.MCQs, answers)

	// Storage failure never blocks the submission.
	if err := s.db.SaveTestResult(outcome.Score, outcome.Total); err != nil {
		log.Printf("Test save error: %v", err)
	}

	sess := s.session(r)
	sess.Values[sessionKeyResults] = outcome
	if err := sess.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}

	mcqgenerator.VerboseLog("Test completed: %d/%d (%.1f%%)", outcome.Score, outcome.Total, outcome.Percentage)

	http.Redirect(w, r, "/test_results", http.StatusSeeOther)
}

func (s *Server) handleTestResults(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	v, ok := sess.Values[sessionKeyResults]
	if !ok {
		s.flashAndRedirect(w, r, "No test results found. Please take a test first.")
		return
	}
	outcome, ok := v.(mcqgenerator.TestOutcome)
	if !ok {
		s.flashAndRedirect(w, r, "No test results found. Please take a test first.")
		return
	}

	s.render(w, r, "test_results", map[string]interface{}{
		"Results": outcome,
	})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "analytics", map[string]interface{}{
		"Analytics": s.db.GetAnalytics(),
	})
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	set, _ := s.currentSet(r)
	doc := mcqgenerator.BuildExport(&set)

	data, err := json.Marshal(doc)
	if err != nil {
		log.Printf("Export error: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	if err := s.templates["404"].ExecuteTemplate(w, "base.html", map[string]interface{}{}); err != nil {
		log.Printf("Template error in 404: %v", err)
	}
}
