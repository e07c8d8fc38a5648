package mcqgenerator

import (
	"fmt"
	"net/http"
	"os/exec"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	fetchTimeout = 10 * time.Second
	userAgent    = "Mozilla/5.0"

	// MinInputLength is the minimum acquired-text length callers must
	// enforce before handing text to the generator.
	MinInputLength = 50
)

// NewHTTPClient returns the client used for URL acquisition. A single
// failure is terminal for the request; there are no retries.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: fetchTimeout}
}

// ExtractTextFromURL fetches a page and returns its visible text with all
// whitespace runs collapsed to single spaces. Script and style content is
// stripped. Failures are returned embedded in the text as an
// "Error processing URL: ..." string; callers must check with
// HasExtractionError before using the result.
func ExtractTextFromURL(client *http.Client, pageURL string) string {
	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return fmt.Sprintf("Error processing URL: %v", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Sprintf("Error processing URL: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Error processing URL: unexpected status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Sprintf("Error processing URL: %v", err)
	}

	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// pdftotext is an optional capability; we probe for it once at startup.
var pdftotextPath, _ = exec.LookPath("pdftotext")

// PDFSupported reports whether document extraction is available.
func PDFSupported() bool {
	return pdftotextPath != ""
}

// ExtractTextFromPDF extracts the text of a PDF file. Like the URL path,
// failures come back embedded in the returned text as an
// "Error reading PDF: ..." string.
func ExtractTextFromPDF(path string) string {
	if !PDFSupported() {
		return "PDF processing not available. Please install pdftotext."
	}
	out, err := exec.Command(pdftotextPath, path, "-").Output()
	if err != nil {
		return fmt.Sprintf("Error reading PDF: %v", err)
	}
	return strings.TrimSpace(string(out))
}

// HasExtractionError reports whether extracted text carries an embedded
// extraction failure.
func HasExtractionError(text string) bool {
	return strings.Contains(text, "Error")
}
