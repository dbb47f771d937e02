// Package document downloads PDFs from URLs and extracts their text.
package document

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Fetcher downloads a PDF from a URL into a temporary file, enforcing a size
// cap and a request timeout, and extracts its text page by page.
type Fetcher struct {
	maxBytes   int64
	httpClient *http.Client
}

// NewFetcher creates a fetcher with the given size cap (in MiB) and timeout.
func NewFetcher(maxSizeMB int, timeout time.Duration) *Fetcher {
	if maxSizeMB <= 0 {
		maxSizeMB = 50
	}
	return &Fetcher{
		maxBytes: int64(maxSizeMB) * 1024 * 1024,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchAndExtract downloads the PDF at rawURL and returns its extracted text.
// The downloaded file is removed before returning; removal failures are
// ignored. All errors are *FetchError values.
func (f *Fetcher) FetchAndExtract(ctx context.Context, rawURL string) (string, error) {
	path, err := f.download(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer cleanup(path)

	text, err := extractText(path)
	if err != nil {
		return "", newFetchError(KindNoText, "failed to extract text from PDF", err)
	}
	return text, nil
}

// download fetches the URL into a temporary file and returns its path.
func (f *Fetcher) download(ctx context.Context, rawURL string) (string, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "", newFetchError(KindTransport, "invalid URL: must start with http:// or https://", nil)
	}

	rawURL = rewriteGoogleDriveURL(rawURL)

	// Size precheck. Some servers reject HEAD; failures here are not fatal.
	if length, ok := f.contentLength(ctx, rawURL); ok && length > f.maxBytes {
		return "", newFetchError(KindTooLarge,
			fmt.Sprintf("PDF file too large: %.2f MB", float64(length)/(1024*1024)), nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", newFetchError(KindTransport, "failed to create request", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", newFetchError(KindTransport, "failed to download PDF", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", newFetchError(KindNotFound, "PDF not found at URL", nil)
	}
	if resp.StatusCode != http.StatusOK {
		return "", newFetchError(KindTransport,
			fmt.Sprintf("download failed with status %d", resp.StatusCode), nil)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "pdf") && !strings.HasSuffix(strings.ToLower(rawURL), ".pdf") {
		return "", newFetchError(KindNotPDF,
			fmt.Sprintf("URL does not point to a PDF file (content-type: %s)", contentType), nil)
	}

	tmp, err := os.CreateTemp("", "docqa-*.pdf")
	if err != nil {
		return "", newFetchError(KindTransport, "failed to create temporary file", err)
	}

	// Read one byte past the cap so an oversized body is detected even when
	// the server omits Content-Length.
	written, err := io.Copy(tmp, io.LimitReader(resp.Body, f.maxBytes+1))
	closeErr := tmp.Close()
	if err != nil {
		cleanup(tmp.Name())
		return "", newFetchError(KindTransport, "failed to save PDF", err)
	}
	if closeErr != nil {
		cleanup(tmp.Name())
		return "", newFetchError(KindTransport, "failed to save PDF", closeErr)
	}
	if written > f.maxBytes {
		cleanup(tmp.Name())
		return "", newFetchError(KindTooLarge,
			fmt.Sprintf("PDF file too large: exceeded %.2f MB", float64(f.maxBytes)/(1024*1024)), nil)
	}

	return tmp.Name(), nil
}

// contentLength issues a HEAD request and reports the advertised size.
func (f *Fetcher) contentLength(ctx context.Context, rawURL string) (int64, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return 0, false
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()

	length, err := strconv.ParseInt(resp.Header.Get("Content-Length"), 10, 64)
	if err != nil || length <= 0 {
		return 0, false
	}
	return length, true
}

// rewriteGoogleDriveURL converts a Google Drive viewer link into a direct
// download link. Other URLs pass through unchanged.
func rewriteGoogleDriveURL(rawURL string) string {
	if !strings.Contains(rawURL, "drive.google.com") || !strings.Contains(rawURL, "/view") {
		return rawURL
	}
	_, rest, ok := strings.Cut(rawURL, "/d/")
	if !ok {
		return rawURL
	}
	fileID, _, _ := strings.Cut(rest, "/")
	if fileID == "" {
		return rawURL
	}
	return "https://drive.google.com/uc?export=download&id=" + fileID
}

// cleanup removes a downloaded file, ignoring errors.
func cleanup(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
