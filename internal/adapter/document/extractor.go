package document

import (
	"errors"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractText reads the PDF at path and returns the text of all pages joined
// by blank lines. It fails when the file is not a readable PDF or contains no
// extractable text.
func extractText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if reader.NumPage() == 0 {
		return "", errors.New("PDF file is empty (no pages)")
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the whole document.
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}

	full := strings.Join(pages, "\n\n")
	if strings.TrimSpace(full) == "" {
		return "", errors.New("PDF contains no extractable text")
	}
	return full, nil
}
