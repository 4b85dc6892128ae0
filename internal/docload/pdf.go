package docload

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// fromPDF extracts plain text page by page. A page that fails to extract
// is skipped and counted rather than aborting the whole document; scanned
// or partially corrupt PDFs still yield whatever text the good pages hold.
func fromPDF(path string) (string, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	skipped := 0
	total := r.NumPage()
	for n := 1; n <= total; n++ {
		text, err := extractPage(r, n)
		if err != nil {
			skipped++
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), skipped, nil
}

// extractPage isolates one page's extraction. The pdf library panics on
// some malformed content streams; the recover keeps a bad page skippable.
func extractPage(r *pdf.Reader, n int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page %d: %v", n, rec)
		}
	}()
	p := r.Page(n)
	if p.V.IsNull() {
		return "", fmt.Errorf("page %d: missing", n)
	}
	return p.GetPlainText(nil)
}
