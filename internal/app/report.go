package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/goanswer/internal/docload"
)

// writeTranscripts persists the session's Q&A exchanges to the configured
// Markdown and/or PDF paths. Nothing is written when no exchange happened.
func (a *App) writeTranscripts() error {
	if len(a.transcript) == 0 {
		return nil
	}
	if a.cfg.TranscriptMD != "" {
		md := transcriptMarkdown(a.doc, a.transcript)
		if err := os.WriteFile(a.cfg.TranscriptMD, []byte(md), 0o644); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
	}
	if a.cfg.TranscriptPDF != "" {
		if err := writeTranscriptPDF(a.cfg.TranscriptPDF, a.doc, a.transcript); err != nil {
			return fmt.Errorf("write transcript pdf: %w", err)
		}
	}
	return nil
}

func transcriptMarkdown(doc docload.Document, exchanges []Exchange) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Q&A transcript: %s\n\n", doc.Name)
	fmt.Fprintf(&b, "%s - %d chars, %d words\n\n", time.Now().Format("2006-01-02"), doc.Chars(), doc.Words())
	for _, ex := range exchanges {
		fmt.Fprintf(&b, "## %s\n\n", ex.Question)
		if ex.Result.NoAnswer {
			b.WriteString("_No answer found in the document._\n\n")
			continue
		}
		fmt.Fprintf(&b, "%s\n\n", ex.Result.Answer)
		fmt.Fprintf(&b, "Confidence: %.1f%% (%s)\n\n", ex.Result.Confidence, ex.Result.Tier)
	}
	return b.String()
}

// writeTranscriptPDF renders the transcript as a minimal PDF: bold
// question headings, answer paragraphs, confidence lines. Intentionally
// simple, no full layout.
func writeTranscriptPDF(outPath string, doc docload.Document, exchanges []Exchange) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Q&A transcript: %s", doc.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s - %d chars, %d words",
		time.Now().Format("2006-01-02"), doc.Chars(), doc.Words()), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, ex := range exchanges {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 6, ex.Question, "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		if ex.Result.NoAnswer {
			pdf.MultiCell(0, 5, "No answer found in the document.", "", "L", false)
		} else {
			pdf.MultiCell(0, 5, ex.Result.Answer, "", "L", false)
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(0, 5, fmt.Sprintf("confidence: %.1f%% (%s)", ex.Result.Confidence, ex.Result.Tier), "", "L", false)
		}
		pdf.Ln(4)
	}

	return pdf.OutputFileAndClose(outPath)
}
