package docload

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
)

// fromMarkdown renders Markdown down to plain prose by walking the parsed
// AST and keeping only text content. Formatting markers, link targets and
// fenced code blocks drop out; headings and paragraphs become separate
// lines.
func fromMarkdown(src []byte) string {
	md := goldmark.New()
	doc := md.Parser().Parse(gtext.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				b.Write(t.Segment.Value(src))
				if t.SoftLineBreak() || t.HardLineBreak() {
					b.WriteString("\n")
				}
			}
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.Blockquote:
			b.WriteString("\n")
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
