package docload

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// fromHTML extracts readable text from an HTML document, preferring <main>
// or <article> over the full <body> and skipping script/style/navigation
// boilerplate. Layout fidelity does not matter here; normalize.Clean
// flattens the result before sentence splitting anyway.
func fromHTML(input []byte) (string, error) {
	node, err := html.Parse(bytes.NewReader(input))
	if err != nil {
		return "", err
	}
	root := findFirst(node, "main")
	if root == nil {
		root = findFirst(node, "article")
	}
	if root == nil {
		root = findFirst(node, "body")
	}
	if root == nil {
		root = node
	}
	var b strings.Builder
	collectText(&b, root)
	return b.String(), nil
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "nav", "footer", "aside", "iframe", "head":
			return
		case "br", "hr", "p", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n")
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "p", "li", "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString("\n")
		}
	}
}
