package hrapi

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// skippedElements never contribute visible text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
}

// blockElements end the current line before and after their content.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "details": true, "dialog": true, "div": true, "dl": true,
	"dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "summary": true, "table": true,
	"tbody": true, "td": true, "tfoot": true, "th": true, "thead": true,
	"tr": true, "ul": true, "body": true, "html": true,
}

// ExtractLines returns the visible text of an HTML page as an ordered list of
// lines. Each block element yields its own line; inline markup such as
// <span> or <b> stays joined with the surrounding text. Whitespace is
// collapsed and empty lines are dropped.
func ExtractLines(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse pto page: %w", err)
	}

	var (
		lines   []string
		current strings.Builder
	)
	flush := func() {
		if text := strings.Join(strings.Fields(current.String()), " "); text != "" {
			lines = append(lines, text)
		}
		current.Reset()
	}

	var walk func(s *goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, child *goquery.Selection) {
			node := child.Get(0)
			switch node.Type {
			case html.TextNode:
				current.WriteString(node.Data)
			case html.ElementNode:
				name := goquery.NodeName(child)
				switch {
				case skippedElements[name]:
				case name == "br":
					flush()
				case blockElements[name]:
					flush()
					walk(child)
					flush()
				default:
					walk(child)
				}
			}
		})
	}

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	walk(root)
	flush()

	return lines, nil
}
