package main

import (
	"os"
	"strings"

	"golang.org/x/net/html"
)

// htmlTitle returns the trimmed text of the document's first non-empty
// <title> element, or an empty string when the page has none.
func htmlTitle(pth string) (string, error) {
	f, err := os.Open(pth)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	doc, err := html.Parse(f)
	if err != nil {
		return "", err
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			var b strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
				}
			}
			if text := strings.TrimSpace(b.String()); text != "" {
				title = text
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title, nil
}
