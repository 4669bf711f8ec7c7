// Package extract pulls the raw text fragments and h1 titles out of an HTML page.
//
// A fragment is the content of one DOM text node that is a direct child of an
// element matched by the selector (default "body *"), in document order. Script and
// style contents are text nodes too, which is why fragments must be classified
// before they are treated as prose. Comments are not text nodes and never appear.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// DefaultSelector matches every element inside the body.
const DefaultSelector = "body *"

// Options controls fragment extraction.
type Options struct {
	// Selector picks the elements whose direct text nodes become fragments
	Selector string
	// Readability narrows the page to its main content before selecting fragments
	Readability bool
	// BaseURL helps readability resolve relative links; may be nil
	BaseURL *url.URL
}

// Result is the extracted text of one page.
type Result struct {
	// Titles holds the trimmed, non-empty direct text of every h1, in order
	Titles []string
	// Fragments holds raw text node contents, untrimmed, in document order
	Fragments []string
}

// Page parses the HTML in content and extracts its titles and fragments.
// Titles always come from the full page, even in readability mode.
func Page(content io.Reader, opts Options) (*Result, error) {
	raw, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read HTML content: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &Result{}
	doc.Find("h1").Each(func(_ int, s *goquery.Selection) {
		for _, text := range directText(s) {
			if title := strings.TrimSpace(text); title != "" {
				result.Titles = append(result.Titles, title)
			}
		}
	})

	fragmentDoc := doc
	if opts.Readability {
		fragmentDoc, err = mainContent(raw, opts.BaseURL)
		if err != nil {
			return nil, err
		}
	}

	selector := opts.Selector
	if selector == "" {
		selector = DefaultSelector
	}
	fragmentDoc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		result.Fragments = append(result.Fragments, directText(s)...)
	})

	return result, nil
}

// mainContent runs go-readability and parses the extracted article HTML
func mainContent(raw []byte, baseURL *url.URL) (*goquery.Document, error) {
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(bytes.NewReader(raw), baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract main content: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse main content: %w", err)
	}
	return doc, nil
}

// directText returns the text node children of every node in s, skipping text
// nested in child elements (those belong to the child's own match)
func directText(s *goquery.Selection) []string {
	var texts []string
	for _, n := range s.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				texts = append(texts, c.Data)
			}
		}
	}
	return texts
}
