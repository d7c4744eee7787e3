package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"amazon_reviews/internal/domain"
)

// Extractor applies a set of named selectors to page markup and produces
// the raw field mapping consumed by the pipeline. It knows nothing about
// field semantics; normalization happens downstream.
type Extractor struct {
	selectors map[string]Selector
}

func New(selectors map[string]Selector) *Extractor {
	return &Extractor{selectors: selectors}
}

func (e *Extractor) Extract(markup, baseURL string) (domain.RawFields, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	out := make(domain.RawFields, len(e.selectors))
	for name, sel := range e.selectors {
		out[name] = apply(doc.Selection, sel, base)
	}
	return out, nil
}

// apply evaluates one selector against root. Single selectors yield a
// string or nil; Multiple selectors yield []any of strings or nested maps.
func apply(root *goquery.Selection, sel Selector, base *url.URL) any {
	matches := root.Find(sel.CSS)

	if sel.Multiple {
		out := make([]any, 0, matches.Length())
		matches.Each(func(_ int, s *goquery.Selection) {
			out = append(out, value(s, sel, base))
		})
		return out
	}

	if matches.Length() == 0 {
		return nil
	}
	return value(matches.First(), sel, base)
}

// value renders one matched element: a nested map when the selector has
// children, otherwise its text, resolved link, or attribute.
func value(s *goquery.Selection, sel Selector, base *url.URL) any {
	if len(sel.Children) > 0 {
		child := make(map[string]any, len(sel.Children))
		for name, cs := range sel.Children {
			child[name] = apply(s, cs, base)
		}
		return child
	}

	switch sel.Type {
	case "link":
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return nil
		}
		if ref, err := url.Parse(href); err == nil {
			return base.ResolveReference(ref).String()
		}
		return href
	case "attribute":
		if v, ok := s.Attr(sel.Attribute); ok {
			return v
		}
		return nil
	default: // text
		return strings.TrimSpace(s.Text())
	}
}
