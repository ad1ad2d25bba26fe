package metadata

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
)

// Metadata holds the best-effort fields extracted from a product page. A nil
// field means the page carried nothing usable for it; a pointer to an empty
// string means the page resolved it to a blank value.
type Metadata struct {
	Title       *string
	Description *string
	Image       *string
	Price       *string
}

// metaTag is a flattened <meta> element.
type metaTag struct {
	property string
	itemprop string
	content  string
}

// Extract resolves title, description, image and price from a parsed HTML
// document using layered fallbacks:
//
//	title:       og:title meta, else the trimmed <title> element
//	description: og:description meta only
//	image:       og:image meta only
//	price:       price-ish meta tags, else JSON-LD offers (see priceFromJSONLD)
func Extract(doc *html.Node) Metadata {
	var (
		metas     []metaTag
		pageTitle *string
		ldBlocks  []string
	)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				metas = append(metas, metaTag{
					property: attrVal(n, "property"),
					itemprop: attrVal(n, "itemprop"),
					content:  attrVal(n, "content"),
				})
			case "title":
				if pageTitle == nil {
					t := textContent(n)
					pageTitle = &t
				}
			case "script":
				if strings.EqualFold(attrVal(n, "type"), "application/ld+json") {
					ldBlocks = append(ldBlocks, textContent(n))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var m Metadata

	if v := metaByProperty(metas, "og:title"); v != "" {
		m.Title = &v
	} else if pageTitle != nil {
		t := strings.TrimSpace(*pageTitle)
		m.Title = &t
	}
	if v, ok := metaContentByProperty(metas, "og:description"); ok {
		m.Description = &v
	}
	if v, ok := metaContentByProperty(metas, "og:image"); ok {
		m.Image = &v
	}

	m.Price = priceFromMetas(metas)
	if m.Price == nil {
		for _, block := range ldBlocks {
			if p := priceFromJSONLD(block); p != nil {
				m.Price = p
				break
			}
		}
	}

	return m
}

// priceFromMetas checks price-carrying meta conventions in precedence order
// and returns the first non-empty content value.
func priceFromMetas(metas []metaTag) *string {
	lookups := []func(metaTag) bool{
		func(t metaTag) bool { return t.property == "product:price:amount" },
		func(t metaTag) bool { return t.property == "og:price:amount" },
		func(t metaTag) bool { return t.itemprop == "price" },
	}
	for _, match := range lookups {
		for _, t := range metas {
			if match(t) && t.content != "" {
				v := t.content
				return &v
			}
		}
	}
	return nil
}

// priceFromJSONLD parses one ld+json block and pulls the first non-empty
// offers price out of it. A malformed block yields nil so the caller can
// move on to the next one. Numeric prices keep their literal JSON token.
func priceFromJSONLD(raw string) *string {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var data any
	if err := dec.Decode(&data); err != nil {
		return nil
	}
	obj, ok := data.(map[string]any)
	if !ok {
		return nil
	}

	candidates := []any{obj}
	if graph, ok := obj["@graph"].([]any); ok {
		candidates = graph
	}

	for _, c := range candidates {
		entity, ok := c.(map[string]any)
		if !ok {
			continue
		}
		offers, ok := entity["offers"]
		if !ok {
			continue
		}

		var offer map[string]any
		switch o := offers.(type) {
		case []any:
			if len(o) == 0 {
				continue
			}
			offer, ok = o[0].(map[string]any)
			if !ok {
				continue
			}
		case map[string]any:
			offer = o
		default:
			continue
		}

		if p := priceToken(offer["price"]); p != "" {
			return &p
		}
	}
	return nil
}

// priceToken renders a JSON price value as its string token. Prices in the
// wild are strings or bare numbers; anything else is ignored.
func priceToken(v any) string {
	switch p := v.(type) {
	case string:
		return p
	case json.Number:
		return p.String()
	default:
		return ""
	}
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// metaByProperty returns the content of the first meta with the given
// property, empty when no such meta exists or its content is empty.
func metaByProperty(metas []metaTag, property string) string {
	for _, t := range metas {
		if t.property == property {
			return t.content
		}
	}
	return ""
}

// metaContentByProperty distinguishes a missing meta (ok=false) from one
// present with blank content (ok=true, empty value).
func metaContentByProperty(metas []metaTag, property string) (string, bool) {
	for _, t := range metas {
		if t.property == property {
			return t.content, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
