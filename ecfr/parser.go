package ecfr

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"compliance/types"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// MaxContentLength caps section content, ellipsis included.
	MaxContentLength = 500
	// MaxHeadingCandidates bounds how many "§" headings are examined.
	MaxHeadingCandidates = 10
	Ellipsis             = "..."
	sectionMark          = "§"
)

// Document is the parsed view of one regulation part page.
type Document struct {
	Title    string
	Sections []types.Section
}

// SectionParser turns a part page into sections. The HTML scraper is the only
// implementation today; a structured-data source can replace it.
type SectionParser interface {
	Parse(r io.Reader) (*Document, error)
}

// HTMLParser reads eCFR reader pages: "§" headings (h2-h4) followed by
// paragraph siblings.
type HTMLParser struct{}

func (HTMLParser) Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	doc := &Document{}
	if h1 := findFirst(root, atom.H1); h1 != nil {
		doc.Title = textContent(h1)
	}

	for i, heading := range sectionHeadings(root, MaxHeadingCandidates) {
		id := attr(heading, "id")
		if id == "" {
			id = "section-" + strconv.Itoa(i+1)
		}
		title := textContent(heading)
		content := sectionContent(heading)
		if title == "" || content == "" {
			continue
		}
		doc.Sections = append(doc.Sections, types.Section{
			ID:      id,
			Heading: title,
			Content: content,
		})
	}

	return doc, nil
}

// sectionHeadings returns up to limit h2/h3/h4 elements, in document order,
// whose text contains the section mark.
func sectionHeadings(root *html.Node, limit int) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if isHeading(n) && strings.Contains(textContent(n), sectionMark) {
			found = append(found, n)
			if len(found) == limit {
				return false
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(root)
	return found
}

// sectionContent joins the text of the paragraphs that follow heading, up to
// the next heading or MaxContentLength characters.
func sectionContent(heading *html.Node) string {
	var b strings.Builder
	for n := nextElement(heading); n != nil && !isHeading(n); n = nextElement(n) {
		if utf8.RuneCountInString(b.String()) >= MaxContentLength {
			break
		}
		if n.DataAtom == atom.P {
			b.WriteString(textContent(n))
			b.WriteString(" ")
		}
	}
	return truncate(b.String())
}

func truncate(accumulated string) string {
	content := strings.TrimSpace(accumulated)
	if utf8.RuneCountInString(accumulated) < MaxContentLength {
		return content
	}
	runes := []rune(content)
	keep := MaxContentLength - utf8.RuneCountInString(Ellipsis)
	if len(runes) > keep {
		runes = runes[:keep]
	}
	return strings.TrimRight(string(runes), " ") + Ellipsis
}

func isHeading(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.H2, atom.H3, atom.H4:
		return true
	}
	return false
}

func nextElement(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

// textContent returns the descendant text of n with whitespace runs collapsed.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
