package skillsdk

import (
	"bytes"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func parseHTML(body []byte) (*html.Node, error) {
	return html.Parse(bytes.NewReader(body))
}

// walk visits n and its descendants in document order.
func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func elements(n *html.Node, tag atom.Atom) []*html.Node {
	var out []*html.Node
	walk(n, func(c *html.Node) {
		if c.Type == html.ElementNode && c.DataAtom == tag {
			out = append(out, c)
		}
	})
	return out
}

func children(n *html.Node, tag atom.Atom) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == tag {
			out = append(out, c)
		}
	}
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	return slices.Contains(strings.Fields(v), class)
}

func text(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

// errorPageMessage returns the message paragraph of the error page.
func errorPageMessage(doc *html.Node) string {
	for _, main := range elements(doc, atom.Main) {
		if ps := elements(main, atom.P); len(ps) > 0 {
			return text(ps[0])
		}
	}
	return ""
}

// idFromLink reads the id query parameter of a row action link.
func idFromLink(href string) (int64, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(u.Query().Get("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parseSkillTable reads the rows of the skills list page. The placeholder
// row of an empty list has a single cell and is skipped.
func parseSkillTable(doc *html.Node) []Skill {
	skills := []Skill{}
	for _, tbody := range elements(doc, atom.Tbody) {
		for _, tr := range children(tbody, atom.Tr) {
			cells := children(tr, atom.Td)
			if len(cells) < 4 {
				continue
			}

			var id int64
			for _, a := range elements(cells[3], atom.A) {
				href, _ := attr(a, "href")
				if v, ok := idFromLink(href); ok {
					id = v
					break
				}
			}

			skills = append(skills, Skill{
				ID:          id,
				Description: text(cells[0]),
				TargetDate:  text(cells[1]),
				Done:        text(cells[2]) == "Yes",
			})
		}
	}
	return skills
}

// parseSkillForm reads the values and inline errors of the skill form. An
// error message belongs to the input right before it.
func parseSkillForm(doc *html.Node) (Skill, map[string]string) {
	var (
		s       Skill
		errs    = map[string]string{}
		current string
	)

	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}

		switch {
		case n.DataAtom == atom.Input:
			name, _ := attr(n, "name")
			value, _ := attr(n, "value")
			switch name {
			case "id":
				s.ID, _ = strconv.ParseInt(value, 10, 64)
			case "description":
				s.Description = value
				current = name
			case "targetDate":
				s.TargetDate = value
				current = name
			case "done":
				_, s.Done = attr(n, "checked")
			}
		case n.DataAtom == atom.Div && hasClass(n, "error") && current != "":
			errs[current] = text(n)
		}
	})

	return s, errs
}
