package service

import (
	"bytes"
	"io"
	"sort"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	gm "planova_backend/internals/features/timetable/grid/model"
)

// ToHTMLNode converts a node description into an x/net/html tree.
// Attributes are emitted in key order so output is stable.
func ToHTMLNode(n *gm.Node) *html.Node {
	if n == nil {
		return nil
	}
	out := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out.Attr = append(out.Attr, html.Attribute{Key: k, Val: n.Attrs[k]})
	}

	if n.Text != "" {
		out.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	}
	for _, c := range n.Children {
		if hc := ToHTMLNode(c); hc != nil {
			out.AppendChild(hc)
		}
	}
	return out
}

func WriteHTML(w io.Writer, n *gm.Node) error {
	if n == nil {
		return nil
	}
	return html.Render(w, ToHTMLNode(n))
}

func HTML(n *gm.Node) (string, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
