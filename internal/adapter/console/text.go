package console

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlToText flattens an HTML fragment into a single line of text.
func htmlToText(input string) string {
	if input == "" {
		return ""
	}

	node, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return strings.Join(strings.Fields(input), " ")
	}

	var builder strings.Builder
	extractText(node, &builder)
	return strings.Join(strings.Fields(builder.String()), " ")
}

func extractText(node *html.Node, builder *strings.Builder) {
	switch node.Type {
	case html.TextNode:
		builder.WriteString(node.Data)
	case html.ElementNode:
		if node.Data == "br" || node.Data == "p" || node.Data == "li" {
			builder.WriteRune(' ')
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		extractText(child, builder)
	}
}
