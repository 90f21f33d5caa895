package htmlutil

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText trims and collapses the whitespace of rendered label text.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.Trim(s, " \t\n")
	return innerWhitespace.ReplaceAllString(s, " ")
}

// FindComments returns the text of every comment node in the document.
func FindComments(doc *goquery.Document) []string {
	var comments []string
	for _, root := range doc.Nodes {
		findCommentsRecursive(root, &comments)
	}
	return comments
}

func findCommentsRecursive(node *html.Node, out *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.CommentNode {
		*out = append(*out, node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		findCommentsRecursive(child, out)
		child = child.NextSibling
	}
}
