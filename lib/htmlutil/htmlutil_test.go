package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	require.Equal(t, "Total score", CleanText("  Total   score\t"))
	require.Equal(t, "", CleanText("   "))
}

func TestFindComments(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body><!-- Level: 57 --><div><!-- nested --></div></body></html>`,
	))
	require.NoError(t, err)
	require.Equal(t, []string{" Level: 57 ", " nested "}, FindComments(doc))
}
