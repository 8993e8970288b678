package promo

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// The upstream embeds raw <img> tags inside its markdown-ish text.
// Parsing the fragment as HTML is more forgiving than matching the tag
// textually: attribute order, quoting style and self-closing slashes
// all vary between responses.

func firstImageSrc(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return doc.Find("img").First().AttrOr("src", "")
}

func allImageSrcs(fragment string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	var srcs []string
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := img.AttrOr("src", "")
		if src != "" {
			srcs = append(srcs, src)
		}
	})
	return srcs
}
