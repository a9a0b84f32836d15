package feed

import (
	"strings"

	"newsjester/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"mvdan.cc/xurls/v2"
)

const descriptionMaxChars = 1000

//nolint:gochecknoglobals // Compiled once, read-only.
var strictURLRe = xurls.Strict()

func toFeedItem(item *gofeed.Item) domain.FeedItem {
	return domain.FeedItem{
		Title:       strings.TrimSpace(item.Title),
		Description: itemDescription(item),
		URL:         itemURL(item),
	}
}

// itemDescription prefers a plain-text snippet of the description and falls
// back to the content.
func itemDescription(item *gofeed.Item) string {
	if description := plainText(item.Description); description != "" {
		return truncate(description, descriptionMaxChars)
	}

	return truncate(plainText(item.Content), descriptionMaxChars)
}

func itemURL(item *gofeed.Item) string {
	if link := strings.TrimSpace(item.Link); link != "" {
		return link
	}

	for _, link := range item.Links {
		if link = strings.TrimSpace(link); link != "" {
			return link
		}
	}

	for _, raw := range []string{item.Description, item.Content} {
		for _, found := range strictURLRe.FindAllString(raw, -1) {
			if strings.HasPrefix(found, "http://") || strings.HasPrefix(found, "https://") {
				return found
			}
		}
	}

	return ""
}

func plainText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.Join(strings.Fields(raw), " ")
	}

	doc.Find("script, style").Remove()
	doc.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithHtml("\n")
	})
	doc.Find("p, div, li").Each(func(_ int, block *goquery.Selection) {
		block.AfterHtml("\n")
	})

	return strings.Join(strings.Fields(doc.Text()), " ")
}

func truncate(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	trimmed := strings.TrimSpace(string(runes[:maxChars]))
	if trimmed == "" {
		return text
	}

	return trimmed + "..."
}
