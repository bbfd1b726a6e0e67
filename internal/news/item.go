package news

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/tabgraf/sheetnews/internal/logger"
)

// NoDescription is the placeholder stored when a feed entry has no usable
// description after cleaning.
const NoDescription = "No description available"

// Item is a normalized news record. Published is nil when the feed carried
// no parsable date; ImageURL is empty when no image was found.
type Item struct {
	Title       string
	Link        string
	Description string
	Published   *time.Time
	SourceFeed  string
	ImageURL    string
}

// Document pairs a parsed feed with the URL it was fetched from.
// Feed is nil when the fetch or parse failed; such documents contribute
// zero items.
type Document struct {
	SourceURL string
	Feed      *gofeed.Feed
}

// Normalize converts a parsed feed into normalized items. Entries without a
// title or link are dropped silently (logged at debug level only); a missing
// or unparsable publish date degrades to nil, never to the current time.
func Normalize(feed *gofeed.Feed, sourceURL string) []Item {
	if feed == nil {
		return nil
	}
	isAtom := feed.FeedType == "atom"

	items := make([]Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if entry == nil {
			continue
		}
		title := strings.TrimSpace(entry.Title)
		link := strings.TrimSpace(entry.Link)
		if title == "" || link == "" {
			logger.Debug("dropping feed entry without title or link", "feed", sourceURL)
			continue
		}

		// RSS carries the summary in description; Atom falls back to the
		// full content element when the summary is absent.
		rawDesc := entry.Description
		if rawDesc == "" && isAtom {
			rawDesc = entry.Content
		}
		desc := stripHTML(rawDesc)
		if desc == "" {
			desc = NoDescription
		}

		items = append(items, Item{
			Title:       title,
			Link:        link,
			Description: desc,
			Published:   publishedAt(entry),
			SourceFeed:  sourceURL,
			ImageURL:    imageURL(entry, isAtom),
		})
	}
	return items
}

func publishedAt(entry *gofeed.Item) *time.Time {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed
	}
	return entry.UpdatedParsed
}

// imageURL resolves an item image by priority: media:content url, enclosure
// url, first <img> in the raw description, first <img> in the raw content
// (Atom only). First hit wins.
func imageURL(entry *gofeed.Item, isAtom bool) string {
	if media, ok := entry.Extensions["media"]; ok {
		for _, c := range media["content"] {
			if u := strings.TrimSpace(c.Attrs["url"]); u != "" {
				return u
			}
		}
	}
	for _, enc := range entry.Enclosures {
		if enc == nil {
			continue
		}
		if u := strings.TrimSpace(enc.URL); u != "" {
			return u
		}
	}
	if src, ok := firstImageSrc(entry.Description); ok {
		return src
	}
	if isAtom {
		if src, ok := firstImageSrc(entry.Content); ok {
			return src
		}
	}
	return ""
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTML removes markup from a feed fragment and collapses runs of
// whitespace to single spaces.
func stripHTML(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapseWhitespace(tagPattern.ReplaceAllString(s, " "))
	}
	return collapseWhitespace(doc.Text())
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstImageSrc(markup string) (string, bool) {
	if markup == "" || !strings.Contains(markup, "<img") {
		return "", false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", false
	}
	src, ok := doc.Find("img[src]").First().Attr("src")
	src = strings.TrimSpace(src)
	if !ok || src == "" {
		return "", false
	}
	return src, true
}
