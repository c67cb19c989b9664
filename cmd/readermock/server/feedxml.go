package server

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RSS 2.0 document shape for the per-feed export endpoint.
type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
}

// renderFeedRSS exports one feed's articles as RSS 2.0. Item GUIDs are
// name-based UUIDs over the article link so the export is deterministic.
func (s *Server) renderFeedRSS(feedID string) ([]byte, error) {
	var title string
	for _, f := range s.store.Feeds() {
		if f.ID == feedID {
			title = f.Title
			break
		}
	}
	if title == "" {
		return nil, fmt.Errorf("feed %s not found", feedID)
	}

	articles := s.store.Articles(Query{FeedID: feedID})
	items := make([]rssItem, 0, len(articles))
	for _, a := range articles {
		link := fmt.Sprintf("https://reader.example.com/reader/article/%s", a.ID)
		items = append(items, rssItem{
			Title:       a.Title,
			Link:        link,
			Description: a.Summary,
			GUID:        uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)).String(),
			PubDate:     a.PublishedAt.Format(time.RFC1123Z),
		})
	}

	doc := rssDoc{
		Version: "2.0",
		Channel: rssChannel{
			Title:       title,
			Link:        "https://reader.example.com/reader",
			Description: fmt.Sprintf("Articles from %s", title),
			Items:       items,
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal rss: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
