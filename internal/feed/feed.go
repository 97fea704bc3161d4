// Package feed loads talks from an RSS or Atom conference feed.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/talkdeck/talkdeck/pkg/talks"
)

// Source fetches a feed URL and maps its items to talks. Implements
// talks.Source.
type Source struct {
	url    string
	parser *gofeed.Parser
	logger *slog.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// NewSource creates a feed-backed talk source for the given URL.
func NewSource(url string, opts ...Option) *Source {
	s := &Source{
		url:    url,
		parser: gofeed.NewParser(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// FetchTalks downloads and parses the feed. Items without a usable id
// (GUID or link) are skipped.
func (s *Source) FetchTalks(ctx context.Context) ([]talks.Talk, error) {
	parsed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.url, err)
	}
	return mapItems(parsed, s.logger), nil
}

func mapItems(parsed *gofeed.Feed, logger *slog.Logger) []talks.Talk {
	result := make([]talks.Talk, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		talk, ok := mapItem(item)
		if !ok {
			logger.Warn("feed item has no id, skipping", "title", item.Title)
			continue
		}
		result = append(result, talk)
	}
	return result
}

// mapItem converts one feed item. The first category becomes the talk
// category; the rest become tags. Authors map to speakers.
func mapItem(item *gofeed.Item) (talks.Talk, bool) {
	id := item.GUID
	if id == "" {
		id = item.Link
	}
	if id == "" {
		return talks.Talk{}, false
	}

	talk := talks.Talk{
		ID:          id,
		Title:       item.Title,
		Description: item.Description,
		MeetingLink: item.Link,
	}
	if talk.Description == "" {
		talk.Description = item.Content
	}

	if item.PublishedParsed != nil {
		when := item.PublishedParsed.UTC()
		talk.Date = when.Format("2006-01-02")
		talk.StartTime = when.Format("15:04")
	}

	for i, category := range item.Categories {
		category = strings.TrimSpace(category)
		if category == "" {
			continue
		}
		if i == 0 {
			talk.Category = category
			continue
		}
		talk.Tags = append(talk.Tags, category)
	}

	for _, author := range item.Authors {
		if author == nil || author.Name == "" {
			continue
		}
		talk.Speakers = append(talk.Speakers, talks.Speaker{Name: author.Name})
	}

	return talk, true
}
