package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Engineering Talks</title>
    <item>
      <guid>talk-1</guid>
      <title>Profiling Go Services</title>
      <description>Finding hot paths with pprof.</description>
      <link>https://talks.example.com/1</link>
      <category>Backend</category>
      <category>performance</category>
      <category>go</category>
      <author>ada@example.com (Ada Lovelace)</author>
      <pubDate>Mon, 15 Jun 2026 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>No Identity</title>
      <description>This one has neither guid nor link.</description>
    </item>
    <item>
      <link>https://talks.example.com/3</link>
      <title>Fallback Identity</title>
    </item>
  </channel>
</rss>`

func TestFetchTalks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	source := NewSource(srv.URL)
	got, err := source.FetchTalks(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 talks (id-less item skipped), got %d", len(got))
	}

	first := got[0]
	if first.ID != "talk-1" {
		t.Errorf("id = %q", first.ID)
	}
	if first.Title != "Profiling Go Services" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Category != "Backend" {
		t.Errorf("category = %q, want first feed category", first.Category)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "performance" || first.Tags[1] != "go" {
		t.Errorf("tags = %v", first.Tags)
	}
	if first.Date != "2026-06-15" || first.StartTime != "09:00" {
		t.Errorf("schedule = %q %q", first.Date, first.StartTime)
	}
	if len(first.Speakers) != 1 || first.Speakers[0].Name != "Ada Lovelace" {
		t.Errorf("speakers = %v", first.Speakers)
	}
	if first.MeetingLink != "https://talks.example.com/1" {
		t.Errorf("link = %q", first.MeetingLink)
	}

	if got[1].ID != "https://talks.example.com/3" {
		t.Errorf("link should serve as fallback id, got %q", got[1].ID)
	}
}

func TestFetchTalksBadFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a feed"))
	}))
	defer srv.Close()

	source := NewSource(srv.URL)
	if _, err := source.FetchTalks(context.Background()); err == nil {
		t.Fatal("expected a parse error")
	}
}
