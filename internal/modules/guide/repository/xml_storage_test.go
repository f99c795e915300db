package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KevinKolb/CableGuide/internal/modules/guide/domain"
)

const sampleGuide = `<?xml version="1.0" encoding="utf-8"?>
<guide>
  <date>08/29/26</date>
  <ad>
    <text>Call 1-800-CABLE-TV for Premium Channels!</text>
  </ad>
  <timeslots>
    <time>12:00 PM</time>
    <time>12:30 PM</time>
  </timeslots>
  <channels>
    <channel>
      <number>CNN</number>
      <name>CNN</name>
      <shows>
        <show start="12:00 PM" duration="60" description="Political news.">Inside Politics</show>
        <show start="1:00 PM" duration="30">CNN Newsroom</show>
      </shows>
    </channel>
  </channels>
</guide>`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.xml")
	if err := os.WriteFile(path, []byte(sampleGuide), 0644); err != nil {
		t.Fatal(err)
	}

	repo, err := NewXMLStorage(path)
	if err != nil {
		t.Fatal(err)
	}

	guide, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if guide.Date != "08/29/26" {
		t.Errorf("date = %q", guide.Date)
	}
	if guide.AdText != "Call 1-800-CABLE-TV for Premium Channels!" {
		t.Errorf("ad text = %q", guide.AdText)
	}
	if len(guide.TimeSlots) != 2 || guide.TimeSlots[0] != "12:00 PM" {
		t.Errorf("time slots = %v", guide.TimeSlots)
	}
	if len(guide.Channels) != 1 {
		t.Fatalf("channels = %d, want 1", len(guide.Channels))
	}

	ch := guide.Channels[0]
	if ch.Number != "CNN" || ch.Name != "CNN" {
		t.Errorf("channel = %+v", ch)
	}
	if len(ch.Shows) != 2 {
		t.Fatalf("shows = %d, want 2", len(ch.Shows))
	}
	if ch.Shows[0].Start != "12:00 PM" || ch.Shows[0].Duration != 60 {
		t.Errorf("show = %+v", ch.Shows[0])
	}
	if ch.Shows[0].Title != "Inside Politics" {
		t.Errorf("title = %q", ch.Shows[0].Title)
	}
	if ch.Shows[1].Description != "" {
		t.Errorf("description should be empty, got %q", ch.Shows[1].Description)
	}
}

func TestLoadMissingFileDegradesToEmptyGuide(t *testing.T) {
	repo, err := NewXMLStorage(filepath.Join(t.TempDir(), "absent.xml"))
	if err != nil {
		t.Fatal(err)
	}

	guide, err := repo.Load()
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if len(guide.Channels) != 0 {
		t.Errorf("channels = %d, want 0", len(guide.Channels))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo, err := NewXMLStorage(filepath.Join(t.TempDir(), "guide.xml"))
	if err != nil {
		t.Fatal(err)
	}

	in := &domain.Guide{
		Date:      "08/29/26",
		AdText:    "Premium channels available!",
		TimeSlots: []string{"3:00 PM", "3:30 PM"},
		Channels: []domain.Channel{
			{Number: "HBO1", Name: "HBO 1", Shows: []domain.Show{
				{Start: "3:00 PM", Duration: 30, Title: "Last Week Tonight", Description: "Satire."},
			}},
		},
	}

	if err := repo.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if out.Date != in.Date || out.AdText != in.AdText {
		t.Errorf("header round trip: %+v", out)
	}
	if len(out.TimeSlots) != 2 {
		t.Fatalf("time slots = %v", out.TimeSlots)
	}
	if len(out.Channels) != 1 || len(out.Channels[0].Shows) != 1 {
		t.Fatalf("channels round trip: %+v", out.Channels)
	}
	if out.Channels[0].Shows[0] != in.Channels[0].Shows[0] {
		t.Errorf("show round trip: got %+v, want %+v", out.Channels[0].Shows[0], in.Channels[0].Shows[0])
	}
}
