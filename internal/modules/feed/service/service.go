package service

import (
	"fmt"
	"time"

	guideService "github.com/KevinKolb/CableGuide/internal/modules/guide/service"
	"github.com/gorilla/feeds"
	"github.com/samber/oops"
)

// Service generates the "now airing" RSS feed from the guide
type Service struct {
	guide *guideService.Service
}

// New creates a new feed service
func New(guide *guideService.Service) *Service {
	return &Service{guide: guide}
}

// GenerateFeed builds an RSS feed of what is on the air right now,
// one item per channel.
func (s *Service) GenerateFeed(baseURL string, now time.Time) (*feeds.Feed, error) {
	airing, err := s.guide.NowAiring(now)
	if err != nil {
		return nil, oops.With("context", "loading now-airing shows").Wrap(err)
	}

	feed := &feeds.Feed{
		Title:       "CableGuide - Now Airing",
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/feed.rss", baseURL)},
		Description: "What is on the air right now, channel by channel",
		Created:     now,
		Updated:     now,
	}

	for _, a := range airing {
		description := a.Show.Description
		if description == "" {
			description = "No description available"
		}

		feed.Items = append(feed.Items, &feeds.Item{
			Title:       fmt.Sprintf("%s: %s", a.Channel.Name, a.Show.Title),
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/#ch-%s", baseURL, a.Channel.Number)},
			Description: description,
			Created:     a.Start,
			Id:          fmt.Sprintf("%s-%s-%s", a.Channel.Number, now.Format("01/02/06"), a.Show.Start),
		})
	}

	return feed, nil
}
