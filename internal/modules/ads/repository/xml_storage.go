package repository

import (
	"encoding/xml"
	"os"
	"sync"

	"github.com/KevinKolb/CableGuide/internal/modules/ads/domain"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// XMLStorage implements ads.Repository on top of an ads.xml file
type XMLStorage struct {
	path string
	mu   sync.RWMutex
}

// NewXMLStorage creates a new XML-file-backed ad repository
func NewXMLStorage(path string) Repository {
	return &XMLStorage{path: path}
}

type xmlAds struct {
	XMLName xml.Name `xml:"ads"`
	Ads     []xmlAd  `xml:"ad"`
}

type xmlAd struct {
	URL   string `xml:"url,attr"`
	Image string `xml:"image,attr"`
	Alt   string `xml:"alt,attr"`
	Label string `xml:",chardata"`
}

// GetAllAds reads the candidate set. A missing file means no ads,
// not an error.
func (s *XMLStorage) GetAllAds() ([]domain.Ad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, oops.With("path", s.path, "context", "failed to read ads").Wrap(err)
	}

	var doc xmlAds
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, oops.With("path", s.path, "context", "failed to unmarshal ads").Wrap(err)
	}

	return lo.Map(doc.Ads, func(ad xmlAd, _ int) domain.Ad {
		return domain.Ad{
			URL:   ad.URL,
			Image: ad.Image,
			Alt:   ad.Alt,
			Label: ad.Label,
		}
	}), nil
}
