package repository

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"sync"

	"github.com/KevinKolb/CableGuide/internal/modules/guide/domain"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// XMLStorage implements guide.Repository on top of a guide.xml file
type XMLStorage struct {
	path string
	mu   sync.RWMutex
}

// NewXMLStorage creates a new XML-file-backed guide repository
func NewXMLStorage(path string) (Repository, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, oops.With("path", path, "context", "failed to create guide directory").Wrap(err)
	}

	return &XMLStorage{path: path}, nil
}

type xmlGuide struct {
	XMLName   xml.Name     `xml:"guide"`
	Date      string       `xml:"date"`
	Ad        xmlAdSection `xml:"ad"`
	TimeSlots []string     `xml:"timeslots>time"`
	Channels  []xmlChannel `xml:"channels>channel"`
}

type xmlAdSection struct {
	Text string `xml:"text"`
}

type xmlChannel struct {
	Number string    `xml:"number"`
	Name   string    `xml:"name"`
	Shows  []xmlShow `xml:"shows>show"`
}

type xmlShow struct {
	Start       string `xml:"start,attr"`
	Duration    int    `xml:"duration,attr"`
	Description string `xml:"description,attr,omitempty"`
	Title       string `xml:",chardata"`
}

// Load reads guide.xml. A missing file is not an error: the guide
// degrades to an empty grid rather than aborting the page.
func (s *XMLStorage) Load() (*domain.Guide, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &domain.Guide{}, nil
		}
		return nil, oops.With("path", s.path, "context", "failed to read guide").Wrap(err)
	}

	var doc xmlGuide
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, oops.With("path", s.path, "context", "failed to unmarshal guide").Wrap(err)
	}

	guide := &domain.Guide{
		Date:      doc.Date,
		AdText:    doc.Ad.Text,
		TimeSlots: doc.TimeSlots,
		Channels: lo.Map(doc.Channels, func(ch xmlChannel, _ int) domain.Channel {
			return domain.Channel{
				Number: ch.Number,
				Name:   ch.Name,
				Shows: lo.Map(ch.Shows, func(sh xmlShow, _ int) domain.Show {
					return domain.Show{
						Start:       sh.Start,
						Duration:    sh.Duration,
						Title:       sh.Title,
						Description: sh.Description,
					}
				}),
			}
		}),
	}

	return guide, nil
}

func (s *XMLStorage) Save(guide *domain.Guide) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := xmlGuide{
		Date:      guide.Date,
		Ad:        xmlAdSection{Text: guide.AdText},
		TimeSlots: guide.TimeSlots,
		Channels: lo.Map(guide.Channels, func(ch domain.Channel, _ int) xmlChannel {
			return xmlChannel{
				Number: ch.Number,
				Name:   ch.Name,
				Shows: lo.Map(ch.Shows, func(sh domain.Show, _ int) xmlShow {
					return xmlShow{
						Start:       sh.Start,
						Duration:    sh.Duration,
						Description: sh.Description,
						Title:       sh.Title,
					}
				}),
			}
		}),
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return oops.With("path", s.path, "context", "failed to marshal guide").Wrap(err)
	}

	return os.WriteFile(s.path, append([]byte(xml.Header), data...), 0644)
}
