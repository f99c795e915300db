package service

import (
	"github.com/KevinKolb/CableGuide/internal/modules/guide/domain"
	"github.com/KevinKolb/CableGuide/internal/shared/config"
	"github.com/samber/lo"
)

// Service computes the pixel layout of the guide grid
type Service struct {
	cfg *config.Config
}

// Cell is one show block in a channel row
type Cell struct {
	Title       string
	Description string
	Start       string
	WidthPx     int
}

// Row is one channel's lane of cells
type Row struct {
	Number string
	Name   string
	Cells  []Cell
}

// Layout is the computed grid. LoopHeightPx is the exact height of one
// content block; the page renders the block twice and the scroll loop
// resets against this same number.
type Layout struct {
	Rows         []Row
	RowHeightPx  int
	LoopHeightPx int
}

// New creates a new grid service
func New(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// ShowWidth maps a duration in minutes to a rendered pixel width:
// (duration / slot minutes) x slot width, floored at the minimum.
// Zero and negative durations floor as well.
func (s *Service) ShowWidth(durationMinutes int) int {
	width := durationMinutes * s.cfg.SlotWidthPx / s.cfg.SlotMinutes
	if width < s.cfg.MinShowWidthPx {
		return s.cfg.MinShowWidthPx
	}
	return width
}

// Compute lays out every channel row. Shows are placed left to right in
// the order stored, which is chronological; source data is assumed
// non-overlapping per channel, so no overlap resolution happens here.
// Filtering is presentation state and does not change the layout.
func (s *Service) Compute(channels []domain.Channel) Layout {
	rows := lo.Map(channels, func(ch domain.Channel, _ int) Row {
		return Row{
			Number: ch.Number,
			Name:   ch.Name,
			Cells: lo.Map(ch.Shows, func(show domain.Show, _ int) Cell {
				return Cell{
					Title:       show.Title,
					Description: show.Description,
					Start:       show.Start,
					WidthPx:     s.ShowWidth(show.Duration),
				}
			}),
		}
	})

	return Layout{
		Rows:         rows,
		RowHeightPx:  s.cfg.RowHeightPx,
		LoopHeightPx: len(rows) * s.cfg.RowHeightPx,
	}
}
