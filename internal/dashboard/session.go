package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/AngelCh415/sdr-funnel/internal/models"
	"github.com/AngelCh415/sdr-funnel/internal/period"
)

// ErrSuperseded is returned by a session action whose result was discarded
// because a newer action started while it was loading.
var ErrSuperseded = errors.New("superseded by a newer navigation")

// Session is one viewer's position in the dashboard: the view mode, the
// anchor date and the last screen shown.
type Session struct {
	svc *Service

	mu      sync.Mutex
	mode    period.Mode
	anchor  string
	gen     uint64
	screen  *Screen
	records []models.DailyRecord
}

func NewSession(svc *Service) *Session {
	return &Session{svc: svc, mode: period.Day}
}

// Init starts on the day view of the newest available date.
func (s *Session) Init(ctx context.Context) (*Screen, error) {
	s.mu.Lock()
	s.mode = period.Day
	s.anchor = s.svc.DefaultAnchor()
	s.mu.Unlock()
	return s.refresh(ctx)
}

// OnNavigate steps one range back (dir < 0) or forward (dir > 0).
func (s *Session) OnNavigate(ctx context.Context, dir int) (*Screen, error) {
	s.mu.Lock()
	next, err := period.Step(s.mode, s.anchor, dir, s.svc.Dates())
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.anchor = next
	s.mu.Unlock()
	return s.refresh(ctx)
}

// OnViewChange switches between day, week and month around the same anchor.
func (s *Session) OnViewChange(ctx context.Context, mode period.Mode) (*Screen, error) {
	if _, err := period.ParseMode(string(mode)); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	return s.refresh(ctx)
}

// OnPick jumps to date. In day view it snaps to the nearest available date.
func (s *Session) OnPick(ctx context.Context, date string) (*Screen, error) {
	s.mu.Lock()
	if s.mode == period.Day {
		snapped, err := period.Nearest(date, s.svc.Dates())
		if err != nil {
			s.mu.Unlock()
			return nil, err
		}
		date = snapped
	} else if _, err := period.Resolve(s.mode, date, nil); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.anchor = date
	s.mu.Unlock()
	return s.refresh(ctx)
}

// Current is the last screen installed, or nil before Init.
func (s *Session) Current() *Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// DrillDown filters the raw records behind the current screen.
func (s *Session) DrillDown(metric, sdr string) *DrillDown {
	s.mu.Lock()
	records := s.records
	s.mu.Unlock()
	return drillDown(records, metric, sdr)
}

func (s *Session) refresh(ctx context.Context) (*Screen, error) {
	s.mu.Lock()
	s.gen++
	gen, mode, anchor := s.gen, s.mode, s.anchor
	s.mu.Unlock()

	sc, records, err := s.svc.load(ctx, mode, anchor)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil, ErrSuperseded
	}
	s.screen, s.records = sc, records
	return sc, nil
}
