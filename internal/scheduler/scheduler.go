package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/millermeares/FantasyFootballSuperUser/internal/platform/logging"
	"github.com/millermeares/FantasyFootballSuperUser/internal/service"
)

type Options struct {
	Timezone        string
	RefreshInterval time.Duration
	Logger          *logging.Logger
}

type Scheduler struct {
	s               gocron.Scheduler
	fantasyService  *service.FantasyService
	sendMessage     func(string) error
	refreshInterval time.Duration
	logger          *logging.Logger
}

// NewScheduler builds the job runner. sendMessage may be nil, in which case
// only the snapshot refresh job is registered.
func NewScheduler(fantasyService *service.FantasyService, sendMessage func(string) error, opts Options) (*Scheduler, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	location, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		logger.Error("Failed to load location, using UTC", "timezone", opts.Timezone, "error", err)
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	refresh := opts.RefreshInterval
	if refresh <= 0 {
		refresh = time.Hour
	}

	return &Scheduler{
		s:               s,
		fantasyService:  fantasyService,
		sendMessage:     sendMessage,
		refreshInterval: refresh,
		logger:          logger,
	}, nil
}

func (s *Scheduler) Start() error {
	_, err := s.s.NewJob(
		gocron.DurationJob(s.refreshInterval),
		gocron.NewTask(s.refreshSnapshot),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh job: %w", err)
	}

	if s.sendMessage != nil {
		// Gameday - Sunday 11:30, before the early kickoffs
		_, err = s.s.NewJob(
			gocron.WeeklyJob(1, gocron.NewWeekdays(time.Sunday), gocron.NewAtTimes(gocron.NewAtTime(11, 30, 0))),
			gocron.NewTask(s.sendGameday),
		)
		if err != nil {
			return fmt.Errorf("failed to create gameday job: %w", err)
		}

		// Exposure - Tuesday 7:30, after waivers settle
		_, err = s.s.NewJob(
			gocron.WeeklyJob(1, gocron.NewWeekdays(time.Tuesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
			gocron.NewTask(s.sendExposure),
		)
		if err != nil {
			return fmt.Errorf("failed to create exposure job: %w", err)
		}
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) refreshSnapshot() {
	if err := s.fantasyService.Refresh(context.Background()); err != nil {
		s.logger.Error("Failed to refresh snapshot", "error", err)
	}
}

func (s *Scheduler) sendGameday() {
	report, err := s.fantasyService.GetGamedayReport(context.Background())
	if err != nil {
		s.logger.Error("Failed to get gameday report", "error", err)
		return
	}
	s.send(report)
}

func (s *Scheduler) sendExposure() {
	report, err := s.fantasyService.GetExposureReport(context.Background())
	if err != nil {
		s.logger.Error("Failed to get exposure report", "error", err)
		return
	}
	s.send(report)
}

func (s *Scheduler) send(text string) {
	if err := s.sendMessage(text); err != nil {
		s.logger.Error("Failed to send scheduled message", "error", err)
	}
}
