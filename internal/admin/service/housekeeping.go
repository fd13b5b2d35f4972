package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/metrics"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/aussiebroadwan/clinicadmin/pkg/menutree"
)

// HousekeepingService periodically looks for grants whose menu can no
// longer be reached from a root menu (orphaned or on a parent cycle). Such
// grants are invisible in the editor, so they are logged and, with Prune,
// deleted.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration
	Prune    bool
	Metrics  *metrics.Metrics

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// SweepReport is the outcome of one sweep.
type SweepReport struct {
	UnreachableMenus []int64
	Pruned           int64
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration, prune bool) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		Prune:    prune,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "prune", s.Prune)
}

// Stop blocks until an in-progress sweep has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run immediately on startup
	s.tick()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.Interval)
	defer cancel()

	report, err := s.Sweep(ctx)
	s.Metrics.RecordSweep(len(report.UnreachableMenus), err)
	if err != nil {
		s.Logger.Error("housekeeping sweep failed", "error", err)
	}
}

// Sweep runs one pass.
func (s *HousekeepingService) Sweep(ctx context.Context) (SweepReport, error) {
	menus, err := s.Store.Menus().ListAll(ctx)
	if err != nil {
		return SweepReport{}, err
	}
	grants, err := s.Store.MenuRoles().ListAll(ctx)
	if err != nil {
		return SweepReport{}, err
	}

	granted := make([]int64, 0, len(grants))
	for _, g := range grants {
		granted = append(granted, g.MenuID)
	}
	slices.Sort(granted)
	granted = slices.Compact(granted)

	forest := menutree.Build(domain.MenuItems(menus))
	report := SweepReport{UnreachableMenus: forest.Unreachable(granted)}

	if len(report.UnreachableMenus) == 0 {
		s.Logger.Debug("housekeeping found no unreachable grants")
		return report, nil
	}

	s.Logger.Warn("grants on unreachable menus",
		"menu_ids", report.UnreachableMenus,
		"prune", s.Prune,
	)
	if !s.Prune {
		return report, nil
	}

	report.Pruned, err = s.Store.MenuRoles().DeleteByMenuIDs(ctx, report.UnreachableMenus)
	if err != nil {
		return report, err
	}
	s.Logger.Info("pruned unreachable grants", "deleted", report.Pruned)
	return report, nil
}
