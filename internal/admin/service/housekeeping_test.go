package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/clinicadmin/internal/admin/domain"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/metrics"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/service"
	"github.com/aussiebroadwan/clinicadmin/internal/admin/store"
	"github.com/aussiebroadwan/clinicadmin/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// seedUnreachable grants a reachable root, an orphan and both nodes of a
// parent cycle to one role. It returns the ids of the unreachable menus.
func seedUnreachable(t *testing.T, s store.Store) (root int64, unreachable []int64) {
	t.Helper()
	ctx := context.Background()

	role := mustRole(t, s, "clerk")
	r := mustMenu(t, s, domain.Menu{Title: "Root", Path: "/", IsActive: true})
	orphan := mustMenu(t, s, domain.Menu{Title: "Orphan", ParentID: ptr(9999)})
	x := mustMenu(t, s, domain.Menu{Title: "X"})
	y := mustMenu(t, s, domain.Menu{Title: "Y", ParentID: &x.ID})
	_, err := s.Menus().UpdateMenu(ctx, domain.Menu{ID: x.ID, Title: "X", ParentID: &y.ID})
	require.NoError(t, err)

	for _, id := range []int64{r.ID, orphan.ID, x.ID, y.ID} {
		require.NoError(t, s.MenuRoles().Assign(ctx, role.ID, id))
	}
	return r.ID, []int64{orphan.ID, x.ID, y.ID}
}

func TestHousekeeping_SweepReportsOnly(t *testing.T) {
	s := newStore(t)
	_, unreachable := seedUnreachable(t, s)

	hk := service.NewHousekeepingService(s, slogx.Discard(), time.Hour, false)
	report, err := hk.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, unreachable, report.UnreachableMenus)
	require.Zero(t, report.Pruned)

	all, err := s.MenuRoles().ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func TestHousekeeping_SweepPrunes(t *testing.T) {
	s := newStore(t)
	root, _ := seedUnreachable(t, s)

	hk := service.NewHousekeepingService(s, slogx.Discard(), time.Hour, true)
	report, err := hk.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), report.Pruned)

	all, err := s.MenuRoles().ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, root, all[0].MenuID)

	// A second pass has nothing left to do.
	report, err = hk.Sweep(context.Background())
	require.NoError(t, err)
	require.Empty(t, report.UnreachableMenus)
}

func TestHousekeeping_StartStop(t *testing.T) {
	s := newStore(t)
	seedUnreachable(t, s)

	m := metrics.New()
	hk := service.NewHousekeepingService(s, slogx.Discard(), 0, false)
	hk.Metrics = m
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(m.HousekeepingRunsTotal.WithLabelValues("ok")) == 1
	}, 2*time.Second, 10*time.Millisecond)
	hk.Stop()

	require.Equal(t, 3.0, testutil.ToFloat64(m.UnreachableGrants))
}
