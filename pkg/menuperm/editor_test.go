package menuperm_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/clinicadmin/pkg/menuperm"
	"github.com/stretchr/testify/require"
)

func loadedEditor(t *testing.T, b *memBackend, opts ...menuperm.Option) *menuperm.Editor {
	t.Helper()
	ed := menuperm.NewEditor(b, opts...)
	require.NoError(t, ed.Load(context.Background()))
	return ed
}

func TestEditor_LoadBuildsForest(t *testing.T) {
	ed := loadedEditor(t, newMemBackend())

	require.Len(t, ed.Roles(), 2)
	require.Equal(t, []int64{1, 2, 3, 4}, ed.Forest().IDs())
	_, total := ed.Counts()
	require.Equal(t, 4, total)
}

func TestEditor_LoadFailureLeavesEditorEmpty(t *testing.T) {
	b := newMemBackend(menuperm.Assignment{RoleID: 2, MenuID: 4})
	ed := loadedEditor(t, b)
	require.NoError(t, ed.SetActiveRole(2))

	b.failLoad = errBoom
	err := ed.Load(context.Background())
	require.ErrorIs(t, err, errBoom)

	require.Empty(t, ed.Roles())
	require.Equal(t, 0, ed.Forest().Len())
	_, ok := ed.ActiveRole()
	require.False(t, ok)

	_, err = ed.Save(context.Background(), menuperm.AlwaysConfirm)
	require.ErrorIs(t, err, menuperm.ErrNotLoaded)
}

func TestEditor_RoleSwitchResetsSelection(t *testing.T) {
	b := newMemBackend(
		menuperm.Assignment{RoleID: 1, MenuID: 4},
		menuperm.Assignment{RoleID: 2, MenuID: 2},
	)
	ed := loadedEditor(t, b)

	require.NoError(t, ed.SetActiveRole(1))
	require.Equal(t, []int64{4}, ed.Checked())

	_, err := ed.Toggle(1)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3, 4}, ed.Checked())

	// Unsaved edits are discarded.
	require.NoError(t, ed.SetActiveRole(2))
	require.Equal(t, []int64{2}, ed.Checked())
	require.NoError(t, ed.SetActiveRole(1))
	require.Equal(t, []int64{4}, ed.Checked())

	require.NoError(t, ed.ClearActiveRole())
	require.Empty(t, ed.Checked())
}

func TestEditor_SaveRoundTrip(t *testing.T) {
	b := newMemBackend(
		menuperm.Assignment{RoleID: 2, MenuID: 1},
		menuperm.Assignment{RoleID: 2, MenuID: 2},
		menuperm.Assignment{RoleID: 2, MenuID: 3},
	)
	ed := loadedEditor(t, b)
	require.NoError(t, ed.SetActiveRole(2))

	_, err := ed.Toggle(3) // drops C, and A with it
	require.NoError(t, err)
	_, err = ed.Toggle(4)
	require.NoError(t, err)
	want := ed.Checked()
	require.Equal(t, []int64{2, 4}, want)

	var confirmed menuperm.Plan
	res, err := ed.Save(context.Background(), func(p menuperm.Plan) bool {
		confirmed = p
		return true
	})
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Equal(t, []int64{4}, confirmed.Grant)
	require.Equal(t, []int64{1, 3}, confirmed.Revoke)

	// A fresh session sees exactly what was saved.
	again := loadedEditor(t, b)
	require.NoError(t, again.SetActiveRole(2))
	require.Equal(t, want, again.Checked())

	// Saving again issues nothing and does not ask.
	b.reset()
	res, err = ed.Save(context.Background(), func(menuperm.Plan) bool {
		t.Fatal("confirm called for empty plan")
		return false
	})
	require.NoError(t, err)
	require.Empty(t, res.Outcomes)
	require.Empty(t, b.recorded())
}

func TestEditor_LoadOvertakenBySave(t *testing.T) {
	ctx := context.Background()
	b := newMemBackend()
	ed := loadedEditor(t, b)
	require.NoError(t, ed.SetActiveRole(1))

	// The reload reads the assignments before the save below writes them.
	g := b.holdNextList()
	loadErr := make(chan error, 1)
	go func() { loadErr <- ed.Load(ctx) }()
	<-g.entered

	_, err := ed.Toggle(4)
	require.NoError(t, err)
	res, err := ed.Save(ctx, menuperm.AlwaysConfirm)
	require.NoError(t, err)
	require.True(t, res.OK())

	close(g.release)
	require.ErrorIs(t, <-loadErr, menuperm.ErrStaleLoad)

	require.Equal(t, []int64{4}, ed.Checked())
	p, err := ed.Pending()
	require.NoError(t, err)
	require.True(t, p.Empty())

	// A load with nothing racing it goes through.
	require.NoError(t, ed.Load(ctx))
	require.Equal(t, []int64{4}, ed.Checked())
}

func TestEditor_SaveCancelled(t *testing.T) {
	b := newMemBackend()
	ed := loadedEditor(t, b)
	require.NoError(t, ed.SetActiveRole(1))
	_, _ = ed.Toggle(4)

	_, err := ed.Save(context.Background(), func(menuperm.Plan) bool { return false })
	require.ErrorIs(t, err, menuperm.ErrCancelled)
	require.Empty(t, b.recorded())
	require.False(t, ed.Saving())
	require.Equal(t, []int64{4}, ed.Checked())
}

func TestEditor_SaveWithoutRole(t *testing.T) {
	ed := loadedEditor(t, newMemBackend())

	_, err := ed.Save(context.Background(), menuperm.AlwaysConfirm)
	require.ErrorIs(t, err, menuperm.ErrNoActiveRole)

	_, err = ed.Pending()
	require.ErrorIs(t, err, menuperm.ErrNoActiveRole)
}

func TestEditor_SingleFlight(t *testing.T) {
	b := newMemBackend()
	b.block = make(chan struct{})
	ed := loadedEditor(t, b)
	require.NoError(t, ed.SetActiveRole(1))
	_, _ = ed.Toggle(4)

	done := make(chan error, 1)
	go func() {
		_, err := ed.Save(context.Background(), menuperm.AlwaysConfirm)
		done <- err
	}()

	require.Eventually(t, ed.Saving, time.Second, time.Millisecond)

	_, err := ed.Save(context.Background(), menuperm.AlwaysConfirm)
	require.ErrorIs(t, err, menuperm.ErrSaveInProgress)
	_, err = ed.Toggle(1)
	require.ErrorIs(t, err, menuperm.ErrSaveInProgress)
	require.ErrorIs(t, ed.SetActiveRole(2), menuperm.ErrSaveInProgress)
	require.ErrorIs(t, ed.Load(context.Background()), menuperm.ErrSaveInProgress)

	close(b.block)
	require.NoError(t, <-done)
	require.False(t, ed.Saving())
	require.Len(t, b.recorded(), 1)
}

func TestEditor_PartialFailureKeepsSelection(t *testing.T) {
	b := newMemBackend(menuperm.Assignment{RoleID: 2, MenuID: 4})
	b.failGrant[3] = true
	ed := loadedEditor(t, b, menuperm.WithConcurrency(2))
	require.NoError(t, ed.SetActiveRole(2))

	_, _ = ed.Toggle(1) // A, B, C
	_, _ = ed.Toggle(4) // clears D
	require.Equal(t, []int64{1, 2, 3}, ed.Checked())

	res, err := ed.Save(context.Background(), menuperm.AlwaysConfirm)
	require.ErrorIs(t, err, menuperm.ErrSyncFailed)
	require.Len(t, res.Outcomes, 4)
	require.Len(t, res.Failed(), 1)
	require.Equal(t, int64(3), res.Failed()[0].MenuID)

	// The user's intent survives and the next save covers only what failed.
	require.Equal(t, []int64{1, 2, 3}, ed.Checked())
	plan, err := ed.Pending()
	require.NoError(t, err)
	require.Equal(t, menuperm.Plan{RoleID: 2, Grant: []int64{3}}, plan)

	delete(b.failGrant, 3)
	b.reset()
	res, err = ed.Retry(context.Background(), res, menuperm.AlwaysConfirm)
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Equal(t, []call{{menuperm.OpGrant, 2, 3}}, b.recorded())

	plan, err = ed.Pending()
	require.NoError(t, err)
	require.True(t, plan.Empty())
}

func TestEditor_RetryRequiresSameRole(t *testing.T) {
	ed := loadedEditor(t, newMemBackend())
	require.NoError(t, ed.SetActiveRole(1))

	prev := menuperm.BatchResult{RoleID: 2}
	_, err := ed.Retry(context.Background(), prev, menuperm.AlwaysConfirm)
	require.ErrorIs(t, err, menuperm.ErrNoActiveRole)
}

func TestEditor_RefreshFailureAfterSave(t *testing.T) {
	b := newMemBackend()
	ed := loadedEditor(t, b)
	require.NoError(t, ed.SetActiveRole(1))
	_, _ = ed.Toggle(4)

	b.failList.Store(true)
	res, err := ed.Save(context.Background(), menuperm.AlwaysConfirm)
	require.ErrorIs(t, err, errBoom)
	require.True(t, res.OK())
	require.False(t, ed.Saving())
}
