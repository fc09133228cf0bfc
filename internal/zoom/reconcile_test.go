package zoom

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/dpizoom/internal/platform"
	"github.com/1broseidon/dpizoom/internal/platform/platformtest"
)

func newReconciler(b *platformtest.Browser, override bool) *Reconciler {
	return NewReconciler(b, DefaultPolicy(), override, nil)
}

func TestApplyZoom_WritesOriginThenTabScope(t *testing.T) {
	b := platformtest.New()
	b.AddTab(1, 10, 1.0, platform.ZoomScopePerOrigin)

	outcome, err := newReconciler(b, false).ApplyZoom(context.Background(), 1, DefaultHiDPI)
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome)

	writes := b.Writes()
	require.Len(t, writes, 2)
	assert.Equal(t, "SetTabZoom", writes[0].Method)
	assert.Equal(t, 1.5, writes[0].Factor)
	assert.Equal(t, "SetTabZoomScope", writes[1].Method)
	assert.Equal(t, platform.ZoomScopePerTab, writes[1].Scope)

	st, _ := b.Tab(1)
	assert.Equal(t, 1.5, st.Zoom)
	assert.Equal(t, platform.ZoomScopePerTab, st.Scope)
}

func TestApplyZoom_SkipsWhenAlreadyAtTarget(t *testing.T) {
	b := platformtest.New()
	b.AddTab(1, 10, 1.0, platform.ZoomScopePerTab)

	outcome, err := newReconciler(b, false).ApplyZoom(context.Background(), 1, DefaultNormal)
	require.NoError(t, err)
	assert.Equal(t, Skipped, outcome)
	assert.Empty(t, b.Writes())
}

func TestApplyZoom_PreservesCustomZoom(t *testing.T) {
	b := platformtest.New()
	b.AddTab(1, 10, 2.0, platform.ZoomScopePerTab)

	outcome, err := newReconciler(b, false).ApplyZoom(context.Background(), 1, DefaultHiDPI)
	require.NoError(t, err)
	assert.Equal(t, Skipped, outcome)
	assert.Empty(t, b.Writes())

	st, _ := b.Tab(1)
	assert.Equal(t, 2.0, st.Zoom)
}

func TestApplyZoom_OverrideReplacesCustomZoom(t *testing.T) {
	b := platformtest.New()
	b.AddTab(1, 10, 2.0, platform.ZoomScopePerTab)

	outcome, err := newReconciler(b, true).ApplyZoom(context.Background(), 1, DefaultHiDPI)
	require.NoError(t, err)
	assert.Equal(t, Updated, outcome)

	st, _ := b.Tab(1)
	assert.Equal(t, 1.5, st.Zoom)
	assert.Equal(t, platform.ZoomScopePerTab, st.Scope)
}

func TestApplyZoom_ToleratedWriteFailure(t *testing.T) {
	b := platformtest.New()
	b.AddTab(7, 10, 1.0, platform.ZoomScopePerOrigin)
	b.SetZoomErr[7] = errors.New("No tab with id: 7")

	outcome, err := newReconciler(b, false).ApplyZoom(context.Background(), 7, DefaultHiDPI)
	require.NoError(t, err)
	assert.Equal(t, Tolerated, outcome)

	writes := b.Writes()
	require.Len(t, writes, 1, "no scope write after a failed zoom write")
	assert.Equal(t, "SetTabZoom", writes[0].Method)
}

func TestApplyZoom_ToleratedReadFailure(t *testing.T) {
	b := platformtest.New()
	b.AddTab(3, 10, 1.0, platform.ZoomScopePerOrigin)
	b.GetZoomErr[3] = errors.New("Cannot access contents of url \"chrome://settings/\".")

	outcome, err := newReconciler(b, false).ApplyZoom(context.Background(), 3, DefaultHiDPI)
	require.NoError(t, err)
	assert.Equal(t, Tolerated, outcome)
	assert.Empty(t, b.Writes())
}

func TestApplyZoom_FatalErrorPropagates(t *testing.T) {
	b := platformtest.New()
	b.AddTab(4, 10, 1.0, platform.ZoomScopePerOrigin)
	boom := errors.New("extension context invalidated")
	b.SetScopeErr[4] = boom

	outcome, err := newReconciler(b, false).ApplyZoom(context.Background(), 4, DefaultHiDPI)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, Skipped, outcome)
}

func TestIsTolerated(t *testing.T) {
	assert.True(t, IsTolerated(errors.New("Cannot zoom a tab in disabled mode.")))
	assert.True(t, IsTolerated(errors.New("tabs.setZoom: No tab with id: 12.")))
	assert.True(t, IsTolerated(errors.New("Cannot access a chrome:// URL")))
	assert.False(t, IsTolerated(errors.New("Unexpected failure")))
	assert.False(t, IsTolerated(nil))
}
