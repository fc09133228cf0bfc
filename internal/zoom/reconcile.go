package zoom

import (
	"context"
	"log/slog"
	"strings"

	"github.com/1broseidon/dpizoom/internal/platform"
)

// Outcome is the result of a single tab reconciliation.
type Outcome int

const (
	Skipped Outcome = iota
	Updated
	Tolerated
)

func (o Outcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case Tolerated:
		return "tolerated"
	default:
		return "skipped"
	}
}

// Browser error messages that are expected during normal operation.
var toleratedMessages = []string{
	"chrome://",                          // internal pages cannot be zoomed
	"Cannot zoom a tab in disabled mode", // tab not fully loaded
	"No tab with id:",                    // tab closed in the meantime
}

// IsTolerated reports whether err is one of the expected browser failures.
func IsTolerated(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, m := range toleratedMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// Reconciler writes a target zoom factor to individual tabs.
type Reconciler struct {
	browser        platform.Browser
	policy         Policy
	overrideCustom bool
	logger         *slog.Logger
}

// NewReconciler creates a reconciler. When overrideCustom is false, tabs with
// a zoom factor outside the policy's two tiers are left alone.
func NewReconciler(browser platform.Browser, policy Policy, overrideCustom bool, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		browser:        browser,
		policy:         policy,
		overrideCustom: overrideCustom,
		logger:         logger,
	}
}

// Policy returns the reconciler's zoom policy.
func (r *Reconciler) Policy() Policy {
	return r.policy
}

// ApplyZoom converges one tab to target. Tolerated browser errors are
// swallowed and reported as Tolerated; every other error is returned as is.
func (r *Reconciler) ApplyZoom(ctx context.Context, tabID platform.TabID, target Factor) (Outcome, error) {
	outcome, err := r.applyZoom(ctx, tabID, target)
	if err != nil && IsTolerated(err) {
		r.logger.Debug("ignoring zoom failure", "tab_id", tabID, "error", err)
		return Tolerated, nil
	}
	return outcome, err
}

func (r *Reconciler) applyZoom(ctx context.Context, tabID platform.TabID, target Factor) (Outcome, error) {
	raw, err := r.browser.TabZoom(ctx, tabID)
	if err != nil {
		return Skipped, err
	}
	current := Factor(raw)
	if current == target {
		return Skipped, nil
	}
	if !r.policy.Known(current) && !r.overrideCustom {
		r.logger.Debug("keeping custom zoom", "tab_id", tabID, "zoom", current)
		return Skipped, nil
	}

	// Origin scope first, then per-tab. The reverse order shows the zoom popup
	// on every navigation.
	if err := r.browser.SetTabZoom(ctx, tabID, float64(target)); err != nil {
		return Skipped, err
	}
	if err := r.browser.SetTabZoomScope(ctx, tabID, platform.ZoomScopePerTab); err != nil {
		return Skipped, err
	}

	r.logger.Debug("tab zoom updated", "tab_id", tabID, "from", current, "to", target)
	return Updated, nil
}
