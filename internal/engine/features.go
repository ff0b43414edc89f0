package engine

import (
	"fmt"
	"strings"
)

// Feature names a section of the budget module that can be switched off.
type Feature string

const (
	FeatureBudgets         Feature = "budgets"
	FeatureExpenses        Feature = "expenses"
	FeaturePayments        Feature = "payments"
	FeatureAllocationPlans Feature = "allocation_plans"
	FeatureSavings         Feature = "savings"
	FeatureReports         Feature = "reports"
	FeatureCharts          Feature = "charts"
	FeatureExports         Feature = "exports"
)

// AllFeatures returns every feature in display order.
func AllFeatures() []Feature {
	return []Feature{
		FeatureBudgets,
		FeatureExpenses,
		FeaturePayments,
		FeatureAllocationPlans,
		FeatureSavings,
		FeatureReports,
		FeatureCharts,
		FeatureExports,
	}
}

// Visibility maps each feature to whether it is enabled.
type Visibility map[Feature]bool

// FeatureState is one entry of a rendered visibility map.
type FeatureState struct {
	Name    Feature `json:"name"`
	Enabled bool    `json:"enabled"`
}

// DefaultVisibility enables every feature.
func DefaultVisibility() Visibility {
	v := make(Visibility, len(AllFeatures()))
	for _, f := range AllFeatures() {
		v[f] = true
	}
	return v
}

// ParseDisabled builds a visibility map with the named features switched off.
// Unknown names are rejected so a typo in configuration is not silently ignored.
func ParseDisabled(names []string) (Visibility, error) {
	v := DefaultVisibility()
	for _, raw := range names {
		name := Feature(strings.TrimSpace(strings.ToLower(raw)))
		if name == "" {
			continue
		}
		if _, ok := v[name]; !ok {
			return nil, fmt.Errorf("unknown feature %q", raw)
		}
		v[name] = false
	}
	return v, nil
}

// Enabled reports whether f is switched on. Features missing from the map
// are disabled.
func (v Visibility) Enabled(f Feature) bool {
	return v[f]
}

// States lists every feature with its state, in AllFeatures order.
func (v Visibility) States() []FeatureState {
	states := make([]FeatureState, 0, len(AllFeatures()))
	for _, f := range AllFeatures() {
		states = append(states, FeatureState{Name: f, Enabled: v.Enabled(f)})
	}
	return states
}
