package dataprocessing

import (
	"math"
	"sort"

	"storepulse/pkg/contracts/domain"
)

// Options computes the filter choices from the unfiltered dataset.
// Cluster values are sorted ascending, income groups keep first-appearance
// order and the gap bounds are the floors of the minimum and maximum gap.
func Options(ds *domain.Dataset) domain.FilterOptions {
	opts := domain.FilterOptions{
		HasCluster:     ds.HasCluster,
		HasIncomeGroup: ds.HasIncomeGroup,
		Clusters:       []float64{},
		IncomeGroups:   []string{},
	}

	seenCluster := make(map[float64]struct{})
	seenIncome := make(map[string]struct{})
	minGap, maxGap := math.Inf(1), math.Inf(-1)

	for _, r := range ds.Records {
		if c, ok := r.Cluster.Get(); ok && ds.HasCluster {
			if _, seen := seenCluster[c]; !seen {
				seenCluster[c] = struct{}{}
				opts.Clusters = append(opts.Clusters, c)
			}
		}
		if g, ok := r.IncomeGroup.Get(); ok && ds.HasIncomeGroup {
			if _, seen := seenIncome[g]; !seen {
				seenIncome[g] = struct{}{}
				opts.IncomeGroups = append(opts.IncomeGroups, g)
			}
		}
		if gap, ok := r.Gap.Get(); ok {
			minGap = math.Min(minGap, gap)
			maxGap = math.Max(maxGap, gap)
		}
	}

	sort.Float64s(opts.Clusters)

	if !math.IsInf(minGap, 1) {
		opts.HasGap = true
		opts.Gap = domain.GapBounds{
			Min: int(math.Floor(minGap)),
			Max: int(math.Floor(maxGap)),
		}
	}

	return opts
}

// DefaultFilterState selects everything: every cluster, every income group
// and the full gap range. Columns without any values stay unselected.
func DefaultFilterState(opts domain.FilterOptions) domain.FilterState {
	state := domain.FilterState{}
	if opts.HasCluster && len(opts.Clusters) > 0 {
		state.Clusters = append([]float64{}, opts.Clusters...)
	}
	if opts.HasIncomeGroup && len(opts.IncomeGroups) > 0 {
		state.IncomeGroups = append([]string{}, opts.IncomeGroups...)
	}
	if opts.HasGap {
		state.GapRange = &domain.GapRange{Lo: opts.Gap.Min, Hi: opts.Gap.Max}
	}
	return state
}

// predicate reports whether a record passes one filter
type predicate func(domain.Record) bool

// Apply returns the records passing every engaged filter, in dataset order.
// The dataset is not modified; the result is a new slice.
func Apply(ds *domain.Dataset, opts domain.FilterOptions, state domain.FilterState) []domain.Record {
	predicates := buildPredicates(ds, opts, state)

	view := make([]domain.Record, 0, len(ds.Records))
	for _, r := range ds.Records {
		if matchesAll(r, predicates) {
			view = append(view, r)
		}
	}
	return view
}

func matchesAll(r domain.Record, predicates []predicate) bool {
	for _, p := range predicates {
		if !p(r) {
			return false
		}
	}
	return true
}

func buildPredicates(ds *domain.Dataset, opts domain.FilterOptions, state domain.FilterState) []predicate {
	var predicates []predicate

	// A selection holding every option is the same as no selection
	if ds.HasCluster && state.Clusters != nil && !coversAll(state.Clusters, opts.Clusters) {
		allowed := make(map[float64]struct{}, len(state.Clusters))
		for _, c := range state.Clusters {
			allowed[c] = struct{}{}
		}
		predicates = append(predicates, func(r domain.Record) bool {
			c, ok := r.Cluster.Get()
			if !ok {
				return false
			}
			_, in := allowed[c]
			return in
		})
	}

	if ds.HasIncomeGroup && state.IncomeGroups != nil && !coversAll(state.IncomeGroups, opts.IncomeGroups) {
		allowed := make(map[string]struct{}, len(state.IncomeGroups))
		for _, g := range state.IncomeGroups {
			allowed[g] = struct{}{}
		}
		predicates = append(predicates, func(r domain.Record) bool {
			g, ok := r.IncomeGroup.Get()
			if !ok {
				return false
			}
			_, in := allowed[g]
			return in
		})
	}

	if state.GapRange != nil && opts.HasGap {
		lo, hi := state.GapRange.Lo, state.GapRange.Hi
		// A handle resting on a slider extreme leaves that side open
		boundLo := lo > opts.Gap.Min
		boundHi := hi < opts.Gap.Max
		if boundLo || boundHi {
			predicates = append(predicates, func(r domain.Record) bool {
				gap, ok := r.Gap.Get()
				if !ok {
					return false
				}
				if boundLo && gap < float64(lo) {
					return false
				}
				if boundHi && gap > float64(hi) {
					return false
				}
				return true
			})
		}
	}

	return predicates
}

// coversAll reports whether selection contains every option.
// An empty option list is never covered so an explicit empty selection
// still yields an empty view.
func coversAll[T comparable](selection, options []T) bool {
	if len(options) == 0 {
		return false
	}
	set := make(map[T]struct{}, len(selection))
	for _, s := range selection {
		set[s] = struct{}{}
	}
	for _, o := range options {
		if _, ok := set[o]; !ok {
			return false
		}
	}
	return true
}
