// Package views turns pipeline results into the render models the dashboard
// page draws: the store map, the two charts and the segmented table.
//
// Every builder is a pure function of its input rows and returns an empty,
// non-nil model for an empty view so that clients never special-case null.
package views
