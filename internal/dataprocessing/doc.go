// Package dataprocessing loads the scaled store spreadsheet and runs the
// filter and segment pipeline over it.
//
// # Data Flow
//
//	xlsx → ParseFile → Dataset (cached) → Apply → Summarize
//	                                             → Segment → MostNotable
//	                                             → TopByVisits
//
// Every filter change re-runs the whole pipeline from the cached Dataset.
// Nothing here mutates the Dataset; each stage returns fresh slices.
//
// # Usage
//
//	cache := dataprocessing.NewDatasetCache(logger)
//	ds, err := cache.Load(ctx, "dashboard_ready_scaled.xlsx", "")
//	if err != nil {
//	    return err
//	}
//	opts := dataprocessing.Options(ds)
//	res := dataprocessing.Run(ds, opts, dataprocessing.DefaultFilterState(opts))
//
// # Error Handling
//
// Load failures are returned as *errors.AppError: STORAGE when the file
// cannot be opened, PARSING when the sheet or required columns are missing.
// Cell-level problems never fail a load; unparsable numbers become missing
// values and rows without coordinates or visit figures are dropped.
package dataprocessing
