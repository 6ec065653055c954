// Package domain holds the data contracts shared by the loader, the
// filter and segment pipeline, the view adapters and the transports.
//
// Values missing from the spreadsheet are carried as Optional so that a
// blank cell never turns into a zero.
package domain
