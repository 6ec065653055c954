package exporter

import (
	"strconv"

	"storepulse/pkg/contracts/domain"
)

// formatFloat writes the shortest decimal that round-trips, so 150 stays
// "150" and 99.99 stays "99.99".
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatOptionalFloat leaves a missing value as an empty cell
func formatOptionalFloat(o domain.Optional[float64]) string {
	if !o.Valid {
		return ""
	}
	return formatFloat(o.Value)
}

// formatOptionalString leaves a missing value as an empty cell
func formatOptionalString(o domain.Optional[string]) string {
	return o.OrElse("")
}
