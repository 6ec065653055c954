package views

import (
	"strconv"

	"storepulse/internal/dataprocessing"
	"storepulse/pkg/contracts/domain"
)

const notAvailable = "N/A"

func formatOneDecimal(v float64) string {
	return strconv.FormatFloat(dataprocessing.RoundTo(v, 1), 'f', 1, 64)
}

func formatOptionalOneDecimal(o domain.Optional[float64]) string {
	if !o.Valid {
		return notAvailable
	}
	return formatOneDecimal(o.Value)
}

// clusterLabel renders a cluster id the way the legend names it
func clusterLabel(c domain.Optional[float64]) string {
	if !c.Valid {
		return notAvailable
	}
	return strconv.FormatFloat(c.Value, 'f', -1, 64)
}
