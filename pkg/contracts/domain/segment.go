package domain

// Segment is the performance label derived from a store's visit gap
type Segment string

const (
	SegmentStrongPerformer Segment = "Strong Performer"
	SegmentOnTarget        Segment = "On Target"
	SegmentOpportunityArea Segment = "Opportunity Area"
)

// Segment thresholds on visits_gap_scaled
const (
	StrongPerformerThreshold = 20.0
	OpportunityThreshold     = -20.0
)

// Segments lists every label in display order
var Segments = []Segment{SegmentStrongPerformer, SegmentOnTarget, SegmentOpportunityArea}

// String implements fmt.Stringer
func (s Segment) String() string {
	return string(s)
}

// Description returns the explanation shown under the segmented table
func (s Segment) Description() string {
	switch s {
	case SegmentStrongPerformer:
		return "Stores significantly exceed expected visits. Consider leveraging successful strategies."
	case SegmentOnTarget:
		return "Stores meeting expectations; maintain current strategies."
	case SegmentOpportunityArea:
		return "Stores significantly below predictions; investigate competition, pricing, or marketing."
	default:
		return ""
	}
}

// SegmentedRow is a record labelled by the segmentation classifier
type SegmentedRow struct {
	Record
	Segment Segment           `json:"performance_segment"`
	AbsGap  Optional[float64] `json:"abs_gap"`
}
