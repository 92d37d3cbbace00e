package simulator

// Outcome is the result of one simulated delivery.
type Outcome int

const (
	OutcomeWicket Outcome = iota
	OutcomeBoundary
	OutcomeRegular
	OutcomeDotBall
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWicket:
		return "wicket"
	case OutcomeBoundary:
		return "boundary"
	case OutcomeRegular:
		return "regular"
	case OutcomeDotBall:
		return "dot_ball"
	default:
		return "unknown"
	}
}

// WeightedOutcome is one row of the delivery table.
type WeightedOutcome struct {
	Weight  float64
	Outcome Outcome
}

// DefaultOutcomes: 10% wicket, 15% boundary, 55% runs, 20% dot ball.
var DefaultOutcomes = []WeightedOutcome{
	{Weight: 0.10, Outcome: OutcomeWicket},
	{Weight: 0.15, Outcome: OutcomeBoundary},
	{Weight: 0.55, Outcome: OutcomeRegular},
	{Weight: 0.20, Outcome: OutcomeDotBall},
}

// Pick maps a uniform draw r onto table by cumulative weight. Draws past the
// total weight fall on the last row.
func Pick(table []WeightedOutcome, r float64) Outcome {
	if len(table) == 0 {
		return OutcomeDotBall
	}
	cum := 0.0
	for _, row := range table {
		cum += row.Weight
		if r < cum {
			return row.Outcome
		}
	}
	return table[len(table)-1].Outcome
}
