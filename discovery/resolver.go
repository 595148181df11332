package discovery

// DefaultMatchThreshold makes a like turn into a match 70% of the time.
// The draw is a product simulation, not a security decision.
const DefaultMatchThreshold = 0.3

// MatchResolver decides whether a like was reciprocated.
type MatchResolver struct {
	Threshold float64
}

// NewMatchResolver returns a resolver with the given threshold, falling back to the default outside [0,1).
func NewMatchResolver(threshold float64) MatchResolver {
	if threshold < 0 || threshold >= 1 {
		threshold = DefaultMatchThreshold
	}
	return MatchResolver{Threshold: threshold}
}

// Resolve reports a match when draw, taken uniformly from [0,1), exceeds the threshold.
func (r MatchResolver) Resolve(draw float64) bool {
	return draw > r.Threshold
}
