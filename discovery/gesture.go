package discovery

// DefaultMinSwipeDistance is the horizontal travel, in pointer units, a touch must cover to count as a swipe.
const DefaultMinSwipeDistance = 50

// Direction is the outcome of a swipe decision.
type Direction string

const (
	None  Direction = ""
	Left  Direction = "left"
	Right Direction = "right"
)

// GestureDetector turns a pair of horizontal coordinates into a swipe direction.
type GestureDetector struct {
	MinSwipeDistance float64
}

// NewGestureDetector returns a detector using min, or the default distance when min is not positive.
func NewGestureDetector(min float64) GestureDetector {
	if min <= 0 {
		min = DefaultMinSwipeDistance
	}
	return GestureDetector{MinSwipeDistance: min}
}

// Classify computes start-end and maps it to Left, Right or None.
func (d GestureDetector) Classify(start, end float64) Direction {
	distance := start - end
	switch {
	case distance > d.MinSwipeDistance:
		return Left
	case distance < -d.MinSwipeDistance:
		return Right
	default:
		return None
	}
}
