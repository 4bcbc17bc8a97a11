package shrink

// TargetedShrinker shrinks an integer toward a specific target value
// instead of toward zero or empty, halving the remaining distance at
// each step. Useful when the interesting region of the input space is
// known in advance.
type TargetedShrinker struct {
	current int
	target  int
}

// NewTargetedShrinker creates a shrinker that moves current toward
// target.
func NewTargetedShrinker(current, target int) *TargetedShrinker {
	return &TargetedShrinker{current: current, target: target}
}

// Steps returns the shrink path from the starting value to the target,
// excluding the start and including the target. Each step halves the
// remaining distance (at least one unit), so the path has O(log n)
// entries.
func (s *TargetedShrinker) Steps() []int {
	var steps []int
	current := s.current

	for current != s.target {
		diff := current - s.target
		stepSize := diff
		if stepSize < 0 {
			stepSize = -stepSize
		}
		stepSize /= 2
		if stepSize < 1 {
			stepSize = 1
		}
		if diff > 0 {
			current -= stepSize
			if current < s.target {
				current = s.target
			}
		} else {
			current += stepSize
			if current > s.target {
				current = s.target
			}
		}
		steps = append(steps, current)
	}

	return steps
}

// TargetedFloatShrinker is the float64 counterpart of TargetedShrinker.
type TargetedFloatShrinker struct {
	current float64
	target  float64
}

// NewTargetedFloatShrinker creates a shrinker that moves current toward
// target.
func NewTargetedFloatShrinker(current, target float64) *TargetedFloatShrinker {
	return &TargetedFloatShrinker{current: current, target: target}
}

// Steps returns the shrink path toward the target. It stops once the
// remaining distance drops below 1e-12, so the final entry may only
// approximate the target.
func (s *TargetedFloatShrinker) Steps() []float64 {
	const tolerance = 1e-12

	var steps []float64
	current := s.current

	for {
		diff := current - s.target
		if diff < 0 {
			diff = -diff
		}
		if diff < tolerance {
			return steps
		}
		current = s.target + (current-s.target)/2
		steps = append(steps, current)
	}
}
