package difficulty

// Difficulty carries the per-map visibility and geometry settings the
// evaluation core reads. All times are in milliseconds and already
// rate-adjusted by the producer.
type Difficulty struct {
	CircleRadius float64
	Preempt      float64
	TimeFadeIn   float64
}

func NewDifficulty(circleRadius, preempt, timeFadeIn float64) *Difficulty {
	return &Difficulty{
		CircleRadius: circleRadius,
		Preempt:      preempt,
		TimeFadeIn:   timeFadeIn,
	}
}
