// pkg/control/params.go
package control

// Parameter limits and adjustment steps.
const (
	// MinStopDistance is the smallest accepted stop distance.
	MinStopDistance = 1.0
	// SlowStopMargin is the minimum gap kept between the slow and stop
	// thresholds. Every setter re-establishes slow >= stop + margin.
	SlowStopMargin = 5.0
	// DistanceStep is the increment used by the keyboard-style adjusters.
	DistanceStep = 5.0
	// GainStep is the repulsion-gain adjustment increment.
	GainStep = 500.0
)

// Params holds the tunable thresholds and fixed limits of the control
// laws. The three distances/gains mutate only through the validated
// setters; the remaining fields are fixed at construction.
type Params struct {
	StopDistance  float64 // full-stop threshold
	SlowDistance  float64 // deceleration onset threshold
	RepulsionGain float64 // gain of the repulsive-field law

	RepulsionRange float64 // repulsion cutoff distance
	MaxRepulsion   float64 // per-obstacle repulsion magnitude cap
	MaxSpeed       float64 // global speed cap
	Acceleration   float64 // commanded acceleration magnitude
}

// DefaultParams returns the parameter set of the reference scenario.
func DefaultParams() Params {
	return Params{
		StopDistance:   1.0,
		SlowDistance:   30.0,
		RepulsionGain:  6000.0,
		RepulsionRange: 160.0,
		MaxRepulsion:   600.0,
		MaxSpeed:       240.0,
		Acceleration:   900.0,
	}
}

// SetStopDistance sets the stop distance, clamping to MinStopDistance and
// pushing the slow distance up if needed to keep the ordering invariant.
// It returns the accepted stop and slow distances so callers can refresh
// any displayed values.
func (p *Params) SetStopDistance(v float64) (stop, slow float64) {
	if v < MinStopDistance {
		v = MinStopDistance
	}
	p.StopDistance = v
	if p.SlowDistance < p.StopDistance+SlowStopMargin {
		p.SlowDistance = p.StopDistance + SlowStopMargin
	}
	return p.StopDistance, p.SlowDistance
}

// SetSlowDistance sets the slow distance, clamping up to
// stop + SlowStopMargin, and returns the accepted value.
func (p *Params) SetSlowDistance(v float64) float64 {
	min := p.StopDistance + SlowStopMargin
	if v < min {
		v = min
	}
	p.SlowDistance = v
	return p.SlowDistance
}

// SetRepulsionGain sets the repulsion gain, clamping negative values to
// zero, and returns the accepted value.
func (p *Params) SetRepulsionGain(v float64) float64 {
	if v < 0 {
		v = 0
	}
	p.RepulsionGain = v
	return p.RepulsionGain
}

// AdjustSlowDistance nudges the slow distance by sign*DistanceStep.
func (p *Params) AdjustSlowDistance(sign int) float64 {
	return p.SetSlowDistance(p.SlowDistance + float64(sign)*DistanceStep)
}

// AdjustStopDistance nudges the stop distance by sign*DistanceStep.
func (p *Params) AdjustStopDistance(sign int) (stop, slow float64) {
	return p.SetStopDistance(p.StopDistance + float64(sign)*DistanceStep)
}

// AdjustRepulsionGain nudges the repulsion gain by sign*GainStep.
func (p *Params) AdjustRepulsionGain(sign int) float64 {
	return p.SetRepulsionGain(p.RepulsionGain + float64(sign)*GainStep)
}

// Valid reports whether the ordering invariant holds.
func (p *Params) Valid() bool {
	return p.StopDistance >= MinStopDistance &&
		p.SlowDistance >= p.StopDistance+SlowStopMargin &&
		p.RepulsionGain >= 0
}
