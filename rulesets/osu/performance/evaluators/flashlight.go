package evaluators

import (
	"math"

	"github.com/wieku/diffcalc-go/framework/math/mutils"
	"github.com/wieku/diffcalc-go/rulesets/osu/performance/preprocessing"
)

const (
	maxOpacityBonus    float64 = 0.4
	hiddenBonus        float64 = 0.2
	minAngleMultiplier float64 = 0.2

	angleRepeatEpsilon float64 = 0.02

	minTravelVelocity float64 = 0.5
	maxTravelVelocity float64 = 1.5
	sliderMultiplier  float64 = 1.3

	// Radius of the lit area around the cursor at zero combo, in raw pixels.
	baseFollowRadius float64 = 75.0
)

// visibilityRadius shrinks the follow area as combo builds up:
// full radius below 100, 81.25% between 100 and 199, 62.5% from 200 on.
func visibilityRadius(comboIndex int) float64 {
	switch {
	case comboIndex >= 200:
		return baseFollowRadius * 0.625
	case comboIndex >= 100:
		return baseFollowRadius * 0.8125
	default:
		return baseFollowRadius
	}
}

// EvaluateFlashlight computes how hard an object is to hit when only a small
// area around the cursor is visible. Pure function of the sequence and the
// hidden flag.
func EvaluateFlashlight(current *preprocessing.DifficultyObject, hidden bool) float64 {
	if current.BaseObject.Kind == preprocessing.KindSpinner {
		return 0
	}

	scalingFactor := 52.0 / current.Diff.CircleRadius
	smallDistNerf := 1.0
	cumulativeStrainTime := 0.0
	angleRepeatCount := 0.0
	result := 0.0

	lastObj := current

	for i := 0; i < min(current.Index, 10); i++ {
		currentObj := current.Previous(i)

		if currentObj.BaseObject.Kind != preprocessing.KindSpinner {
			jumpDistance := float64(current.BaseObject.StackedPosition.Dst(currentObj.BaseObject.StackedEndPosition))

			// Players cut slider bodies short, so the lazy end is used whenever
			// it leaves a shorter jump.
			if currentObj.BaseObject.Kind == preprocessing.KindSlider {
				jumpDistance = min(jumpDistance, float64(current.BaseObject.StackedPosition.Dst(currentObj.BaseObject.LazyEndPosition)))
			}

			cumulativeStrainTime += lastObj.StrainTime

			// Nerf objects that can be seen without moving the lit area.
			if i == 0 {
				smallDistNerf = min(1.0, jumpDistance/visibilityRadius(current.BaseObject.ComboIndex))
			}

			// Nerf stacks so that only the first object of the stack is accounted for.
			stackNerf := min(1.0, (currentObj.LazyJumpDistance/scalingFactor)/25.0)

			// Bonus based on how visible the object is.
			opacityBonus := 1.0 + maxOpacityBonus*(1.0-current.OpacityAt(currentObj.BaseObject.StartTime, hidden))

			result += stackNerf * opacityBonus * scalingFactor * jumpDistance / cumulativeStrainTime

			if !math.IsNaN(currentObj.Angle) && !math.IsNaN(current.Angle) {
				// Objects further back in time count less towards the nerf.
				if math.Abs(currentObj.Angle-current.Angle) < angleRepeatEpsilon {
					angleRepeatCount += max(1.0-0.1*float64(i), 0.0)
				}
			}
		}

		lastObj = currentObj
	}

	result = math.Pow(smallDistNerf*result, 2.0)

	// No approach circles under reduced visibility, so everything is harder to track.
	if hidden {
		result *= 1.0 + hiddenBonus
	}

	result *= angleRepeatNerf(angleRepeatCount)

	sliderBonus := 0.0

	if current.BaseObject.Kind == preprocessing.KindSlider {
		velocity := current.TravelDistance / current.TravelTime

		// Fast, long slider bodies require more memorisation.
		sliderBonus = math.Log(velocity+1) * current.TravelDistance
		sliderBonus *= travelVelocityWindow(velocity)

		// Repeats retrace the same path, so less of it has to be memorised.
		sliderBonus /= float64(current.BaseObject.RepeatCount + 1)
	}

	result += sliderMultiplier * math.Pow(sliderBonus, 0.5)

	return result
}

// angleRepeatNerf interpolates towards the floor multiplier as more of the
// recent approach angles repeat the current one.
func angleRepeatNerf(angleRepeatCount float64) float64 {
	return minAngleMultiplier + (1.0-minAngleMultiplier)/(angleRepeatCount+1.0)
}

// travelVelocityWindow gates the travel bonus: bodies slower than
// minTravelVelocity px/ms contribute nothing, bodies faster than
// maxTravelVelocity contribute fully, linear in between.
func travelVelocityWindow(velocity float64) float64 {
	return mutils.Clamp((velocity-minTravelVelocity)/(maxTravelVelocity-minTravelVelocity), 0.0, 1.0)
}
