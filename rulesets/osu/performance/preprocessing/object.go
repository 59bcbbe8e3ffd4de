package preprocessing

import (
	"math"

	"github.com/wieku/diffcalc-go/beatmap/difficulty"
	"github.com/wieku/diffcalc-go/framework/math/math32"
	"github.com/wieku/diffcalc-go/framework/math/mutils"
	"github.com/wieku/diffcalc-go/framework/math/vector"
)

const (
	NormalizedRadius        = 50.0
	CircleSizeBuffThreshold = 30.0
	MinDeltaTime            = 25
)

type Kind int

const (
	KindCircle Kind = iota
	KindSlider
	KindSpinner
)

// HitObject is a single record of the producer-built, time-ascending sequence.
// Lazy fields are only meaningful for KindSlider; EndTime equals StartTime for
// instantaneous objects.
type HitObject struct {
	Kind Kind

	StartTime float64
	EndTime   float64

	StackedPosition    vector.Vector2f
	StackedEndPosition vector.Vector2f

	LazyEndPosition    vector.Vector2f
	LazyTravelDistance float32
	LazyTravelTime     float64

	RepeatCount int

	// ComboIndex is the combo accumulated before this object is hit.
	ComboIndex int
}

type DifficultyObject struct {
	// That's stupid but oh well
	listOfDiffs *[]*DifficultyObject
	Index       int

	Diff *difficulty.Difficulty

	BaseObject *HitObject

	lastObject *HitObject

	lastLastObject *HitObject

	DeltaTime float64

	StartTime float64

	EndTime float64

	LazyJumpDistance float64

	TravelDistance float64

	TravelTime float64

	Angle float64

	StrainTime float64
}

func NewDifficultyObject(hitObject, lastLastObject, lastObject *HitObject, d *difficulty.Difficulty, listOfDiffs *[]*DifficultyObject, index int) *DifficultyObject {
	obj := &DifficultyObject{
		listOfDiffs:    listOfDiffs,
		Index:          index,
		Diff:           d,
		BaseObject:     hitObject,
		lastObject:     lastObject,
		lastLastObject: lastLastObject,
		DeltaTime:      hitObject.StartTime - lastObject.StartTime,
		StartTime:      hitObject.StartTime,
		EndTime:        hitObject.EndTime,
		Angle:          math.NaN(),
	}

	obj.StrainTime = max(obj.DeltaTime, MinDeltaTime)

	obj.setDistances()

	return obj
}

// CreateDifficultyObjects builds the evaluation view over a time-ascending
// object list. The first object has no predecessor and produces no entry.
func CreateDifficultyObjects(objects []*HitObject, d *difficulty.Difficulty) []*DifficultyObject {
	diffObjects := make([]*DifficultyObject, 0, max(0, len(objects)-1))

	for i := 1; i < len(objects); i++ {
		var lastLastObject *HitObject
		if i > 1 {
			lastLastObject = objects[i-2]
		}

		diffObjects = append(diffObjects, NewDifficultyObject(objects[i], lastLastObject, objects[i-1], d, &diffObjects, i-1))
	}

	return diffObjects
}

func (o *DifficultyObject) OpacityAt(time float64, hidden bool) float64 {
	if time > o.BaseObject.StartTime {
		return 0
	}

	fadeInStartTime := o.BaseObject.StartTime - o.Diff.Preempt
	fadeInDuration := o.Diff.TimeFadeIn

	if hidden {
		fadeOutStartTime := o.BaseObject.StartTime - o.Diff.Preempt + o.Diff.TimeFadeIn
		fadeOutDuration := o.Diff.Preempt * 0.3

		return min(
			mutils.Clamp((time-fadeInStartTime)/fadeInDuration, 0.0, 1.0),
			1.0-mutils.Clamp((time-fadeOutStartTime)/fadeOutDuration, 0.0, 1.0),
		)
	}

	return mutils.Clamp((time-fadeInStartTime)/fadeInDuration, 0.0, 1.0)
}

func (o *DifficultyObject) Previous(backwardsIndex int) *DifficultyObject {
	index := o.Index - (backwardsIndex + 1)

	if index < 0 {
		return nil
	}

	return (*o.listOfDiffs)[index]
}

func (o *DifficultyObject) Next(forwardsIndex int) *DifficultyObject {
	index := o.Index + (forwardsIndex + 1)

	if index >= len(*o.listOfDiffs) {
		return nil
	}

	return (*o.listOfDiffs)[index]
}

func (o *DifficultyObject) setDistances() {
	if o.BaseObject.Kind == KindSlider {
		o.TravelDistance = float64(o.BaseObject.LazyTravelDistance * float32(math.Pow(1+float64(o.BaseObject.RepeatCount)/2.5, 1.0/2.5)))
		o.TravelTime = max(o.BaseObject.LazyTravelTime, MinDeltaTime)
	}

	if o.BaseObject.Kind == KindSpinner || o.lastObject.Kind == KindSpinner {
		return
	}

	scalingFactor := float32(NormalizedRadius / o.Diff.CircleRadius)

	if o.Diff.CircleRadius < CircleSizeBuffThreshold {
		smallCircleBonus := min(CircleSizeBuffThreshold-float32(o.Diff.CircleRadius), 5.0) / 50.0
		scalingFactor *= 1.0 + smallCircleBonus
	}

	lastCursorPosition := getEndCursorPosition(o.lastObject)

	o.LazyJumpDistance = float64(o.BaseObject.StackedPosition.Scl(scalingFactor).Dst(lastCursorPosition.Scl(scalingFactor)))

	if o.lastLastObject != nil && o.lastLastObject.Kind != KindSpinner {
		lastLastCursorPosition := getEndCursorPosition(o.lastLastObject)

		v1 := lastLastCursorPosition.Sub(o.lastObject.StackedPosition)
		v2 := o.BaseObject.StackedPosition.Sub(lastCursorPosition)
		dot := v1.Dot(v2)
		det := v1.X*v2.Y - v1.Y*v2.X
		o.Angle = math.Abs(float64(math32.Atan2(det, dot)))
	}
}

// getEndCursorPosition is where the cursor is assumed to rest once the object
// has been dealt with. For sliders that is the lazy end, not the nominal tail.
func getEndCursorPosition(obj *HitObject) vector.Vector2f {
	if obj.Kind == KindSlider {
		return obj.LazyEndPosition
	}

	return obj.StackedPosition
}
