package skills

import (
	"cmp"
	"math"
	"slices"

	"github.com/wieku/diffcalc-go/rulesets/mania/performance/preprocessing"
)

const (
	individualDecayBase float64 = 0.125
	overallDecayBase    float64 = 0.30
	releaseThreshold    float64 = 24
	holdFactorBonus     float64 = 1.25
	noteWeight          float64 = 2.0

	// Start/end times closer than this are treated as the same instant.
	timingEpsilon float64 = 1

	sectionLength float64 = 400
	decayWeight   float64 = 0.9
)

// Strain is the per-column strain engine. One instance owns its state
// exclusively and must be fed objects strictly in time order.
type Strain struct {
	startTimes        []float64
	endTimes          []float64
	individualStrains []float64

	individualStrain float64
	overallStrain    float64

	// Chord accumulators, only valid while notes sharing a start time arrive.
	chordSize    int
	holdFactor   float64
	holdAddition float64

	currentStrain float64

	currentSectionPeak float64
	currentSectionEnd  float64

	strainPeaks []float64
}

func NewStrain(totalColumns int) *Strain {
	return &Strain{
		startTimes:        make([]float64, totalColumns),
		endTimes:          make([]float64, totalColumns),
		individualStrains: make([]float64, totalColumns),
		holdFactor:        1.0,
	}
}

// Process folds one note into the running strain, flushing a section peak
// every time a section boundary is crossed.
func (skill *Strain) Process(current *preprocessing.DifficultyObject) {
	if current.Index == 0 {
		skill.currentSectionEnd = math.Ceil(current.StartTime/sectionLength) * sectionLength
	}

	for current.StartTime > skill.currentSectionEnd {
		skill.strainPeaks = append(skill.strainPeaks, skill.currentSectionPeak)
		skill.currentSectionPeak = skill.calculateInitialStrain(skill.currentSectionEnd, current)
		skill.currentSectionEnd += sectionLength
	}

	skill.currentStrain += skill.StrainValueOf(current)
	skill.currentSectionPeak = math.Max(skill.currentStrain, skill.currentSectionPeak)
}

// StrainValueOf advances the engine by one note and returns the strain it adds
// to the running total. Notes that are not the last of their chord return 0;
// the whole chord is folded in when its closing note arrives.
func (skill *Strain) StrainValueOf(current *preprocessing.DifficultyObject) float64 {
	startTime := current.StartTime
	endTime := current.EndTime
	column := current.BaseObject.Column

	isOverlapping := false

	// Lowest value we can assume with the current information.
	closestEndTime := math.Abs(endTime - startTime)

	for i := 0; i < len(skill.endTimes); i++ {
		// The current note is overlapped if a previous hold end falls inside its body.
		isOverlapping = isOverlapping ||
			(definitelyBigger(skill.endTimes[i], startTime) && definitelyBigger(endTime, skill.endTimes[i]))

		// A hold that outlasts this note and started at a different instant
		// makes everything played meanwhile harder.
		if definitelyBigger(skill.endTimes[i], endTime) && math.Abs(skill.startTimes[i]-startTime) > timingEpsilon {
			skill.holdFactor = holdFactorBonus
		}

		closestEndTime = math.Min(closestEndTime, math.Abs(endTime-skill.endTimes[i]))
	}

	skill.overallStrain = applyDecay(skill.overallStrain, current.DeltaTime, overallDecayBase)

	skill.individualStrains[column] = applyDecay(skill.individualStrains[column], startTime-skill.startTimes[column], individualDecayBase)
	skill.individualStrains[column] += noteWeight * skill.holdFactor

	// Within a chord the hardest column wins.
	if current.DeltaTime <= timingEpsilon {
		skill.individualStrain = math.Max(skill.individualStrain, skill.individualStrains[column])
	} else {
		skill.individualStrain = skill.individualStrains[column]
	}

	// Overlapping releases close together are awkward; releases far apart are
	// as easy as releasing a single note.
	if isOverlapping {
		skill.holdAddition += 1 / (1 + math.Exp(0.5*(releaseThreshold-closestEndTime)))
	}

	skill.startTimes[column] = startTime
	skill.endTimes[column] = endTime

	skill.chordSize++

	// Hold emission until every note of this instant has been seen.
	if next := current.Next(0); next != nil && math.Abs(next.StartTime-startTime) <= timingEpsilon {
		return 0
	}

	skill.overallStrain += (float64(skill.chordSize) + skill.holdAddition) * skill.holdFactor

	skill.chordSize = 0
	skill.holdAddition = 0
	skill.holdFactor = 1.0

	// Subtracting the running strain means each section only counts its single
	// hardest instant instead of a cumulative sum.
	return skill.individualStrain + skill.overallStrain - skill.currentStrain
}

// calculateInitialStrain reproduces the strain at an arbitrary offset by
// decaying the last-known component values, without replaying history.
func (skill *Strain) calculateInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	elapsed := time - current.Previous(0).StartTime

	return applyDecay(skill.individualStrain, elapsed, individualDecayBase) +
		applyDecay(skill.overallStrain, elapsed, overallDecayBase)
}

// GetCurrentStrainPeaks returns the peaks of all closed sections plus the peak
// of the section still in progress.
func (skill *Strain) GetCurrentStrainPeaks() []float64 {
	peaks := make([]float64, len(skill.strainPeaks), len(skill.strainPeaks)+1)
	copy(peaks, skill.strainPeaks)

	return append(peaks, skill.currentSectionPeak)
}

// DifficultyValue is the decaying weighted sum of section peaks.
func (skill *Strain) DifficultyValue() float64 {
	strains := skill.GetCurrentStrainPeaks()
	slices.SortFunc(strains, func(a, b float64) int { return cmp.Compare(b, a) })

	diff := 0.0
	weight := 1.0

	for _, strain := range strains {
		diff += strain * weight
		weight *= decayWeight
	}

	return diff
}

// applyDecay retains decayBase of the value per second of elapsed time. Zero
// elapsed time leaves the value unchanged by construction.
func applyDecay(value, deltaTime, decayBase float64) float64 {
	return value * math.Pow(decayBase, deltaTime/1000)
}

func definitelyBigger(a, b float64) bool {
	return a > b+timingEpsilon
}
