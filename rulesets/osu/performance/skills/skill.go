package skills

import (
	"cmp"
	"math"
	"slices"

	"github.com/wieku/diffcalc-go/beatmap/difficulty"
	"github.com/wieku/diffcalc-go/framework/math/mutils"
	"github.com/wieku/diffcalc-go/rulesets/osu/performance/preprocessing"
)

const (
	defaultSectionLength         float64 = 400
	defaultDecayWeight           float64 = 0.9
	defaultReducedSectionCount   int     = 10
	defaultReducedStrainBaseline float64 = 0.75
)

type Skill struct {
	Diff *difficulty.Difficulty

	SectionLength         float64
	DecayWeight           float64
	ReducedSectionCount   int
	ReducedStrainBaseline float64

	StrainValueOf          func(obj *preprocessing.DifficultyObject) float64
	CalculateInitialStrain func(time float64, current *preprocessing.DifficultyObject) float64

	currentSectionPeak float64
	currentSectionEnd  float64

	strainPeaks []float64
	peakWeights []float64
}

func NewSkill(d *difficulty.Difficulty) *Skill {
	return &Skill{
		Diff:                  d,
		SectionLength:         defaultSectionLength,
		DecayWeight:           defaultDecayWeight,
		ReducedSectionCount:   defaultReducedSectionCount,
		ReducedStrainBaseline: defaultReducedStrainBaseline,
	}
}

// Process folds one object into the running strain, flushing a section peak
// every time a section boundary is crossed. New sections start from the decayed
// strain at the boundary, not from zero.
func (skill *Skill) Process(current *preprocessing.DifficultyObject) {
	if current.Index == 0 {
		skill.currentSectionEnd = math.Ceil(current.StartTime/skill.SectionLength) * skill.SectionLength
	}

	for current.StartTime > skill.currentSectionEnd {
		skill.strainPeaks = append(skill.strainPeaks, skill.currentSectionPeak)
		skill.currentSectionPeak = skill.CalculateInitialStrain(skill.currentSectionEnd, current)
		skill.currentSectionEnd += skill.SectionLength
	}

	skill.currentSectionPeak = math.Max(skill.StrainValueOf(current), skill.currentSectionPeak)
}

// GetCurrentStrainPeaks returns the peaks of all closed sections plus the peak
// of the section still in progress.
func (skill *Skill) GetCurrentStrainPeaks() []float64 {
	peaks := make([]float64, len(skill.strainPeaks), len(skill.strainPeaks)+1)
	copy(peaks, skill.strainPeaks)

	return append(peaks, skill.currentSectionPeak)
}

// DifficultyValue is the decaying weighted sum of section peaks, with the top
// sections damped so a single hard burst doesn't dominate the rating.
func (skill *Skill) DifficultyValue() float64 {
	if skill.peakWeights == nil { // Precalculated peak weights
		skill.peakWeights = make([]float64, skill.ReducedSectionCount)
		for i := 0; i < skill.ReducedSectionCount; i++ {
			scale := math.Log10(mutils.Lerp(1.0, 10.0, mutils.Clamp(float64(i)/float64(skill.ReducedSectionCount), 0, 1)))
			skill.peakWeights[i] = mutils.Lerp(skill.ReducedStrainBaseline, 1.0, scale)
		}
	}

	strains := skill.GetCurrentStrainPeaks()
	slices.SortFunc(strains, func(a, b float64) int { return cmp.Compare(b, a) })

	for i := 0; i < min(len(strains), skill.ReducedSectionCount); i++ {
		strains[i] *= skill.peakWeights[i]
	}

	slices.SortFunc(strains, func(a, b float64) int { return cmp.Compare(b, a) })

	diff := 0.0
	weight := 1.0

	for _, strain := range strains {
		diff += strain * weight
		weight *= skill.DecayWeight
	}

	return diff
}
