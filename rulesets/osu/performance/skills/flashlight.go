package skills

import (
	"math"

	"github.com/wieku/diffcalc-go/beatmap/difficulty"
	"github.com/wieku/diffcalc-go/rulesets/osu/performance/evaluators"
	"github.com/wieku/diffcalc-go/rulesets/osu/performance/preprocessing"
)

const (
	flashlightSkillMultiplier float64 = 0.05512
	flashlightStrainDecayBase float64 = 0.15
)

type Flashlight struct {
	*Skill
	hidden        bool
	CurrentStrain float64
}

func NewFlashlight(d *difficulty.Difficulty, hidden bool) *Flashlight {
	skill := &Flashlight{Skill: NewSkill(d), hidden: hidden}

	skill.StrainValueOf = skill.flashlightStrainValue
	skill.CalculateInitialStrain = skill.flashlightInitialStrain

	return skill
}

func (skill *Flashlight) strainDecay(ms float64) float64 {
	return math.Pow(flashlightStrainDecayBase, ms/1000)
}

func (skill *Flashlight) flashlightInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	return skill.CurrentStrain * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *Flashlight) flashlightStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.DeltaTime)
	skill.CurrentStrain += evaluators.EvaluateFlashlight(current, skill.hidden) * flashlightSkillMultiplier

	return skill.CurrentStrain
}
