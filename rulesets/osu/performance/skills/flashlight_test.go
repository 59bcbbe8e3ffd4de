package skills

import (
	"math"
	"testing"

	"github.com/wieku/diffcalc-go/beatmap/difficulty"
	"github.com/wieku/diffcalc-go/framework/math/vector"
	"github.com/wieku/diffcalc-go/rulesets/osu/performance/preprocessing"
)

func testDiff() *difficulty.Difficulty {
	return difficulty.NewDifficulty(36.48, 1200, 800)
}

func circle(t float64, x, y float32) *preprocessing.HitObject {
	return &preprocessing.HitObject{
		Kind:               preprocessing.KindCircle,
		StartTime:          t,
		EndTime:            t,
		StackedPosition:    vector.NewVec2f(x, y),
		StackedEndPosition: vector.NewVec2f(x, y),
	}
}

func TestStrainDecay(t *testing.T) {
	skill := NewFlashlight(testDiff(), false)

	if got := skill.strainDecay(0); got != 1 {
		t.Errorf("zero elapsed time: got decay %v, want 1", got)
	}
	if got := skill.strainDecay(1e9); got > 1e-12 {
		t.Errorf("huge elapsed time: got decay %v, want ~0", got)
	}
	if one, two := skill.strainDecay(1000), skill.strainDecay(2000); math.Abs(two-one*one) > 1e-12 {
		t.Errorf("decay should compose: got %v, want %v", two, one*one)
	}
}

func TestFlashlightSectionPeaks(t *testing.T) {
	objects := []*preprocessing.HitObject{
		circle(0, 0, 0),
		circle(100, 150, 50),
		circle(1000, 40, 220),
		circle(1100, 300, 120),
	}

	skill := NewFlashlight(testDiff(), false)

	diffObjects := preprocessing.CreateDifficultyObjects(objects, testDiff())
	for _, obj := range diffObjects {
		skill.Process(obj)
	}

	peaks := skill.GetCurrentStrainPeaks()

	// Sections end at 400 and 800, plus the one still open.
	if len(peaks) != 3 {
		t.Fatalf("got %d section peaks, want 3", len(peaks))
	}

	for i, peak := range peaks {
		if peak < 0 {
			t.Errorf("section %d: got negative peak %v", i, peak)
		}
	}

	// The second section contains no objects, so its peak is the strain left
	// from the last object, decayed to the section start at 400ms.
	want := peaks[0] * skill.strainDecay(400-100)
	if math.Abs(peaks[1]-want) > 1e-12 {
		t.Errorf("empty section peak: got %v, want %v", peaks[1], want)
	}
}

func TestFlashlightDifficultyValueSingleSection(t *testing.T) {
	objects := []*preprocessing.HitObject{
		circle(0, 0, 0),
		circle(100, 150, 50),
		circle(200, 40, 220),
	}

	skill := NewFlashlight(testDiff(), false)

	for _, obj := range preprocessing.CreateDifficultyObjects(objects, testDiff()) {
		skill.Process(obj)
	}

	peaks := skill.GetCurrentStrainPeaks()
	if len(peaks) != 1 {
		t.Fatalf("got %d section peaks, want 1", len(peaks))
	}

	// A single section sits at the top of the reduced range, weighted by the
	// reduced strain baseline.
	want := peaks[0] * skill.ReducedStrainBaseline
	if got := skill.DifficultyValue(); math.Abs(got-want) > 1e-12 {
		t.Errorf("got difficulty %v, want %v", got, want)
	}
}

func TestFlashlightHiddenRatesHigher(t *testing.T) {
	objects := []*preprocessing.HitObject{
		circle(0, 0, 0),
		circle(180, 140, 60),
		circle(360, 40, 220),
		circle(540, 300, 120),
		circle(720, 200, 320),
	}

	normal := NewFlashlight(testDiff(), false)
	hidden := NewFlashlight(testDiff(), true)

	for _, obj := range preprocessing.CreateDifficultyObjects(objects, testDiff()) {
		normal.Process(obj)
		hidden.Process(obj)
	}

	if hidden.DifficultyValue() < normal.DifficultyValue() {
		t.Errorf("hidden difficulty %v < normal %v", hidden.DifficultyValue(), normal.DifficultyValue())
	}
}
