package decision

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillConfig_StrengthFactor(t *testing.T) {
	assert.Equal(t, 0.0, SkillConfig{Rating: 800}.StrengthFactor())
	assert.Equal(t, 1.0, SkillConfig{Rating: 2500}.StrengthFactor())
	assert.InDelta(t, 0.5, SkillConfig{Rating: 1650}.StrengthFactor(), 1e-12)
	assert.Equal(t, 0.0, SkillConfig{Rating: 100}.StrengthFactor())
	assert.Equal(t, 1.0, SkillConfig{Rating: 3000}.StrengthFactor())
}

func TestSkillConfig_Clamped(t *testing.T) {
	assert.Equal(t, MinRating, SkillConfig{Rating: -5}.Clamped().Rating)
	assert.Equal(t, MaxRating, SkillConfig{Rating: 2900}.Clamped().Rating)
	assert.Equal(t, 1700, SkillConfig{Rating: 1700}.Clamped().Rating)
}

func TestPersonalityConfig_Clamped(t *testing.T) {
	p := PersonalityConfig{
		Aggression:           1.4,
		PositionalVsTactical: -0.2,
		TacticalAwareness:    math.NaN(),
		EndgameSkill:         0.3,
		OpeningKnowledge:     1,
	}.Clamped()

	assert.Equal(t, PersonalityConfig{
		Aggression:           1,
		PositionalVsTactical: 0,
		TacticalAwareness:    NeutralTrait,
		EndgameSkill:         0.3,
		OpeningKnowledge:     1,
	}, p)
}

func TestMaterial_Points(t *testing.T) {
	start := Material{Knights: 2, Bishops: 2, Rooks: 2, Queens: 1}
	assert.Equal(t, 31, start.Points())
	assert.Equal(t, 7, start.Pieces())
	assert.Equal(t, 62, ByColor{White: start, Black: start}.Points())
}

func TestPhase_Text(t *testing.T) {
	for _, p := range []Phase{PhaseOpening, PhaseMiddlegame, PhaseEndgame} {
		text, err := p.MarshalText()
		assert.NoError(t, err)
		var back Phase
		assert.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, p, back)
	}
	var p Phase
	assert.Error(t, p.UnmarshalText([]byte("lategame")))
}
