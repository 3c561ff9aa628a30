package orchard_test

import (
	"testing"

	"github.com/cory-johannsen/orchard/internal/game/dice"
	"github.com/cory-johannsen/orchard/internal/game/orchard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// seqSrc replays a fixed sequence of draw values, wrapping around at the end.
// It enables fully deterministic playthroughs in the style of the combat
// resolver's fixed-roll tests.
type seqSrc struct {
	values []int
	i      int
}

func (s *seqSrc) Intn(n int) int {
	v := s.values[s.i%len(s.values)]
	s.i++
	if v >= n {
		return n - 1
	}
	return v
}

func TestNew_StartsWithFullPiles(t *testing.T) {
	g := orchard.New(6)
	assert.Equal(t, uint8(6), g.RavenPosition)
	for i, p := range g.Piles {
		assert.Equal(t, uint8(orchard.InitialPileSize), p, "pile %d must start full", i)
	}
	assert.Equal(t, uint8(16), g.PileSum())
}

func TestApply_ColorDecrementsMatchingPile(t *testing.T) {
	g := orchard.New(6)
	_, done := g.Apply(orchard.FaceBlue)
	assert.False(t, done)
	assert.Equal(t, [4]uint8{4, 4, 3, 4}, g.Piles)
	assert.Equal(t, uint8(6), g.RavenPosition, "color faces must not move the raven")
}

// TestApply_ColorSaturatesAtZero verifies that harvesting an already-empty
// pile is a defined no-op, never a wraparound.
func TestApply_ColorSaturatesAtZero(t *testing.T) {
	g := orchard.Game{RavenPosition: 6, Piles: [4]uint8{0, 4, 4, 4}}
	_, done := g.Apply(orchard.FaceRed)
	assert.False(t, done)
	assert.Equal(t, [4]uint8{0, 4, 4, 4}, g.Piles)
}

func TestApply_RavenAdvances(t *testing.T) {
	g := orchard.New(2)
	outcome, done := g.Apply(orchard.FaceRaven)
	require.False(t, done)
	assert.Equal(t, uint8(1), g.RavenPosition)

	outcome, done = g.Apply(orchard.FaceRaven)
	require.True(t, done)
	assert.Equal(t, orchard.Lost, outcome)
}

// TestApply_LostBeatsWon verifies terminal priority: when a single transition
// zeroes both the raven position and the pile sum, the game is Lost.
func TestApply_LostBeatsWon(t *testing.T) {
	g := orchard.Game{RavenPosition: 1, Piles: [4]uint8{0, 0, 0, 0}}
	outcome, done := g.Apply(orchard.FaceRaven)
	require.True(t, done)
	assert.Equal(t, orchard.Lost, outcome)
}

// TestApply_ImmediateLossAtZeroStart verifies that a game constructed with the
// raven already at the orchard classifies Lost on the first check, whatever
// the first roll is.
func TestApply_ImmediateLossAtZeroStart(t *testing.T) {
	for face := orchard.FaceRed; face <= orchard.FaceRaven; face++ {
		g := orchard.New(0)
		outcome, done := g.Apply(face)
		require.True(t, done, "face %v", face)
		assert.Equal(t, orchard.Lost, outcome, "face %v", face)
	}
}

// TestApply_BasketTakesUniqueMaximum pins the greedy basket policy: the
// fullest pile loses a fruit.
func TestApply_BasketTakesUniqueMaximum(t *testing.T) {
	g := orchard.Game{RavenPosition: 6, Piles: [4]uint8{4, 1, 1, 1}}
	_, done := g.Apply(orchard.FaceBasket)
	assert.False(t, done)
	assert.Equal(t, [4]uint8{3, 1, 1, 1}, g.Piles)
}

// TestApply_BasketTieBreaksByPileOrder: among equal maxima the
// first-encountered pile is harvested.
func TestApply_BasketTieBreaksByPileOrder(t *testing.T) {
	g := orchard.Game{RavenPosition: 6, Piles: [4]uint8{1, 2, 2, 1}}
	_, done := g.Apply(orchard.FaceBasket)
	assert.False(t, done)
	assert.Equal(t, [4]uint8{1, 1, 2, 1}, g.Piles)
}

func TestApply_FullHarvestWins(t *testing.T) {
	g := orchard.New(200)
	var outcome orchard.Outcome
	var done bool
	for i := 0; i < 4*orchard.InitialPileSize; i++ {
		require.False(t, done, "game ended early at roll %d", i)
		outcome, done = g.Apply(orchard.Face(i % 4))
	}
	require.True(t, done)
	assert.Equal(t, orchard.Won, outcome)
	assert.Equal(t, uint8(0), g.PileSum())
}

func TestDrawFace_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		f := orchard.DrawFace(src)
		assert.GreaterOrEqual(t, int(f), int(orchard.FaceRed))
		assert.LessOrEqual(t, int(f), int(orchard.FaceRaven))
	}
}

func TestDrawFace_CoversAllFaces(t *testing.T) {
	src := &seqSrc{values: []int{0, 1, 2, 3, 4, 5}}
	seen := map[orchard.Face]bool{}
	for i := 0; i < 6; i++ {
		seen[orchard.DrawFace(src)] = true
	}
	assert.Len(t, seen, 6)
}

// TestApply_CountersNonIncreasing_Property verifies for arbitrary states and
// faces that one transition never increases any counter and never decreases
// one by more than a single fruit or tile.
func TestApply_CountersNonIncreasing_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		before := orchard.Game{
			RavenPosition: uint8(rapid.IntRange(0, 255).Draw(rt, "raven")),
		}
		for i := range before.Piles {
			before.Piles[i] = uint8(rapid.IntRange(0, orchard.InitialPileSize).Draw(rt, "pile"))
		}
		face := orchard.Face(rapid.IntRange(0, 5).Draw(rt, "face"))

		after := before
		after.Apply(face)

		assert.LessOrEqual(rt, after.RavenPosition, before.RavenPosition)
		assert.GreaterOrEqual(rt, int(after.RavenPosition)+1, int(before.RavenPosition))
		for i := range after.Piles {
			assert.LessOrEqual(rt, after.Piles[i], before.Piles[i], "pile %d grew", i)
			assert.GreaterOrEqual(rt, int(after.Piles[i])+1, int(before.Piles[i]), "pile %d dropped by more than one", i)
		}
	})
}

// TestApply_TerminatesWithinEffectiveBound_Property: a playthrough ends
// before the number of state-changing transitions can exceed the initial
// raven position plus the initial pile sum, for arbitrary starting states.
func TestApply_TerminatesWithinEffectiveBound_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := orchard.Game{
			RavenPosition: uint8(rapid.IntRange(0, 255).Draw(rt, "raven")),
		}
		for i := range g.Piles {
			g.Piles[i] = uint8(rapid.IntRange(0, orchard.InitialPileSize).Draw(rt, "pile"))
		}
		bound := int(g.RavenPosition) + int(g.PileSum())

		seed1 := rapid.Uint64().Draw(rt, "seed1")
		seed2 := rapid.Uint64().Draw(rt, "seed2")
		src := dice.NewPCGSource(seed1, seed2)

		effective := 0
		for {
			before := g
			_, done := g.Apply(orchard.DrawFace(src))
			if g != before {
				effective++
			}
			require.LessOrEqual(rt, effective, bound+1,
				"state-changing transitions exceeded the termination bound")
			if done {
				return
			}
		}
	})
}
