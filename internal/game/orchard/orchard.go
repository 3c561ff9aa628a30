// Package orchard implements the state machine for a simplified variant of
// the cooperative "orchard harvest" dice game. Players race to empty four
// fruit piles before the raven walks its last tile toward the orchard; one
// die roll is one state transition.
package orchard

import "github.com/cory-johannsen/orchard/internal/game/dice"

// InitialPileSize is the number of fruit each pile starts with.
const InitialPileSize = 4

// NumPiles is the number of independently tracked fruit piles.
const NumPiles = 4

// Face is one of the six equally likely symbols on the game die.
type Face int

const (
	// FaceRed through FaceYellow each harvest one fruit from the matching
	// pile. Their values index Game.Piles directly.
	FaceRed Face = iota
	FaceGreen
	FaceBlue
	FaceYellow
	// FaceBasket harvests one fruit from the fullest remaining pile. Always
	// taking from the maximum is a policy choice standing in for the players'
	// free pick, not a published rule of the game; it is assumed, not proven,
	// to be optimal.
	FaceBasket
	// FaceRaven advances the raven one tile toward the orchard.
	FaceRaven
)

// numFaces is the die's face count; faces are sampled uniformly over [0, numFaces).
const numFaces = 6

// String returns a human-readable face label.
func (f Face) String() string {
	switch f {
	case FaceRed:
		return "red"
	case FaceGreen:
		return "green"
	case FaceBlue:
		return "blue"
	case FaceYellow:
		return "yellow"
	case FaceBasket:
		return "basket"
	case FaceRaven:
		return "raven"
	default:
		return "unknown"
	}
}

// DrawFace draws one die face from src, each of the six faces equally likely.
//
// Precondition: src must be non-nil.
func DrawFace(src dice.Source) Face {
	return Face(src.Intn(numFaces))
}

// Outcome is the terminal classification of a finished playthrough.
type Outcome int

const (
	// Won means the piles were emptied before the raven arrived.
	Won Outcome = iota
	// Lost means the raven reached the orchard first.
	Lost
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Game is the mutable state of one playthrough. It is a plain value: each
// trial owns its own copy on the stack and nothing is shared.
//
// Invariant: RavenPosition and every pile are non-increasing over a game's
// lifetime; decrements saturate at zero and piles never exceed
// InitialPileSize.
type Game struct {
	// RavenPosition is the number of tiles left before the raven reaches the
	// orchard; the game is lost when it hits zero.
	RavenPosition uint8
	// Piles holds the remaining fruit per pile: [red, green, blue, yellow].
	Piles [NumPiles]uint8
}

// New constructs a game with the raven the given number of tiles away and all
// piles full. Any value is accepted, including zero, which classifies as Lost
// on the first terminal check.
func New(ravenPosition uint8) Game {
	return Game{
		RavenPosition: ravenPosition,
		Piles:         [NumPiles]uint8{InitialPileSize, InitialPileSize, InitialPileSize, InitialPileSize},
	}
}

// PileSum returns the total fruit remaining across all piles.
func (g Game) PileSum() uint8 {
	var sum uint8
	for _, p := range g.Piles {
		sum += p
	}
	return sum
}

// Apply applies one die face to the game, mutating it in place, and reports
// whether the transition ended the game. When done is true, outcome holds the
// terminal classification; otherwise outcome is meaningless.
//
// The terminal check runs after every transition: a raven at zero loses
// before an empty orchard wins, so a state satisfying both classifies Lost.
//
// Precondition: face is one of the six defined faces.
func (g *Game) Apply(face Face) (outcome Outcome, done bool) {
	switch face {
	case FaceRed, FaceGreen, FaceBlue, FaceYellow:
		g.Piles[face] = saturatingDec(g.Piles[face])
	case FaceBasket:
		// First-encountered maximum; ties are broken by pile order.
		largest := 0
		for i := 1; i < NumPiles; i++ {
			if g.Piles[i] > g.Piles[largest] {
				largest = i
			}
		}
		g.Piles[largest] = saturatingDec(g.Piles[largest])
	case FaceRaven:
		g.RavenPosition = saturatingDec(g.RavenPosition)
	default:
		panic("orchard: Apply called with unknown face")
	}

	if g.RavenPosition == 0 {
		return Lost, true
	}
	if g.PileSum() == 0 {
		return Won, true
	}
	return 0, false
}

// saturatingDec decrements v by one, stopping at zero.
func saturatingDec(v uint8) uint8 {
	if v == 0 {
		return 0
	}
	return v - 1
}
