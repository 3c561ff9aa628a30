package sim

// Difficulty is one of the game's predefined starting positions. The three
// settings differ only in how far the raven starts from the orchard.
type Difficulty struct {
	// Name is the human-facing label.
	Name string
	// RavenStart is the raven's initial distance from the orchard.
	RavenStart uint8
}

// Difficulties lists the supported settings in decreasing win-rate order.
//
// The values match the physical game's difficulty adjustment: five raven
// tiles in the box, with the start tile counted or not.
var Difficulties = []Difficulty{
	{Name: "easy", RavenStart: 6},
	{Name: "normal", RavenStart: 5},
	{Name: "hard", RavenStart: 4},
}
