package query

import "hash/fnv"

// Palette is the bounded set of sender colors. Assignment is a pure function
// of the alias so a sender keeps its color across runs and machines.
var Palette = []string{"#FFDDC1", "#C1E1FF", "#D4FAC1", "#FFD1DC", "#E6E6FA"}

// PaletteIndex maps a sender alias onto a palette slot.
func PaletteIndex(sender string) int {
	h := fnv.New32a()
	h.Write([]byte(sender))
	return int(h.Sum32() % uint32(len(Palette)))
}

// SenderColor returns the hex color for a sender alias.
func SenderColor(sender string) string {
	return Palette[PaletteIndex(sender)]
}
