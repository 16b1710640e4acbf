package t2048

import (
	"github.com/vovakirdan/merge-arcade/internal/registry"
)

// Variant is a registered flavour of the game.
type Variant struct {
	ID    string
	Title string
	Size  int // Board size; 0 takes it from the config
}

// Variants lists every registered variant.
var Variants = []Variant{
	{ID: "2048", Title: "2048"},
	{ID: "2048_6x6", Title: "2048 (6x6)", Size: 6},
	{ID: "2048_3x3", Title: "2048 (3x3)", Size: 3},
}

// VariantByID looks up a registered variant.
func VariantByID(id string) (Variant, bool) {
	for _, v := range Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}
