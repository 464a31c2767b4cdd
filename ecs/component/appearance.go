package component

import "image/color"

// Appearance is the flat color an entity's box is drawn with.
type Appearance struct {
	Color color.NRGBA
}

var AppearanceComponent = NewComponent[Appearance]()
