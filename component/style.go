package component

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// StyleComponent is the optional per-entity drawing style
type StyleComponent struct {
	Color  RGB
	Dashed bool
}
