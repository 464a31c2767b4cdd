package component

// WhiteFlash makes an entity render white while active. Timing is
// frame-based.
type WhiteFlash struct {
	Frames   int
	Interval int
	Timer    int
	On       bool
}

var WhiteFlashComponent = NewComponent[WhiteFlash]()
