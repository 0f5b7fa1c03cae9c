package clip

// Category classifies a processor for host plugin browsers.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryEffect
)

func (c Category) String() string {
	if c == CategoryEffect {
		return "Effect"
	}

	return "Unknown"
}

const (
	vendor   = "lost_guitarist_audio"
	ioPairs  = 2
	simpleID = 36278942
	// The folding engine has no published identity of its own. It takes the
	// next ID after the simple one and swaps "clip" for "fold" in the name.
	foldingID = simpleID + 1
)

// Info is the metadata a plugin host shows for an engine.
type Info struct {
	Name       string
	Vendor     string
	UniqueID   int32
	Inputs     int
	Outputs    int
	Parameters int
	Category   Category
}

// Info returns host metadata for the engine's kind.
func (e *Engine) Info() Info {
	info := Info{
		Name:       "complex_clip",
		Vendor:     vendor,
		UniqueID:   simpleID,
		Inputs:     ioPairs,
		Outputs:    ioPairs,
		Parameters: e.kind.ParamCount(),
		Category:   CategoryEffect,
	}

	if e.kind == KindFolding {
		info.Name = "complex_fold"
		info.UniqueID = foldingID
	}

	return info
}
