package diff

func init() {
	// The first registered algorithm is the default.
	Register(Myers{})
	Register(LCS{})
	Register(XDiff{})
	Register(Naive{})
	Register(DMP{})
}
