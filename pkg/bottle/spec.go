package bottle

// Spec identifies the bottle to build.
type Spec struct {
	TapName     string
	TapURL      string
	FormulaName string
	// OSName is the Homebrew bottle tag, e.g. el_capitan.
	OSName  string
	KeepTmp bool
}

// QualifiedFormulaName is the tap-qualified formula name, e.g.
// easoncxz/tap/wire.
func (s Spec) QualifiedFormulaName() string {
	return s.TapName + "/" + s.FormulaName
}
