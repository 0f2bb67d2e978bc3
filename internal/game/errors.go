package game

import "fmt"

// UnsupportedFeatureError is returned for chart features that are parsed but
// not playable, such as long notes.
type UnsupportedFeatureError struct {
	Chart   string
	Line    int
	Feature string
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("%v on line %v of chart %v is not implemented", e.Feature, e.Line+1, e.Chart)
}
