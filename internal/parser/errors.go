package parser

import "fmt"

// SyntaxError is returned for a chart line that matches no known pattern
type SyntaxError struct {
	Chart string
	Line  int // 0 based
	Text  string
	Err   error // Set when the line matched but a value was invalid
}

func (e *SyntaxError) Error() string {
	if nil != e.Err {
		return fmt.Sprintf("the line '%v' (%v) in the chart %v is invalid: %v", e.Text, e.Line+1, e.Chart, e.Err)
	}
	return fmt.Sprintf("the line '%v' (%v) in the chart %v does not match any known pattern", e.Text, e.Line+1, e.Chart)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
