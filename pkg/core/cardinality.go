package core

import "fmt"

// Cardinality bounds how many options of an ENUM decision may be selected
// at the same time.
type Cardinality struct {
	Min int
	Max int
}

func (c Cardinality) String() string {
	return fmt.Sprintf("%d:%d", c.Min, c.Max)
}

// Allows reports whether selecting n options satisfies the cardinality.
func (c Cardinality) Allows(n int) bool {
	return n >= c.Min && n <= c.Max
}
