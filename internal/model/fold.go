package model

import (
	"golang.org/x/text/cases"
)

// equalFold compares two strings under full Unicode case folding.
func equalFold(a, b string) bool {
	c := cases.Fold()
	return c.String(a) == c.String(b)
}
