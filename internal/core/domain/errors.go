package domain

import (
	"errors"
	"fmt"
)

// ErrNoFieldMatchers is returned when a query carries zero field match
// specifications, so there is nothing to score.
var ErrNoFieldMatchers = errors.New("no field matchers configured")

// UnsupportedMatcherError reports a matcher name outside the supported set.
type UnsupportedMatcherError struct {
	Name string
}

func (e *UnsupportedMatcherError) Error() string {
	return fmt.Sprintf("the matcher [%s] is not supported", e.Name)
}

// InvalidConfigurationError reports a field match entry missing a required
// property. One distinct instance is raised per missing property so the
// message stays diagnostic.
type InvalidConfigurationError struct {
	Property string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid matcher configuration, missing: [%s] property", e.Property)
}

// DegenerateCombinationError reports a score pair whose naive-Bayes
// combination denominator vanishes (e.g. combining 0.0 with 1.0).
type DegenerateCombinationError struct {
	Left  float64
	Right float64
}

func (e *DegenerateCombinationError) Error() string {
	return fmt.Sprintf("cannot combine scores %g and %g: combination denominator is zero", e.Left, e.Right)
}
