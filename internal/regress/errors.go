package regress

import "fmt"

// RankDeficiencyError reports a design matrix that is not full column rank,
// e.g. two perfectly collinear predictors or a categorical level with zero
// observations after the complete-case filter.
type RankDeficiencyError struct {
	Column string
}

func (e *RankDeficiencyError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("design matrix is rank deficient at column %q", e.Column)
	}
	return "design matrix is rank deficient"
}

// InsufficientDataError reports a fit with no residual degrees of freedom.
type InsufficientDataError struct {
	Observations int
	Parameters   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d observations for %d parameters",
		e.Observations, e.Parameters)
}
