package jobs

import "fmt"

// RankingError reports a failed call to the role ranking provider.
type RankingError struct {
	Provider string
	Err      error
}

func (e *RankingError) Error() string {
	return fmt.Sprintf("ranking via %s failed: %v", e.Provider, e.Err)
}

func (e *RankingError) Unwrap() error { return e.Err }

// SearchError reports a failed live job search for a single role.
type SearchError struct {
	Role string
	Err  error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("job search for %q failed: %v", e.Role, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }
