package sources

import "fmt"

const (
	StageFetch = "fetch"
	StageParse = "parse"
)

// FetchError is a failure to extract one card page, tagged with where it happened.
type FetchError struct {
	Source string
	Set    string
	Number int
	Stage  string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("source=%s card=%s-%d stage=%s: %v", e.Source, e.Set, e.Number, e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPStatusError reports a page answered with a status other than 200.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}
