package wikipedia

import (
	"errors"
	"fmt"
)

// Kind classifies a WikiError. The set is closed.
type Kind int

const (
	// KindPageNotFound means the search returned no usable title/URL pair
	KindPageNotFound Kind = iota + 1
	// KindPageRequest means the HTTP call itself failed
	KindPageRequest
	// KindJSONParse means the body did not match the expected wire shape
	KindJSONParse
	// KindResponse means the body matched the shape but held no page entries
	KindResponse
)

// String returns the label used for metrics and logs
func (k Kind) String() string {
	switch k {
	case KindPageNotFound:
		return "page_not_found"
	case KindPageRequest:
		return "page_request"
	case KindJSONParse:
		return "json_parse"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

// WikiError is the only error type returned by Search, Summary and Content.
// Err holds the underlying cause for diagnostics; it is reachable through
// errors.Unwrap but never part of the message.
type WikiError struct {
	Kind Kind
	Term string // original search term, set for KindPageNotFound
	Err  error
}

func (e *WikiError) Error() string {
	switch e.Kind {
	case KindPageNotFound:
		return fmt.Sprintf("PageNotFound: Couldn't find '%s'.", e.Term)
	case KindPageRequest:
		return "PageRequestError: Internal error."
	case KindJSONParse:
		return "JsonParseError: Internal response parsing error."
	case KindResponse:
		return "ResponseError: Response contained no pages."
	default:
		return "WikiError: Unknown error."
	}
}

func (e *WikiError) Unwrap() error {
	return e.Err
}

// Is matches any *WikiError of the same kind, so the Err* sentinels work with errors.Is
func (e *WikiError) Is(target error) bool {
	t, ok := target.(*WikiError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is. ErrPageNotFound matches regardless of the term.
var (
	ErrPageNotFound = &WikiError{Kind: KindPageNotFound}
	ErrPageRequest  = &WikiError{Kind: KindPageRequest}
	ErrJSONParse    = &WikiError{Kind: KindJSONParse}
	ErrResponse     = &WikiError{Kind: KindResponse}
)

func newPageNotFound(term string) *WikiError {
	return &WikiError{Kind: KindPageNotFound, Term: term}
}

func newPageRequest(cause error) *WikiError {
	return &WikiError{Kind: KindPageRequest, Err: cause}
}

func newJSONParse(cause error) *WikiError {
	return &WikiError{Kind: KindJSONParse, Err: cause}
}

func newResponse(cause error) *WikiError {
	return &WikiError{Kind: KindResponse, Err: cause}
}

// KindOf returns the kind of the first WikiError in err's chain, or 0 if there is none
func KindOf(err error) Kind {
	var we *WikiError
	if errors.As(err, &we) {
		return we.Kind
	}
	return 0
}

// IsPageNotFound returns true if err is a page-not-found WikiError
func IsPageNotFound(err error) bool {
	return errors.Is(err, ErrPageNotFound)
}

// IsPageRequest returns true if err is a request-failure WikiError
func IsPageRequest(err error) bool {
	return errors.Is(err, ErrPageRequest)
}

// IsJSONParse returns true if err is a parse-failure WikiError
func IsJSONParse(err error) bool {
	return errors.Is(err, ErrJSONParse)
}

// IsResponse returns true if err is an empty-response WikiError
func IsResponse(err error) bool {
	return errors.Is(err, ErrResponse)
}

// ValidationError indicates invalid tool arguments. It is raised before any
// request is made and is not part of the WikiError taxonomy.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("validation failed for %s=%q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// IsValidation returns true if the error is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
