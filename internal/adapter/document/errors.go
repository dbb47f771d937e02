package document

import "fmt"

// Kind classifies fetch and extraction failures so callers can distinguish a
// bad document from a bad model.
type Kind string

const (
	KindTooLarge  Kind = "too_large"
	KindNotFound  Kind = "not_found"
	KindNotPDF    Kind = "not_pdf"
	KindNoText    Kind = "no_text"
	KindTransport Kind = "transport"
)

// FetchError is a classified document fetch or extraction failure.
type FetchError struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func newFetchError(kind Kind, msg string, err error) *FetchError {
	return &FetchError{Kind: kind, Msg: msg, Err: err}
}
