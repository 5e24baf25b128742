package publist

import "fmt"

// ErrorCode classifies why a roster document could not be loaded.
type ErrorCode string

const (
	// CodeEmptyInput indicates the document is empty after trimming whitespace.
	CodeEmptyInput ErrorCode = "empty-input"
	// CodeNotXMLLike indicates the document does not start with '<'.
	CodeNotXMLLike ErrorCode = "not-xml-like"
	// CodeMalformedXML indicates the XML tokenizer rejected the document.
	CodeMalformedXML ErrorCode = "malformed-xml"
	// CodeNoRecordsFound indicates no publisher element was found.
	CodeNoRecordsFound ErrorCode = "no-records-found"
)

var codeMessages = map[ErrorCode]string{
	CodeEmptyInput:     "roster document is empty",
	CodeNotXMLLike:     "roster document does not look like XML",
	CodeMalformedXML:   "roster document has XML syntax errors",
	CodeNoRecordsFound: "no publishers found in roster document",
}

// ParseError is returned by the parser. Compare with errors.Is against the
// Err* values; the underlying cause, if any, is reachable with errors.As.
type ParseError struct {
	Code ErrorCode
	Err  error
}

// Sentinels for errors.Is.
var (
	ErrEmptyInput     = &ParseError{Code: CodeEmptyInput}
	ErrNotXMLLike     = &ParseError{Code: CodeNotXMLLike}
	ErrMalformedXML   = &ParseError{Code: CodeMalformedXML}
	ErrNoRecordsFound = &ParseError{Code: CodeNoRecordsFound}
)

func (e *ParseError) Error() string {
	msg, ok := codeMessages[e.Code]
	if !ok {
		msg = string(e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches any ParseError with the same code.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Code == e.Code
}

func newParseError(code ErrorCode, err error) *ParseError {
	return &ParseError{Code: code, Err: err}
}
