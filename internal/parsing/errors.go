package parsing

import "fmt"

// maxQuotedResponse bounds how much of a bad model answer a ParseError quotes.
const maxQuotedResponse = 120

// APICallError is a style profile request that never produced a model answer.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	msg := "style profile request failed: " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *APICallError) Unwrap() error { return e.Cause }

// ParseError is a model answer that could not be read as a style profile.
// Response holds the cleaned answer, shortened for logs.
type ParseError struct {
	Message  string
	Response string
	Cause    error
}

func (e *ParseError) Error() string {
	msg := "style profile response unreadable: " + e.Message
	if e.Response != "" {
		msg += fmt.Sprintf(" (response %q)", e.Response)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Cause }

func quoteResponse(text string) string {
	runes := []rune(text)
	if len(runes) <= maxQuotedResponse {
		return text
	}
	return string(runes[:maxQuotedResponse]) + "..."
}
