package errorx

import "fmt"

type Error struct {
	Code    Code
	Message string
}

// Unknown hides the real failure from the client. The cause must be logged
// before returning this value.
var Unknown = Error{Code: 100000, Message: "Request failed"}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}
