package domain

// Response is the outcome of evaluating a single command. It is written
// at most once into the command's reply slot.
type Response struct {
	OK     bool   `json:"ok"`
	Result string `json:"result,omitempty"`
	Err    *Error `json:"error,omitempty"`
}

// Success wraps an evaluation result (JSON text or a raw value).
func Success(result string) Response {
	return Response{OK: true, Result: result}
}

// Failure wraps a structured error.
func Failure(err *Error) Response {
	return Response{OK: false, Err: err}
}
