package output

import "io"

// Handler renders a command's result, or its failure, in one output format.
type Handler[T any] interface {
	// Writer returns the io.Writer this Handler will write to.
	Writer() io.Writer

	// HandleResult renders a single item.
	HandleResult(item T) error

	// HandleError renders the error.
	HandleError(err error) error
}

// Printer renders an item as human-readable text.
type Printer[T any] interface {
	Item(w io.Writer, item T) error
}

// PrinterFunc adapts a function to Printer.
type PrinterFunc[T any] func(w io.Writer, item T) error

// Item implements Printer.
func (f PrinterFunc[T]) Item(w io.Writer, item T) error {
	return f(w, item)
}

// ResultPayload is a generic wrapper for a single result value.
// The payload is serialized with the key "result".
type ResultPayload[T any] struct {
	Result T `json:"result" yaml:"result"`
}

// ErrorPayload represents an error message.
// The payload is serialized with the key "error".
type ErrorPayload struct {
	Error string `json:"error" yaml:"error"`
}
