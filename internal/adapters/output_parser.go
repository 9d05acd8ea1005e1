package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"xpm/internal/ports"
)

// DiscardParser ignores all output. Used for invocations run only for
// their side effects.
type DiscardParser struct{}

func NewDiscardParser() DiscardParser {
	return DiscardParser{}
}

func (DiscardParser) ReceiveStdout(_ []byte) error { return nil }
func (DiscardParser) ReceiveStderr(_ []byte) error { return nil }
func (DiscardParser) Exit() (struct{}, error)      { return struct{}{}, nil }

// validator is implemented by decoded values that can check their own
// required keys.
type validator interface {
	Validate() error
}

// JSONParser buffers stdout and decodes it as T when the invocation exits.
// When T has a Validate method the decoded value must pass it. Stderr is
// ignored.
type JSONParser[T any] struct {
	buffer bytes.Buffer
}

func NewJSONParser[T any]() *JSONParser[T] {
	return &JSONParser[T]{}
}

func (p *JSONParser[T]) ReceiveStdout(b []byte) error {
	p.buffer.Write(b)
	return nil
}

func (p *JSONParser[T]) ReceiveStderr(_ []byte) error {
	return nil
}

func (p *JSONParser[T]) Exit() (T, error) {
	var value T
	if err := decodeJSON(p.buffer.Bytes(), &value); err != nil {
		var zero T
		return zero, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("failed to decode %T output", zero)).
			WithCause(err)
	}
	return value, nil
}

// decodeJSON unmarshals data into target and validates the result.
func decodeJSON(data []byte, target any) error {
	if err := json.Unmarshal(data, target); err != nil {
		return err
	}
	if v, ok := target.(validator); ok {
		return v.Validate()
	}
	return nil
}

var (
	_ ports.OutputParser[struct{}] = DiscardParser{}
	_ ports.OutputParser[any]      = (*JSONParser[any])(nil)
)
