package ports

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"xpm/internal/types"
)

// OutputParser consumes the byte streams of an invocation as they arrive
// and produces a typed value once the invocation exits successfully.
type OutputParser[T any] interface {
	ReceiveStdout(p []byte) error
	ReceiveStderr(p []byte) error
	Exit() (T, error)
}

// StreamParser is the type-erased form of OutputParser the executor drives.
type StreamParser interface {
	ReceiveStdout(p []byte) error
	ReceiveStderr(p []byte) error
	Exit() (any, error)
}

// Executor launches every process of a batch and waits for all of them.
// The parser instance is shared by the whole batch. Outputs are returned
// in completion order, which is not necessarily submission order; when
// any invocation fails the first failure in completion order is returned.
type Executor interface {
	Execute(ctx context.Context, processes []types.Process, parser StreamParser) ([]any, error)
}

// Erase adapts a typed parser to the executor.
func Erase[T any](parser OutputParser[T]) StreamParser {
	return erasedParser[T]{parser: parser}
}

type erasedParser[T any] struct {
	parser OutputParser[T]
}

func (e erasedParser[T]) ReceiveStdout(p []byte) error { return e.parser.ReceiveStdout(p) }
func (e erasedParser[T]) ReceiveStderr(p []byte) error { return e.parser.ReceiveStderr(p) }

func (e erasedParser[T]) Exit() (any, error) {
	return e.parser.Exit()
}

// Execute runs a batch and converts the outputs back to T.
func Execute[T any](ctx context.Context, executor Executor, processes []types.Process, parser OutputParser[T]) ([]T, error) {
	if len(processes) == 0 {
		return nil, nil
	}
	outputs, err := executor.Execute(ctx, processes, Erase(parser))
	if err != nil {
		return nil, err
	}
	typed := make([]T, 0, len(outputs))
	for _, output := range outputs {
		value, ok := output.(T)
		if !ok {
			var zero T
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("executor returned %T, expected %T", output, zero))
		}
		typed = append(typed, value)
	}
	return typed, nil
}

// ExecuteOne runs a single-process batch, where output order is moot.
func ExecuteOne[T any](ctx context.Context, executor Executor, process types.Process, parser OutputParser[T]) (T, error) {
	var zero T
	outputs, err := Execute(ctx, executor, []types.Process{process}, parser)
	if err != nil {
		return zero, err
	}
	if len(outputs) == 0 {
		return zero, nil
	}
	return outputs[0], nil
}
