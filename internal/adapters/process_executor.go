package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"xpm/internal/ports"
	"xpm/internal/shared"
	"xpm/internal/types"
)

const (
	readChunkSize  = 32 * 1024
	stderrTailSize = 4 * 1024
)

// NonZeroExitError reports an invocation that exited with a non-zero
// status or was terminated by a signal.
type NonZeroExitError struct {
	Process  types.Process
	ExitCode int
	Signal   string
	Stderr   string
}

func (e *NonZeroExitError) Signaled() bool {
	return e.Signal != ""
}

func (e *NonZeroExitError) Error() string {
	var message string
	if e.Signaled() {
		message = fmt.Sprintf("%q was terminated by signal %s", e.Process.String(), e.Signal)
	} else {
		message = fmt.Sprintf("%q exited with code %d", e.Process.String(), e.ExitCode)
	}
	if e.Stderr == "" {
		return message
	}
	return shared.CommandError([]byte(e.Stderr), errors.New(message)).Error()
}

// ProcessExecutor runs processes as OS subprocesses. Each batch runs
// fully in parallel; callers that need serial execution submit one
// process per call.
type ProcessExecutor struct {
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
}

func NewProcessExecutor(verbose bool) *ProcessExecutor {
	return &ProcessExecutor{
		Verbose: verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

func (e *ProcessExecutor) Execute(ctx context.Context, processes []types.Process, parser ports.StreamParser) ([]any, error) {
	batch := &batchParser{parser: parser, executor: e}

	var (
		mu      sync.Mutex
		outputs = make([]any, 0, len(processes))
		group   errgroup.Group
	)
	for _, process := range processes {
		batch.echoCommand(process)
		group.Go(func() error {
			output, err := e.run(ctx, process, batch)
			if err != nil {
				log.Ctx(ctx).Debug().Str("program", process.Program()).Err(err).Msg("process failed")
				return err
			}
			mu.Lock()
			outputs = append(outputs, output)
			mu.Unlock()
			return nil
		})
	}
	// errgroup.Group without a context never cancels siblings; Wait
	// returns the first error recorded, which is completion order.
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func (e *ProcessExecutor) run(ctx context.Context, process types.Process, batch *batchParser) (any, error) {
	if strings.TrimSpace(process.Program()) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("process has no program")
	}
	cmd := exec.CommandContext(ctx, process.Program(), process.Args()...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, startError(process, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, startError(process, err)
	}
	log.Ctx(ctx).Debug().Strs("args", process.Arguments).Msg("launching process")
	if err := cmd.Start(); err != nil {
		return nil, startError(process, err)
	}

	tail := &tailBuffer{limit: stderrTailSize}
	var (
		readers   sync.WaitGroup
		stdoutErr error
		stderrErr error
	)
	readers.Add(2)
	go func() {
		defer readers.Done()
		stdoutErr = pump(stdout, batch.receiveStdout)
	}()
	go func() {
		defer readers.Done()
		stderrErr = pump(stderr, func(p []byte) error {
			tail.Write(p)
			return batch.receiveStderr(p)
		})
	}()
	// Pipes must be drained before Wait closes them.
	readers.Wait()
	waitErr := cmd.Wait()

	if stdoutErr != nil {
		return nil, stdoutErr
	}
	if stderrErr != nil {
		return nil, stderrErr
	}
	if waitErr != nil {
		return nil, exitError(process, waitErr, tail.String())
	}
	return batch.exit()
}

// pump delivers chunks to receive as they are read. After receive fails
// the remaining bytes are drained so the child never blocks on a full pipe.
func pump(r io.Reader, receive func([]byte) error) error {
	buf := make([]byte, readChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			if recvErr := receive(chunk); recvErr != nil {
				_, _ = io.Copy(io.Discard, r)
				return recvErr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read process output").
				WithCause(err)
		}
	}
}

func startError(process types.Process, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("failed to start %s", process.Program())).
		WithCause(err)
}

func exitError(process types.Process, err error, stderr string) error {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed waiting for %s", process.Program())).
			WithCause(err)
	}
	result := &NonZeroExitError{
		Process:  process,
		ExitCode: exitErr.ExitCode(),
		Stderr:   strings.TrimSpace(stderr),
	}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		result.Signal = status.Signal().String()
	}
	return result
}

// batchParser serialises access to the parser shared by one batch and
// mirrors output when the executor is verbose.
type batchParser struct {
	mu       sync.Mutex
	parser   ports.StreamParser
	executor *ProcessExecutor
}

func (b *batchParser) echoCommand(process types.Process) {
	if !b.executor.Verbose {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintf(b.executor.Stdout, "$ %s\n", process.String())
}

func (b *batchParser) receiveStdout(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.executor.Verbose {
		_, _ = b.executor.Stdout.Write(p)
	}
	return b.parser.ReceiveStdout(p)
}

func (b *batchParser) receiveStderr(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.executor.Verbose {
		_, _ = b.executor.Stderr.Write(p)
	}
	return b.parser.ReceiveStderr(p)
}

func (b *batchParser) exit() (any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.parser.Exit()
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	data  []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data = append(t.data, p...)
	if over := len(t.data) - t.limit; over > 0 {
		t.data = t.data[over:]
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.data)
}

var _ ports.Executor = (*ProcessExecutor)(nil)
