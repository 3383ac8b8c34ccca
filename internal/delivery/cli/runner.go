// Package cli runs one prediction request read from stdin or the command
// line and writes one JSON object to stdout.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/smartmandi/inference/internal/domain"
	"github.com/smartmandi/inference/internal/usecase"
)

// Runner handles a single invocation
type Runner struct {
	dispatcher *usecase.Dispatcher
	stdout     io.Writer
}

// NewRunner creates a runner writing responses to stdout
func NewRunner(dispatcher *usecase.Dispatcher, stdout io.Writer) *Runner {
	return &Runner{
		dispatcher: dispatcher,
		stdout:     stdout,
	}
}

// Run executes args (operation, then optional JSON payload). stdin is nil
// when it is attached to a terminal.
func (r *Runner) Run(ctx context.Context, args []string, stdin io.Reader) error {
	if len(args) == 0 {
		return WriteResponse(r.stdout, domain.ErrorResponse("No operation specified"))
	}

	operation := args[0]
	log.Printf("[CLI] Starting operation: %s", operation)

	payload, source, err := readPayload(stdin, args[1:])
	if err != nil {
		return WriteResponse(r.stdout, domain.ErrorResponse(err.Error()))
	}

	decoded, err := usecase.DecodeRequest(payload)
	if err != nil {
		return WriteResponse(r.stdout, domain.ErrorResponse(
			fmt.Sprintf("JSON decode error from %s: %v", source, err)))
	}
	log.Printf("[CLI] Parsed %s data: %d bytes", source, len(payload))

	response, err := r.dispatcher.Dispatch(ctx, operation, decoded)
	if errors.Is(err, domain.ErrUnknownOperation) {
		return WriteResponse(r.stdout, domain.UnknownOperationResponse(operation))
	}
	if err != nil {
		return WriteResponse(r.stdout, domain.ErrorResponse(err.Error()))
	}

	return WriteResponse(r.stdout, response)
}

// WriteResponse encodes response as one line of JSON
func WriteResponse(w io.Writer, response domain.Response) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(response); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

// readPayload prefers non-empty stdin, then the first argument
func readPayload(stdin io.Reader, rest []string) ([]byte, string, error) {
	if stdin != nil {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", &domain.InputError{Detail: fmt.Sprintf("failed to read stdin: %v", err)}
		}
		if data = bytes.TrimSpace(data); len(data) > 0 {
			return data, "stdin", nil
		}
	}

	if len(rest) > 0 {
		arg := rest[0]
		// Some shells pass the payload with its quotes intact
		if len(arg) >= 2 && arg[0] == '"' && arg[len(arg)-1] == '"' {
			arg = arg[1 : len(arg)-1]
		}
		return []byte(arg), "argument", nil
	}

	return nil, "", &domain.InputError{Detail: "No input data provided"}
}
