package command

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dd0wney/netmatrix/pkg/logging"
)

// maxLineLength bounds a single command line.
const maxLineLength = 1 << 20

// Runner feeds a stream of command lines through a Dispatcher.
type Runner struct {
	dispatcher *Dispatcher
	logger     logging.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(d *Dispatcher, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Runner{
		dispatcher: d,
		logger:     logger.With(logging.Component("runner")),
	}
}

// Run executes every non-blank line of r and writes each result to w
// followed by a newline. It stops early when ctx is cancelled, checking
// between lines, and returns the number of commands executed.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) (int, error) {
	timer := logging.StartTimer(r.logger, "run")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	w := bufio.NewWriter(out)

	executed := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			w.Flush()
			timer.EndError(err, logging.Count(executed))
			return executed, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		result := r.dispatcher.Execute(line)
		executed++
		if _, err := fmt.Fprintln(w, result); err != nil {
			timer.EndError(err, logging.Count(executed))
			return executed, fmt.Errorf("write result: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		w.Flush()
		timer.EndError(err, logging.Count(executed))
		return executed, fmt.Errorf("read commands: %w", err)
	}
	if err := w.Flush(); err != nil {
		timer.EndError(err, logging.Count(executed))
		return executed, fmt.Errorf("flush results: %w", err)
	}

	r.logger.Info("commands processed", logging.Count(executed), logging.Latency(timer.Elapsed()))
	return executed, nil
}
