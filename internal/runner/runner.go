// Package runner drives the record stream: read a line, evaluate the query,
// print immediately or buffer for sorting, report per-record errors without
// stopping the stream.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/berquerant/jsongrep/internal/config"
	"github.com/berquerant/jsongrep/internal/exit"
	"github.com/berquerant/jsongrep/internal/ratelimit"
	"github.com/berquerant/jsongrep/internal/selector"
	"github.com/berquerant/jsongrep/internal/sorter"
	"github.com/berquerant/jsongrep/internal/spec"
	"github.com/berquerant/jsongrep/internal/template"
)

// maxLineBytes bounds a single input record.
const maxLineBytes = 16 << 20

// Runner streams JSON records from input, filters them, and writes selected
// records to output. When sort criteria are configured, selected records are
// buffered and emitted in sorted order after the input is exhausted.
type Runner struct {
	selector *selector.Selector
	sorter   sortBuffer
	renderer *template.Renderer // nil means raw line output
	limiter  *ratelimit.Limiter
	debug    bool

	input     io.Reader
	output    io.Writer
	errOutput io.Writer
}

// sortBuffer pairs buffered raw lines and decoded documents with the
// ordering engine. Inactive when no sort was configured.
type sortBuffer struct {
	engine *sorter.Sorter
	lines  []string
	docs   []any
}

func (b *sortBuffer) active() bool { return b.engine != nil }

func (b *sortBuffer) add(line string, doc any) {
	b.engine.Add(doc)
	b.lines = append(b.lines, line)
	b.docs = append(b.docs, doc)
}

// New builds a runner from the parsed configuration: compiles the query and
// sort documents and the output template.
func New(cfg *config.Config) (*Runner, *exit.Result) {
	sel := selector.All()
	queryDoc, err := cfg.QueryDocument()
	if err != nil {
		return nil, exit.Errorf("Error: %v\n", err)
	}
	if queryDoc != nil {
		q, err := spec.ParseQuery(queryDoc)
		if err != nil {
			return nil, exit.Errorf("Error: %v\n", err)
		}
		sel = selector.New(q)
	}

	var buffer sortBuffer
	sortDoc, err := cfg.SortDocument()
	if err != nil {
		return nil, exit.Errorf("Error: %v\n", err)
	}
	if sortDoc != nil {
		criteria, err := spec.ParseSort(sortDoc)
		if err != nil {
			return nil, exit.Errorf("Error: %v\n", err)
		}
		buffer.engine = sorter.New(criteria)
	}

	var renderer *template.Renderer
	if cfg.Template != "" {
		renderer, err = template.New(cfg.Template)
		if err != nil {
			return nil, exit.Errorf("Error: %v\n", err)
		}
	}

	return &Runner{
		selector:  sel,
		sorter:    buffer,
		renderer:  renderer,
		limiter:   ratelimit.New(cfg.RateLimit),
		debug:     cfg.Debug,
		input:     os.Stdin,
		output:    os.Stdout,
		errOutput: os.Stderr,
	}, nil
}

// SetInput overrides the record source.
func (r *Runner) SetInput(in io.Reader) { r.input = in }

// SetOutput overrides the destination for selected records.
func (r *Runner) SetOutput(w io.Writer) { r.output = w }

// SetErrorOutput overrides the destination for diagnostics.
func (r *Runner) SetErrorOutput(w io.Writer) { r.errOutput = w }

func (r *Runner) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errOutput, format+"\n", args...)
}

// Run processes the stream and returns the process exit code. A record that
// fails to evaluate is reported against its line number; the next record is
// still processed.
func (r *Runner) Run(ctx context.Context) int {
	scanner := bufio.NewScanner(r.input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNumber := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			r.logf("interrupted at line %d", lineNumber)
			return 1
		default:
		}

		lineNumber++
		line := scanner.Text()

		document, err := r.selector.Select(line)
		switch {
		case err == nil:
			if r.debug {
				r.logf("line %d: selected", lineNumber)
			}
			if r.sorter.active() {
				r.sorter.add(line, document)
				continue
			}
			if err := r.emit(ctx, lineNumber, line, document); err != nil {
				r.logf("interrupted: %v", err)
				return 1
			}
		case errors.Is(err, selector.ErrNotSelected):
			if r.debug {
				r.logf("line %d: filtered", lineNumber)
			}
		default:
			r.logf("line %d: %v", lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		r.logf("read input: %v", err)
		return 1
	}

	if !r.sorter.active() {
		return 0
	}
	for _, i := range r.sorter.engine.Indexes() {
		if err := r.emit(ctx, i+1, r.sorter.lines[i], r.sorter.docs[i]); err != nil {
			r.logf("interrupted: %v", err)
			return 1
		}
	}
	return 0
}

// emit writes one selected record, applying the rate limit and the output
// template. Template failures are per-record diagnostics, not fatal.
func (r *Runner) emit(ctx context.Context, lineNumber int, line string, document any) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return err
	}

	out := line
	if r.renderer != nil {
		rendered, err := r.renderer.Render(document)
		if err != nil {
			r.logf("line %d: %v", lineNumber, err)
			return nil
		}
		out = rendered
	}

	_, err := fmt.Fprintln(r.output, out)
	return err
}
