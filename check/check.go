// Package check validates batches of IBANs concurrently and reports each
// outcome with the account number masked.
package check

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vortex-fintech/go-iban/country"
	"github.com/vortex-fintech/go-iban/iban"
	"github.com/vortex-fintech/go-iban/logger"
	"github.com/vortex-fintech/go-iban/metrics"
	"github.com/vortex-fintech/go-iban/piiutil"
	"github.com/vortex-fintech/go-iban/timeutil"
)

// maxLineSize bounds the bytes kept for one input line. Longer lines are
// drained and reported as ErrWrongSize without being parsed.
const maxLineSize = 64 * 1024

type Options struct {
	// Workers bounds concurrent checks. Zero means GOMAXPROCS.
	Workers  int
	Logger   *logger.Logger
	Recorder *metrics.Recorder
	Clock    timeutil.Clock
}

// Result is the outcome for one input. It never holds the input in clear.
type Result struct {
	// Line is the 1-based input position: the index for Check, the line
	// number for CheckReader.
	Line    int
	Masked  string
	Country country.Code
	Valid   bool
	// Reason is metrics.OutcomeValid or an iban.Reason code.
	Reason string
	Err    error
}

type Checker struct {
	workers int
	log     *logger.Logger
	rec     *metrics.Recorder
	clock   timeutil.Clock
}

func New(opts Options) *Checker {
	c := &Checker{
		workers: opts.Workers,
		log:     opts.Logger,
		rec:     opts.Recorder,
		clock:   opts.Clock,
	}
	if c.workers <= 0 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	if c.clock == nil {
		c.clock = timeutil.Default
	}
	return c
}

type input struct {
	line    int
	text    string
	tooLong bool
}

// Check validates every input and returns results in input order.
func (c *Checker) Check(ctx context.Context, inputs []string) ([]Result, error) {
	in := make([]input, len(inputs))
	for k, s := range inputs {
		in[k] = input{line: k + 1, text: s}
	}
	return c.run(ctx, in)
}

// CheckReader validates one IBAN per line of r. Blank lines and lines
// starting with '#' are skipped.
func (c *Checker) CheckReader(ctx context.Context, r io.Reader) ([]Result, error) {
	var in []input

	br := bufio.NewReader(r)
	line := 0
	for {
		raw, tooLong, err := readLine(br)
		if len(raw) > 0 || tooLong {
			line++
			switch text := strings.TrimSpace(string(raw)); {
			case tooLong:
				in = append(in, input{line: line, tooLong: true})
			case text == "" || strings.HasPrefix(text, "#"):
			default:
				in = append(in, input{line: line, text: text})
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read input after line %d: %w", line, err)
		}
	}

	return c.run(ctx, in)
}

// readLine returns the next line including its newline. Past maxLineSize
// the rest of the line is consumed and discarded and tooLong is set.
func readLine(br *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		frag, err := br.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(frag) > maxLineSize {
				tooLong, line = true, nil
			} else {
				line = append(line, frag...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return line, tooLong, err
	}
}

func (c *Checker) run(ctx context.Context, in []input) ([]Result, error) {
	results := make([]Result, len(in))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for k := range in {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[k] = c.checkOne(gctx, in[k])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := Summary(results)
	c.log.InfowCtx(ctx, "iban batch checked",
		"total", s.Total,
		"valid", s.Valid,
		"invalid", s.Total-s.Valid,
	)
	return results, nil
}

func (c *Checker) checkOne(ctx context.Context, in input) Result {
	start := c.clock.Now()
	var (
		parsed iban.IBAN
		err    error
	)
	if in.tooLong {
		err = fmt.Errorf("%w: line longer than %d bytes", iban.ErrWrongSize, maxLineSize)
	} else if parsed, err = iban.Parse(in.text); err == nil {
		err = parsed.Validate()
	}
	elapsed := c.clock.Since(start)

	res := Result{
		Line:   in.line,
		Masked: piiutil.MaskIBAN(in.text),
		Err:    err,
	}
	if !parsed.IsZero() {
		res.Masked = piiutil.MaskIBAN(parsed.String())
		res.Country = parsed.Country()
	}
	if err == nil {
		res.Valid = true
		res.Reason = metrics.OutcomeValid
	} else {
		res.Reason = iban.Reason(err)
	}

	c.rec.Observe(countryLabel(res.Country), res.Reason, elapsed)
	c.log.DebugwCtx(ctx, "iban checked",
		"line", res.Line,
		"iban", res.Masked,
		"outcome", res.Reason,
	)
	return res
}

// countryLabel keeps the metric label set closed: codes outside the length
// table are folded into "other".
func countryLabel(c country.Code) string {
	switch {
	case c == "":
		return ""
	case c.Supported():
		return c.String()
	default:
		return "other"
	}
}

// Totals tallies a batch.
type Totals struct {
	Total   int
	Valid   int
	Invalid map[string]int
}

func Summary(results []Result) Totals {
	t := Totals{Total: len(results), Invalid: map[string]int{}}
	for _, r := range results {
		if r.Valid {
			t.Valid++
			continue
		}
		t.Invalid[r.Reason]++
	}
	return t
}
