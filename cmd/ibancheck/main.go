// Command ibancheck validates IBANs given as arguments or on stdin, one per
// line. It exits 1 when any input is invalid, 2 on usage errors and 3 when
// the run itself fails.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/urfave/cli.v1"

	"github.com/vortex-fintech/go-iban/check"
	ierrors "github.com/vortex-fintech/go-iban/errors"
	"github.com/vortex-fintech/go-iban/idutil"
	"github.com/vortex-fintech/go-iban/logger"
	"github.com/vortex-fintech/go-iban/logutil"
	"github.com/vortex-fintech/go-iban/metrics"
	"github.com/vortex-fintech/go-iban/validator"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
	exitFailure = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "ibancheck"
	app.Usage = "validate IBANs given as arguments, or one per line on stdin"
	app.ArgsUsage = "[IBAN ...]"
	app.HideVersion = true
	app.Flags = configFlags
	app.Writer = stdout
	app.ErrWriter = stderr
	return app
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	code := exitOK
	app := newApp(stdout, stderr)
	app.Action = func(c *cli.Context) error {
		code = execute(ctx, configFromContext(c), c.Args(), stdin, stdout, stderr)
		return nil
	}

	if err := app.Run(append([]string{app.Name}, args...)); err != nil {
		fmt.Fprintf(stderr, "ibancheck: %v\n", err)
		return exitUsage
	}
	return code
}

func execute(ctx context.Context, cfg Config, inputs []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if fields := validator.Validate(cfg); fields != nil {
		printViolations(stderr, logutil.SanitizeValidationErrors(fields, cfg.Env, ""))
		return exitUsage
	}

	log, err := logger.New("ibancheck", cfg.Env)
	if err != nil {
		fmt.Fprintf(stderr, "ibancheck: %v\n", err)
		return exitFailure
	}
	defer log.SafeSync()

	runID, err := idutil.NewRunID()
	if err != nil {
		log.Errorw("cannot create run id", "error", err)
		return exitFailure
	}
	ctx = logger.ContextWithRunID(ctx, runID.String())

	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	if err != nil {
		log.ErrorwCtx(ctx, "cannot register metrics", "error", err)
		return exitFailure
	}

	checker := check.New(check.Options{
		Workers:  cfg.Workers,
		Logger:   log,
		Recorder: rec,
	})

	var results []check.Result
	if len(inputs) > 0 {
		ctx = logger.ContextWithSource(ctx, "args")
		results, err = checker.Check(ctx, inputs)
	} else {
		ctx = logger.ContextWithSource(ctx, "stdin")
		results, err = checker.CheckReader(ctx, stdin)
	}
	if err != nil {
		log.ErrorwCtx(ctx, "check aborted", "error", err)
		return exitFailure
	}

	if err := report(stdout, cfg, results); err != nil {
		log.ErrorwCtx(ctx, "cannot write report", "error", err)
		return exitFailure
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile, reg); err != nil {
			log.ErrorwCtx(ctx, "cannot export metrics", "error", err, "path", cfg.MetricsFile)
			return exitFailure
		}
	}

	if s := check.Summary(results); s.Valid != s.Total {
		return exitInvalid
	}
	return exitOK
}

type jsonLine struct {
	Line    int                    `json:"line"`
	IBAN    string                 `json:"iban"`
	Country string                 `json:"country,omitempty"`
	Valid   bool                   `json:"valid"`
	Error   *ierrors.ErrorResponse `json:"error,omitempty"`
}

func report(w io.Writer, cfg Config, results []check.Result) error {
	if cfg.Format == "json" {
		enc := json.NewEncoder(w)
		for _, r := range results {
			line := jsonLine{Line: r.Line, IBAN: r.Masked, Country: r.Country.String(), Valid: r.Valid}
			if r.Err != nil {
				er := ierrors.FromIBAN(cfg.Field, r.Err)
				line.Error = &er
			}
			if err := enc.Encode(line); err != nil {
				return err
			}
		}
		return nil
	}

	for _, r := range results {
		var err error
		if r.Valid {
			_, err = fmt.Fprintf(w, "OK  %4d  %s\n", r.Line, r.Masked)
		} else {
			_, err = fmt.Fprintf(w, "ERR %4d  %s  %s\n", r.Line, r.Masked, r.Reason)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func printViolations(w io.Writer, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "ibancheck: invalid config: %s: %s\n", k, fields[k])
	}
}
