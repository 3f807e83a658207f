package main

import (
	"runtime"
	"strings"

	"gopkg.in/urfave/cli.v1"
)

// Config is read from IBANCHECK_* variables; flags override them.
type Config struct {
	Env         string `validate:"oneof=development debug production"`
	Workers     int    `validate:"min=1,max=256"`
	Format      string `validate:"oneof=text json"`
	MetricsFile string `validate:"omitempty,max=4096"`
	Field       string `validate:"required,max=64"`
}

var (
	envFlag = cli.StringFlag{
		Name:   "env",
		Value:  "production",
		Usage:  "logging preset: development, debug or production",
		EnvVar: "IBANCHECK_ENV",
	}
	workersFlag = cli.IntFlag{
		Name:   "workers",
		Value:  runtime.GOMAXPROCS(0),
		Usage:  "concurrent checks",
		EnvVar: "IBANCHECK_WORKERS",
	}
	formatFlag = cli.StringFlag{
		Name:   "format",
		Value:  "text",
		Usage:  "output format: text or json",
		EnvVar: "IBANCHECK_FORMAT",
	}
	metricsFileFlag = cli.StringFlag{
		Name:   "metrics-file",
		Usage:  "write Prometheus metrics to this file when done",
		EnvVar: "IBANCHECK_METRICS_FILE",
	}
	fieldFlag = cli.StringFlag{
		Name:   "field",
		Value:  "iban",
		Usage:  "field name reported in json errors",
		EnvVar: "IBANCHECK_FIELD",
	}

	configFlags = []cli.Flag{
		envFlag,
		workersFlag,
		formatFlag,
		metricsFileFlag,
		fieldFlag,
	}
)

func configFromContext(c *cli.Context) Config {
	return Config{
		Env:         strings.ToLower(strings.TrimSpace(c.String(envFlag.Name))),
		Workers:     c.Int(workersFlag.Name),
		Format:      strings.ToLower(strings.TrimSpace(c.String(formatFlag.Name))),
		MetricsFile: strings.TrimSpace(c.String(metricsFileFlag.Name)),
		Field:       strings.TrimSpace(c.String(fieldFlag.Name)),
	}
}
