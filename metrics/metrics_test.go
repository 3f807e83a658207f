package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewRecorder(reg)
	require.NoError(t, err)

	r.Observe("GB", OutcomeValid, time.Microsecond)
	r.Observe("GB", OutcomeValid, time.Microsecond)
	r.Observe("DE", "invalid_checksum", time.Microsecond)
	r.Observe("", "not_an_iban", time.Microsecond)

	require.Equal(t, 2.0, testutil.ToFloat64(r.checks.WithLabelValues("GB", OutcomeValid)))
	require.Equal(t, 1.0, testutil.ToFloat64(r.checks.WithLabelValues("DE", "invalid_checksum")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.checks.WithLabelValues("none", "not_an_iban")))
	require.Equal(t, 3, testutil.CollectAndCount(r.checks))

	expected := `
# HELP iban_checks_total IBAN checks by country code and outcome.
# TYPE iban_checks_total counter
iban_checks_total{country="DE",outcome="invalid_checksum"} 1
iban_checks_total{country="GB",outcome="valid"} 2
iban_checks_total{country="none",outcome="not_an_iban"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "iban_checks_total"))
}

func TestRecorder_RegisterTwiceReuses(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewRecorder(reg)
	require.NoError(t, err)
	second, err := NewRecorder(reg)
	require.NoError(t, err)

	second.Observe("FR", OutcomeValid, time.Millisecond)
	require.Equal(t, 1.0, testutil.ToFloat64(first.checks.WithLabelValues("FR", OutcomeValid)))
}

func TestRecorder_Nil(t *testing.T) {
	var r *Recorder
	require.NotPanics(t, func() { r.Observe("GB", OutcomeValid, time.Second) })
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewRecorder(reg)
	require.NoError(t, err)
	r.Observe("NO", OutcomeValid, time.Microsecond)

	path := filepath.Join(t.TempDir(), "ibancheck.prom")
	require.NoError(t, WriteTextfile(path, reg))

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(body), `iban_checks_total{country="NO",outcome="valid"} 1`)
	require.Contains(t, string(body), "iban_check_duration_seconds_count 1")
}

func TestWriteTextfile_BadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"), prometheus.NewRegistry())
	require.ErrorContains(t, err, "write metrics textfile")
}
