package check

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vortex-fintech/go-iban/country"
	"github.com/vortex-fintech/go-iban/iban"
	"github.com/vortex-fintech/go-iban/logger"
	"github.com/vortex-fintech/go-iban/metrics"
	"github.com/vortex-fintech/go-iban/timeutil"
)

var vectors = []struct {
	in     string
	valid  bool
	reason string
}{
	{"GB82 WEST 1234 5698 7654 32", true, metrics.OutcomeValid},
	{"DE89 3704 0044 0532 0130 00", true, metrics.OutcomeValid},
	{"GR16 0110 1250 0000 0001 2300 695", true, metrics.OutcomeValid},
	{"DE51 2131 1231 5532 1234 42", false, "invalid_checksum"},
	{"GB54 AAAA BBBB CCCC DDDD EE", false, "invalid_checksum"},
	{"IB", false, "too_short"},
	{"DD14 2004 1010 0505 0001 3M02 606", false, "unknown_country"},
	{"DE22 8472 162", false, "length_mismatch"},
	{"GB82-WEST", false, "not_an_iban"},
}

func TestCheck_Vectors(t *testing.T) {
	inputs := make([]string, len(vectors))
	for k, v := range vectors {
		inputs[k] = v.in
	}

	for _, workers := range []int{1, 3, 16} {
		c := New(Options{Workers: workers})
		results, err := c.Check(context.Background(), inputs)
		require.NoError(t, err)
		require.Len(t, results, len(vectors))

		for k, r := range results {
			v := vectors[k]
			assert.Equal(t, k+1, r.Line)
			assert.Equal(t, v.valid, r.Valid, v.in)
			assert.Equal(t, v.reason, r.Reason, v.in)
			if v.valid {
				assert.NoError(t, r.Err)
			} else {
				assert.Error(t, r.Err)
			}
		}
	}
}

func TestCheck_MasksAndReportsCountry(t *testing.T) {
	results, err := New(Options{}).Check(context.Background(), []string{
		"gb82 west 1234 5698 7654 32",
		"DD14 2004 1010 0505 0001 3M02 606",
	})
	require.NoError(t, err)

	assert.Equal(t, "GB82**************5432", results[0].Masked)
	assert.Equal(t, country.GB, results[0].Country)
	assert.Equal(t, country.Code("DD"), results[1].Country)
	assert.NotContains(t, results[1].Masked, "20041010")
	assert.ErrorIs(t, results[1].Err, iban.ErrUnknownCountry)
}

func TestCheckReader(t *testing.T) {
	src := strings.Join([]string{
		"# payees",
		"GB82 WEST 1234 5698 7654 32",
		"",
		"   ",
		"DE51 2131 1231 5532 1234 42",
		"  # indented comment",
		"NO93 8601 1117 947",
	}, "\n")

	results, err := New(Options{Workers: 2}).CheckReader(context.Background(), strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 2, results[0].Line)
	assert.True(t, results[0].Valid)
	assert.Equal(t, 5, results[1].Line)
	assert.Equal(t, "invalid_checksum", results[1].Reason)
	assert.Equal(t, 7, results[2].Line)
	assert.True(t, results[2].Valid)
}

func TestCheckReader_OverlongLine(t *testing.T) {
	src := "GB82 WEST 1234 5698 7654 32\n" +
		strings.Repeat("A", 70*1024) + "\n" +
		"NO93 8601 1117 947"

	results, err := New(Options{Workers: 2}).CheckReader(context.Background(), strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Valid)

	assert.Equal(t, 2, results[1].Line)
	assert.False(t, results[1].Valid)
	assert.ErrorIs(t, results[1].Err, iban.ErrWrongSize)
	assert.Equal(t, "wrong_iban_size", results[1].Reason)
	assert.Empty(t, results[1].Masked)

	assert.Equal(t, 3, results[2].Line)
	assert.True(t, results[2].Valid, "line after the overlong one is still checked")
}

func TestCheckReader_LineAtLimit(t *testing.T) {
	src := strings.Repeat(" ", maxLineSize-len("GB82WEST12345698765432")) + "GB82WEST12345698765432"

	results, err := New(Options{}).CheckReader(context.Background(), strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Valid)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestCheckReader_ReadError(t *testing.T) {
	_, err := New(Options{}).CheckReader(context.Background(), failingReader{})
	require.ErrorContains(t, err, "disk on fire")
}

func TestCheck_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := New(Options{Workers: 1}).Check(ctx, []string{"GB82 WEST 1234 5698 7654 32"})
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, results)
}

func TestCheck_Empty(t *testing.T) {
	results, err := New(Options{}).Check(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestCheck_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)

	clock := timeutil.NewStepClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Microsecond)
	c := New(Options{Workers: 4, Recorder: rec, Clock: clock})

	_, err = c.Check(context.Background(), []string{
		"GB82 WEST 1234 5698 7654 32",
		"GB54 AAAA BBBB CCCC DDDD EE",
		"ZZ00 1234",
		"GB82-WEST",
	})
	require.NoError(t, err)

	expected := `
# HELP iban_checks_total IBAN checks by country code and outcome.
# TYPE iban_checks_total counter
iban_checks_total{country="GB",outcome="invalid_checksum"} 1
iban_checks_total{country="GB",outcome="valid"} 1
iban_checks_total{country="none",outcome="not_an_iban"} 1
iban_checks_total{country="other",outcome="unknown_country"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "iban_checks_total"))
}

func TestCheck_LogsMaskedOnly(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := logger.NewWithCore("ibancheck", core)

	ctx := logger.ContextWithRunID(context.Background(), "run-1")
	_, err := New(Options{Logger: log}).Check(ctx, []string{"GB82 WEST 1234 5698 7654 32"})
	require.NoError(t, err)

	checked := logs.FilterMessage("iban checked").All()
	require.Len(t, checked, 1)
	fields := checked[0].ContextMap()
	assert.Equal(t, "GB82**************5432", fields["iban"])
	assert.Equal(t, "valid", fields["outcome"])
	assert.Equal(t, "run-1", fields["run_id"])

	batch := logs.FilterMessage("iban batch checked").All()
	require.Len(t, batch, 1)
	assert.EqualValues(t, 1, batch[0].ContextMap()["valid"])

	for _, e := range logs.All() {
		for _, v := range e.ContextMap() {
			if s, ok := v.(string); ok {
				assert.NotContains(t, s, "WEST1234")
			}
		}
	}
}

func TestSummary(t *testing.T) {
	s := Summary([]Result{
		{Valid: true, Reason: metrics.OutcomeValid},
		{Reason: "invalid_checksum"},
		{Reason: "invalid_checksum"},
		{Reason: "too_short"},
	})
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Valid)
	assert.Equal(t, map[string]int{"invalid_checksum": 2, "too_short": 1}, s.Invalid)
}
