package currency

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/haesung5/stock-asset-manager/internal/clients/yahoo"
)

type stubPrimary struct {
	quote yahoo.Quote
	err   error
	calls int
}

func (s *stubPrimary) Quote(symbol string) (yahoo.Quote, error) {
	s.calls++
	return s.quote, s.err
}

type stubBackup struct {
	rate float64
	err  error
}

func (s *stubBackup) Latest(from, to string) (float64, error) {
	return s.rate, s.err
}

func TestResolve_Chain(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)
	upstreamDown := errors.New("connection refused")

	testCases := []struct {
		name    string
		primary PrimarySource
		backup  BackupSource
		want    Resolution
	}{
		{
			name:    "primary succeeds",
			primary: &stubPrimary{quote: yahoo.Quote{Symbol: "USDKRW=X", Price: 1387.654}},
			backup:  &stubBackup{rate: 1390},
			want:    Resolution{Rate: 1387.65, Status: StatusSuccess, Source: SourceYFinance},
		},
		{
			name:    "primary fails, backup succeeds",
			primary: &stubPrimary{err: upstreamDown},
			backup:  &stubBackup{rate: 1390.128},
			want:    Resolution{Rate: 1390.13, Status: StatusSuccess, Source: SourceBackup},
		},
		{
			name:    "primary empty series falls through to backup",
			primary: &stubPrimary{quote: yahoo.Quote{Symbol: "USDKRW=X", Price: 0}},
			backup:  &stubBackup{rate: 1390},
			want:    Resolution{Rate: 1390, Status: StatusSuccess, Source: SourceBackup},
		},
		{
			name:    "both fail, default returned",
			primary: &stubPrimary{err: upstreamDown},
			backup:  &stubBackup{err: upstreamDown},
			want:    Resolution{Rate: 1400.0, Status: StatusFallback, Source: SourceDefault},
		},
		{
			name:    "backup zero rate is not a success",
			primary: &stubPrimary{err: upstreamDown},
			backup:  &stubBackup{rate: 0},
			want:    Resolution{Rate: 1400.0, Status: StatusFallback, Source: SourceDefault},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResolver(tc.primary, tc.backup, nil, 1400.0, 0, log)
			assert.Equal(t, tc.want, r.Resolve())
		})
	}
}

func TestResolve_OverrideBypassesChain(t *testing.T) {
	log := zerolog.New(nil).Level(zerolog.Disabled)

	// Sources would both succeed, but the override wins without being consulted
	r := NewResolver(
		&stubPrimary{quote: yahoo.Quote{Price: 1387}},
		&stubBackup{rate: 1390},
		nil,
		1400.0,
		1450.0,
		log,
	)

	assert.Equal(t, Resolution{Rate: 1450.0, Status: StatusSuccess, Source: SourceOverride}, r.Resolve())
}
