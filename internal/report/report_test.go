package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JonasZeihe/NoctuaLight/internal/hardware"
)

// stubCollector stands in for a hardware domain in compiler tests. A
// non-zero delay sleeps without watching the context, like a hung OS
// query would.
type stubCollector struct {
	domain  hardware.Domain
	summary string
	details string
	err     error
	delay   time.Duration
}

func (s *stubCollector) Domain() hardware.Domain { return s.domain }

func (s *stubCollector) Summary(context.Context) (string, error) {
	time.Sleep(s.delay)
	if s.err != nil {
		return "", s.err
	}
	return s.summary, nil
}

func (s *stubCollector) Details(context.Context) (string, error) {
	time.Sleep(s.delay)
	if s.err != nil {
		return "", s.err
	}
	return s.details, nil
}

func stubCollectors() []hardware.Collector {
	collectors := make([]hardware.Collector, 0, len(hardware.Domains()))
	for _, d := range hardware.Domains() {
		collectors = append(collectors, &stubCollector{
			domain:  d,
			summary: fmt.Sprintf("%s summary\n", d),
			details: fmt.Sprintf("%s details\n", d),
		})
	}
	return collectors
}

func compile(t *testing.T, collectors []hardware.Collector, sel Selection, opts Options, label string) *Report {
	t.Helper()
	rep, err := NewCompiler(zap.NewNop(), false).Compile(context.Background(), collectors, sel, opts, label)
	require.NoError(t, err)
	return rep
}

func TestCompileHeader(t *testing.T) {
	rep := compile(t, stubCollectors(), nil, Options{}, "My PC")
	assert.True(t, strings.HasPrefix(rep.Body, "# Hardware Report\n\n**Generated on:** "))
	assert.Contains(t, rep.Body, "**PC Name:** My PC\n")
	assert.NotEmpty(t, rep.ID)

	rep = compile(t, stubCollectors(), nil, Options{}, "")
	assert.NotContains(t, rep.Body, "**PC Name:**")
}

func TestCompileEmptySelectionNotice(t *testing.T) {
	rep := compile(t, stubCollectors(), Selection{}, Options{}, "")

	header := fmt.Sprintf("# Hardware Report\n\n**Generated on:** %s\n",
		rep.GeneratedAt.Format("2006-01-02 15:04:05"))
	assert.Equal(t, header+"\nNo components selected.", rep.Body)
	assert.Empty(t, rep.Domains)
}

func TestCompileOverviewOrder(t *testing.T) {
	rep := compile(t, stubCollectors(), nil, Options{IncludeAll: true}, "")

	assert.Contains(t, rep.Body, "# Hardware Overview\n")
	// Overview alone: no detail sections, no empty-selection notice.
	assert.NotContains(t, rep.Body, "## Detailed")
	assert.NotContains(t, rep.Body, "No components selected.")

	// Overview headers are upper-cased display names.
	wantOrder := []string{
		"## SYSTEM Information",
		"## CPU Information",
		"## GPU Information",
		"## RAM Information",
		"## DISK Information",
		"## NETWORK Information",
		"## MOTHERBOARD Information",
		"## BIOS Information",
	}

	last := -1
	for _, header := range wantOrder {
		idx := strings.Index(rep.Body, header)
		require.GreaterOrEqual(t, idx, 0, "missing %q", header)
		assert.Greater(t, idx, last, "%q out of order", header)
		last = idx
	}
	assert.Equal(t, 8, strings.Count(rep.Body, "\n---\n"))
}

func TestCompileDetailedIgnoresSelection(t *testing.T) {
	sel := Selection{hardware.DomainCPU: true}
	rep := compile(t, stubCollectors(), sel, Options{Detailed: true}, "")

	assert.Equal(t, hardware.Domains(), rep.Domains)
	assert.Contains(t, rep.Body, "\n## Detailed CPU Information\ncpu details\n")
	assert.Contains(t, rep.Body, "\n## Detailed BIOS Information\nbios details\n")
}

func TestCompileSelectedOnly(t *testing.T) {
	sel := Selection{hardware.DomainCPU: true, hardware.DomainBIOS: true}
	rep := compile(t, stubCollectors(), sel, Options{}, "")

	assert.Equal(t, []hardware.Domain{hardware.DomainCPU, hardware.DomainBIOS}, rep.Domains)
	assert.Contains(t, rep.Body, "## Detailed CPU Information")
	assert.Contains(t, rep.Body, "## Detailed BIOS Information")
	assert.NotContains(t, rep.Body, "## Detailed RAM Information")
	assert.NotContains(t, rep.Body, "No components selected.")
}

func TestCompileRendersProbeFailureAsSectionBody(t *testing.T) {
	collectors := stubCollectors()
	collectors[1] = &stubCollector{
		domain: hardware.DomainCPU,
		err:    &hardware.ProbeError{Domain: hardware.DomainCPU, Kind: hardware.SourceUnavailable},
	}

	rep := compile(t, collectors, nil, Options{IncludeAll: true, Detailed: true}, "")
	assert.Contains(t, rep.Body, "## CPU Information\nFailed to fetch CPU summary.\n")
	assert.Contains(t, rep.Body, "## Detailed CPU Information\nFailed to fetch CPU details.\n")
}

func TestCompileDeadlineDegradesHungCollector(t *testing.T) {
	collectors := stubCollectors()
	collectors[1] = &stubCollector{
		domain:  hardware.DomainCPU,
		summary: "cpu summary\n",
		details: "cpu details\n",
		delay:   2 * time.Second,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	rep, err := NewCompiler(zap.NewNop(), true).
		Compile(ctx, collectors, nil, Options{IncludeAll: true, Detailed: true}, "")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second, "deadline must bound the report")

	// The hung domain degrades to its failure strings.
	assert.Contains(t, rep.Body, "## CPU Information\nFailed to fetch CPU summary.\n")
	assert.Contains(t, rep.Body, "## Detailed CPU Information\nFailed to fetch CPU details.\n")

	// Collectors that finished in time still render normally.
	assert.Contains(t, rep.Body, "## RAM Information\nram summary\n")
	assert.Contains(t, rep.Body, "## Detailed BIOS Information\nbios details\n")
}

func TestCompilePropagatesUnclassifiedError(t *testing.T) {
	collectors := stubCollectors()
	boom := errors.New("nil pointer somewhere")
	collectors[3] = &stubCollector{domain: hardware.DomainRAM, err: boom}

	_, err := NewCompiler(zap.NewNop(), false).
		Compile(context.Background(), collectors, nil, Options{Detailed: true}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestCompileParallelMatchesSequential(t *testing.T) {
	sel := Selection{hardware.DomainDisk: true}
	opts := Options{IncludeAll: true}

	seq := compile(t, stubCollectors(), sel, opts, "pc")
	par, err := NewCompiler(zap.NewNop(), true).
		Compile(context.Background(), stubCollectors(), sel, opts, "pc")
	require.NoError(t, err)

	// Timestamps differ; everything after the header must not.
	trim := func(body string) string {
		_, rest, _ := strings.Cut(body, "**PC Name:** pc\n")
		return rest
	}
	assert.Equal(t, trim(seq.Body), trim(par.Body))
}
