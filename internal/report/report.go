// Package report compiles collector output into a Markdown document
// and persists it to a timestamped file.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JonasZeihe/NoctuaLight/internal/hardware"
)

// Selection flags the domains whose details the caller asked for.
type Selection map[hardware.Domain]bool

// Any reports whether at least one domain is selected.
func (s Selection) Any() bool {
	for _, on := range s {
		if on {
			return true
		}
	}
	return false
}

// Options controls the report shape beyond the per-domain selection.
type Options struct {
	// IncludeAll prepends an overview section built from every
	// collector's summary.
	IncludeAll bool
	// Detailed appends full details for every collector, regardless
	// of the selection.
	Detailed bool
}

// Report is a compiled document. The body is immutable once compiled
// and written to storage verbatim.
type Report struct {
	ID           string
	MachineLabel string
	GeneratedAt  time.Time
	Body         string
	// Domains lists the domains whose detail sections were included.
	Domains []hardware.Domain
}

const emptySelectionNotice = "\nNo components selected."

// Compiler assembles reports from a fixed collector set.
type Compiler struct {
	log      *zap.Logger
	parallel bool
}

func NewCompiler(log *zap.Logger, parallel bool) *Compiler {
	return &Compiler{log: log.Named("report"), parallel: parallel}
}

// section is one collector's contribution, gathered up front so the
// document can be assembled in fixed domain order regardless of how
// the probes are scheduled.
type section struct {
	domain  hardware.Domain
	summary string
	details string
	err     error
}

// Compile runs the needed collector calls and assembles the document.
// A classified probe failure becomes a domain-scoped failure notice in
// the body; only unclassified errors (programming defects) propagate.
func (c *Compiler) Compile(ctx context.Context, collectors []hardware.Collector, sel Selection, opts Options, machineLabel string) (*Report, error) {
	rep := &Report{
		ID:           uuid.NewString(),
		MachineLabel: machineLabel,
		GeneratedAt:  time.Now(),
	}

	sections, err := c.gather(ctx, collectors, sel, opts)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Hardware Report\n\n**Generated on:** %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05"))
	if machineLabel != "" {
		fmt.Fprintf(&b, "**PC Name:** %s\n", machineLabel)
	}

	if opts.IncludeAll {
		b.WriteString("# Hardware Overview\n\n")
		for _, s := range sections {
			fmt.Fprintf(&b, "## %s Information\n", strings.ToUpper(s.domain.DisplayName()))
			b.WriteString(s.summary)
			b.WriteString("\n---\n")
		}
	}

	switch {
	case opts.Detailed:
		for _, s := range sections {
			writeDetailSection(&b, s)
			rep.Domains = append(rep.Domains, s.domain)
		}
	case sel.Any():
		for _, s := range sections {
			if !sel[s.domain] {
				continue
			}
			writeDetailSection(&b, s)
			rep.Domains = append(rep.Domains, s.domain)
		}
	case !opts.IncludeAll:
		b.WriteString(emptySelectionNotice)
	}

	rep.Body = b.String()
	return rep, nil
}

func writeDetailSection(b *strings.Builder, s section) {
	fmt.Fprintf(b, "\n## Detailed %s Information\n", s.domain.DisplayName())
	b.WriteString(s.details)
	b.WriteString("\n---\n")
}

// gather collects summaries and details as the options require. The
// collectors are independent, so they may run concurrently; section
// order always follows the fixed domain order, not completion order.
// Every probe runs in its own goroutine so a hung OS query cannot hold
// the report past the context deadline.
func (c *Compiler) gather(ctx context.Context, collectors []hardware.Collector, sel Selection, opts Options) ([]section, error) {
	needsDetails := func(d hardware.Domain) bool {
		return opts.Detailed || sel[d]
	}

	probe := func(col hardware.Collector) <-chan section {
		ch := make(chan section, 1)
		go func() {
			s := section{domain: col.Domain()}
			if opts.IncludeAll {
				s.summary, s.err = c.summaryText(ctx, col)
			}
			if s.err == nil && needsDetails(s.domain) {
				s.details, s.err = c.detailsText(ctx, col)
			}
			ch <- s
		}()
		return ch
	}

	sections := make([]section, len(collectors))
	if c.parallel {
		pending := make([]<-chan section, len(collectors))
		for i, col := range collectors {
			pending[i] = probe(col)
		}
		for i, col := range collectors {
			sections[i] = c.await(ctx, col, pending[i])
		}
	} else {
		for i, col := range collectors {
			sections[i] = c.await(ctx, col, probe(col))
		}
	}

	for i := range sections {
		if sections[i].err != nil {
			return nil, sections[i].err
		}
	}
	return sections, nil
}

// await waits for one collector's section until the context deadline.
// A collector that misses it is abandoned and its domain rendered as a
// failure section, so one hung probe degrades instead of blocking the
// whole report.
func (c *Compiler) await(ctx context.Context, col hardware.Collector, ch <-chan section) section {
	// Prefer a finished section even when the deadline has already
	// passed.
	select {
	case s := <-ch:
		return s
	default:
	}

	select {
	case s := <-ch:
		return s
	case <-ctx.Done():
		d := col.Domain()
		c.log.Warn("collector deadline exceeded",
			zap.String("domain", string(d)), zap.Error(ctx.Err()))
		return section{
			domain:  d,
			summary: fmt.Sprintf("Failed to fetch %s summary.\n", d.DisplayName()),
			details: fmt.Sprintf("Failed to fetch %s details.\n", d.DisplayName()),
		}
	}
}

// summaryText converts a classified probe failure into the section
// body; the caller never sees it as an error.
func (c *Compiler) summaryText(ctx context.Context, col hardware.Collector) (string, error) {
	text, err := col.Summary(ctx)
	if err != nil {
		pe, ok := hardware.AsProbeError(err)
		if !ok {
			return "", fmt.Errorf("%s summary: %w", col.Domain(), err)
		}
		c.log.Warn("summary unavailable",
			zap.String("domain", string(pe.Domain)), zap.Error(pe))
		return fmt.Sprintf("Failed to fetch %s summary.\n", col.Domain().DisplayName()), nil
	}
	return text, nil
}

func (c *Compiler) detailsText(ctx context.Context, col hardware.Collector) (string, error) {
	text, err := col.Details(ctx)
	if err != nil {
		pe, ok := hardware.AsProbeError(err)
		if !ok {
			return "", fmt.Errorf("%s details: %w", col.Domain(), err)
		}
		c.log.Warn("details unavailable",
			zap.String("domain", string(pe.Domain)), zap.Error(pe))
		return fmt.Sprintf("Failed to fetch %s details.\n", col.Domain().DisplayName()), nil
	}
	return text, nil
}
