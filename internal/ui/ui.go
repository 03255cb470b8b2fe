// Package ui prints human-facing CLI status to stderr.
package ui

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/papapumpkin/constellate/internal/analysis"
	"github.com/papapumpkin/constellate/internal/aspect"
	"github.com/papapumpkin/constellate/internal/chart"
	"github.com/papapumpkin/constellate/internal/pattern"
)

// Printer writes styled status lines. Reports themselves go to stdout and
// never pass through a Printer.
type Printer struct {
	w io.Writer
}

// New returns a Printer on stderr.
func New() *Printer {
	return &Printer{w: os.Stderr}
}

// NewWithWriter returns a Printer on w.
func NewWithWriter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", styleDanger.Render("error:"), msg)
}

// Info prints a de-emphasized status line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, styleMuted.Render(msg))
}

// ChartValidateResult reports the validation of one chart file.
func (p *Printer) ChartValidateResult(file string, charts int, errs []chart.ValidationError) {
	if len(errs) == 0 {
		fmt.Fprintf(p.w, "%s — %d chart(s), no errors\n", styleSuccess.Render(fmt.Sprintf("%s %s", iconDone, file)), charts)
		return
	}
	fmt.Fprintf(p.w, "%s — %d error(s):\n", styleDanger.Render(fmt.Sprintf("%s %s", iconFailed, file)), len(errs))
	for _, e := range errs {
		fmt.Fprintf(p.w, "  %s %s\n", styleDanger.Render(iconBullet), e.Error())
	}
}

// SettingsValidateResult reports the validation of the aspect definitions
// and orb configuration.
func (p *Printer) SettingsValidateResult(errs []error) {
	if len(errs) == 0 {
		fmt.Fprintf(p.w, "%s — no errors\n", styleSuccess.Render(iconDone+" settings"))
		return
	}
	fmt.Fprintf(p.w, "%s — %d error(s):\n", styleDanger.Render(iconFailed+" settings"), len(errs))
	for _, e := range errs {
		fmt.Fprintf(p.w, "  %s %s\n", styleDanger.Render(iconBullet), e.Error())
	}
}

// Reload announces that a watched file changed and the run is repeated.
func (p *Printer) Reload(file string) {
	fmt.Fprintf(p.w, "%s %s\n", styleWarn.Render(iconReload+" changed"), file)
}

// Watching announces watch mode.
func (p *Printer) Watching(files int) {
	fmt.Fprintln(p.w, styleMuted.Render(fmt.Sprintf("watching %d file(s), ctrl-c to stop", files)))
}

// Summary prints a compact overview of a report. Observation counts are
// grouped by the configured aspect categories.
func (p *Printer) Summary(source string, r *analysis.Report, categories map[string][]string) {
	fmt.Fprintln(p.w, styleHeading.Render(source))
	for _, c := range r.Charts {
		fmt.Fprintf(p.w, "  %s %s %s\n", styleHeading.Render(iconChart), c.Chart, styleMuted.Render("("+string(c.Kind)+")"))
		p.line("aspects", countAspects(c.Observations, categories))
		p.patterns(c.Patterns)
		for _, s := range c.Stelliums {
			p.line("stellium", stelliumLabel(s))
		}
		if c.Dispositors != nil && len(c.Dispositors.Finals) > 0 {
			p.line("final dispositors", strings.Join(c.Dispositors.Finals, ", "))
		}
		if c.Dispositors != nil {
			for _, cyc := range c.Dispositors.Cycles {
				p.line("cycle", strings.Join(cyc, " → "))
			}
		}
	}
	for _, pa := range r.Pairs {
		fmt.Fprintf(p.w, "  %s %s × %s\n", styleHeading.Render(iconChart), pa.Charts[0], pa.Charts[1])
		p.line("aspects", countAspects(pa.Observations, categories))
		p.patterns(pa.Patterns)
		if len(pa.Overlays) > 0 {
			p.line("house overlays", fmt.Sprint(len(pa.Overlays)))
		}
	}
	if r.Global != nil {
		fmt.Fprintf(p.w, "  %s %s\n", styleHeading.Render(iconChart), strings.Join(r.Global.Charts, " × "))
		p.patterns(r.Global.Patterns)
	}
	for _, ta := range r.Transits {
		fmt.Fprintf(p.w, "  %s %s ← %s\n", styleHeading.Render(iconChart), ta.Chart, ta.Transit)
		p.line("aspects", countAspects(ta.Observations, categories))
		p.patterns(ta.Patterns)
	}
	if r.GlobalTransit != nil {
		fmt.Fprintf(p.w, "  %s %s\n", styleHeading.Render(iconChart), strings.Join(r.GlobalTransit.Charts, " × "))
		p.patterns(r.GlobalTransit.Patterns)
	}
}

func (p *Printer) line(label, value string) {
	fmt.Fprintf(p.w, "    %s %s\n", styleLabel.Render(label+":"), value)
}

func (p *Printer) patterns(ps []pattern.Pattern) {
	for _, pt := range ps {
		fmt.Fprintf(p.w, "    %s %s\n", stylePattern.Render(string(pt.Kind())), memberList(pt.Members()))
	}
}

func memberList(ps []chart.Placement) string {
	parts := make([]string, len(ps))
	for i, pl := range ps {
		parts[i] = pl.String()
	}
	return strings.Join(parts, ", ")
}

func stelliumLabel(s pattern.Stellium) string {
	where := fmt.Sprintf("house %d", s.House)
	if s.Sign != nil {
		where = s.Sign.String()
	}
	return fmt.Sprintf("%s, %s (%.1f°)", where, memberList(s.Points), s.DegreeSpan)
}

// countAspects renders "3 (major 2, minor 1)". Aspects outside every
// category are counted as "other".
func countAspects(obs []aspect.Observation, categories map[string][]string) string {
	if len(obs) == 0 {
		return "0"
	}
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	slices.Sort(names)

	counts := make(map[string]int)
	for _, o := range obs {
		cat := "other"
		for _, name := range names {
			if slices.Contains(categories[name], o.Aspect) {
				cat = name
				break
			}
		}
		counts[cat]++
	}

	var parts []string
	for _, name := range append(names, "other") {
		if n := counts[name]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", name, n))
		}
	}
	return fmt.Sprintf("%d (%s)", len(obs), strings.Join(parts, ", "))
}
