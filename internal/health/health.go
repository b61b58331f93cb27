// Package health runs the environment checks behind 'appwatch doctor'.
package health

import (
	"fmt"
	"strings"

	"github.com/appwatch/appwatch/internal/config"
	"github.com/appwatch/appwatch/internal/message"
	"github.com/appwatch/appwatch/internal/notify"
	"github.com/appwatch/appwatch/internal/pattern"
	"github.com/appwatch/appwatch/internal/process"
	"github.com/charmbracelet/lipgloss"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Optional checks are reported but do not fail the report
	Optional bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Options selects what RunHealthChecks inspects
type Options struct {
	Config   *config.Configuration
	Backends []notify.Backend
	// ConfigFiles are the files the configuration was loaded from
	ConfigFiles []string
}

// RunHealthChecks runs all health checks and returns a report
func RunHealthChecks(opts Options) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0),
		Passed: true,
	}

	report.add(CheckProcessTable(opts.Config.ProcRoot))
	report.add(CheckPatterns(opts.Config.Apps, opts.Config.Regex))
	for _, b := range opts.Backends {
		report.add(CheckBackend(b))
	}
	report.add(CheckSelection(opts.Config.Backend, opts.Backends))
	report.add(CheckTemplate("title", opts.Config.Title))
	report.add(CheckTemplate("message", opts.Config.Message))
	for _, path := range opts.ConfigFiles {
		report.add(CheckConfigFile(path))
	}

	return report
}

func (r *HealthReport) add(check CheckResult) {
	r.Checks = append(r.Checks, check)
	if !check.Passed && !check.Optional {
		r.Passed = false
	}
}

// CheckProcessTable checks that the proc filesystem lists processes
func CheckProcessTable(mountPoint string) CheckResult {
	name := "Process table"
	reader, err := process.NewReader(mountPoint)
	if err != nil {
		return CheckResult{Name: name, Message: err.Error()}
	}
	pids := reader.ListPIDs()
	if len(pids) == 0 {
		return CheckResult{Name: name, Message: fmt.Sprintf("no processes visible under %s", mountPoint)}
	}
	return CheckResult{
		Name:    name,
		Passed:  true,
		Message: fmt.Sprintf("%d processes visible under %s", len(pids), mountPoint),
	}
}

// CheckPatterns checks that the configured apps compile to at least one pattern
func CheckPatterns(apps []string, regex bool) CheckResult {
	name := "Patterns"
	set, err := pattern.Parse(apps, regex)
	if err != nil {
		return CheckResult{Name: name, Message: err.Error()}
	}
	if len(set) == 0 {
		return CheckResult{Name: name, Message: "no app patterns configured (use --apps or set apps in the config file)"}
	}
	return CheckResult{Name: name, Passed: true, Message: set.String()}
}

// CheckBackend reports whether a notification backend can be used here.
// Missing tools are expected on most systems, so the check is optional.
func CheckBackend(b notify.Backend) CheckResult {
	name := "Backend " + b.Name()
	if b.Available() {
		return CheckResult{Name: name, Passed: true, Optional: true, Message: "available"}
	}
	return CheckResult{Name: name, Optional: true, Message: "not available (tool missing or no display)"}
}

// CheckSelection checks that the preferred backend resolves
func CheckSelection(preferred string, backends []notify.Backend) CheckResult {
	name := "Selected backend"
	b, err := notify.Select(preferred, backends)
	if err != nil {
		return CheckResult{Name: name, Message: err.Error()}
	}
	return CheckResult{Name: name, Passed: true, Message: b.Name()}
}

// CheckTemplate warns about placeholders that always render empty
func CheckTemplate(field, tpl string) CheckResult {
	name := "Template " + field
	var unknown []string
	for _, p := range message.Placeholders(tpl) {
		if !message.Known(p) {
			unknown = append(unknown, "{"+p+"}")
		}
	}
	if len(unknown) > 0 {
		return CheckResult{
			Name:     name,
			Optional: true,
			Message:  fmt.Sprintf("unknown placeholders render empty: %s", strings.Join(unknown, ", ")),
		}
	}
	return CheckResult{Name: name, Passed: true, Message: "ok"}
}

// CheckConfigFile warns about keys appwatch ignores
func CheckConfigFile(path string) CheckResult {
	name := "Config " + path
	unknown, err := config.UnknownKeys(path)
	if err != nil {
		return CheckResult{Name: name, Message: err.Error()}
	}
	if len(unknown) > 0 {
		return CheckResult{
			Name:     name,
			Optional: true,
			Message:  fmt.Sprintf("unknown keys ignored: %s", strings.Join(unknown, ", ")),
		}
	}
	return CheckResult{Name: name, Passed: true, Message: "ok"}
}

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	nameStyle = lipgloss.NewStyle().Bold(true)
)

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var b strings.Builder

	for _, check := range report.Checks {
		var mark string
		switch {
		case check.Passed:
			mark = passStyle.Render("✓")
		case check.Optional:
			mark = warnStyle.Render("!")
		default:
			mark = failStyle.Render("✗")
		}
		fmt.Fprintf(&b, "%s %s: %s\n", mark, nameStyle.Render(check.Name), check.Message)
	}

	return b.String()
}
