package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/aryannaik/lw-tagger/internal/tagger"
)

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func Success(msg string) string {
	return green("✓ ") + msg
}

func Failure(msg string) string {
	return red("✗ ") + msg
}

// FormatSummary renders the end-of-run report.
func FormatSummary(s tagger.Summary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s\n", bold("Run"), faint(s.RunID)))
	if s.FetchFailed {
		sb.WriteString(Failure("Could not fetch links; nothing was processed") + "\n")
	}
	if s.Interrupted {
		sb.WriteString(yellow("Interrupted before all links were processed") + "\n")
	}

	row := func(label string, n int, paint func(a ...interface{}) string) {
		sb.WriteString(fmt.Sprintf("  %-14s %s\n", faint(label), paint(humanize.Comma(int64(n)))))
	}
	row("Links", s.Total, bold)
	row("Updated", s.Updated, green)
	if s.WouldUpdate > 0 {
		row("Would update", s.WouldUpdate, cyan)
	}
	row("No suggestion", s.Unchanged, yellow)
	row("Skipped", s.Skipped, faint)
	row("Failed", s.Failed, red)

	sb.WriteString(fmt.Sprintf("  %-14s %s\n", faint("Took"), s.Elapsed.Round(time.Millisecond)))
	return sb.String()
}

// FormatTagList renders the approved vocabulary, one tag per line.
func FormatTagList(tags []string) string {
	var sb strings.Builder
	for _, t := range tags {
		sb.WriteString(fmt.Sprintf("  %s\n", cyan(t)))
	}
	sb.WriteString(faint(fmt.Sprintf("%s approved tags", humanize.Comma(int64(len(tags))))) + "\n")
	return sb.String()
}

// FormatStatus renders one service reachability line.
func FormatStatus(name, target string, err error) string {
	if err != nil {
		return Failure(fmt.Sprintf("%s %s: %v", bold(name), faint(target), err))
	}
	return Success(fmt.Sprintf("%s %s", bold(name), faint(target)))
}
