package cli

import (
	"fmt"
	"io"
	"time"
)

type cliOutputWithColors interface {
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
}

type BuildIssue struct {
	Source  string
	Message string
	Details []string
}

// BuildReport summarizes one batch conversion.
type BuildReport struct {
	colors    cliOutputWithColors
	startTime time.Time
	fileCount int
	generated []string
	skipped   []string
	warnings  []BuildIssue
	errors    []BuildIssue
	outputDir string
}

func NewBuildReport(colors cliOutputWithColors, outputDir string) *BuildReport {
	return &BuildReport{
		colors:    colors,
		startTime: time.Now(),
		outputDir: outputDir,
	}
}

func (r *BuildReport) SetFileCount(count int) {
	r.fileCount = count
}

func (r *BuildReport) AddGenerated(outputPath string) {
	r.generated = append(r.generated, outputPath)
}

func (r *BuildReport) AddSkipped(source string) {
	r.skipped = append(r.skipped, source)
}

func (r *BuildReport) AddWarning(source, message string, details []string) {
	r.warnings = append(r.warnings, BuildIssue{Source: source, Message: message, Details: details})
}

func (r *BuildReport) AddError(source, message string, details []string) {
	r.errors = append(r.errors, BuildIssue{Source: source, Message: message, Details: details})
}

func (r *BuildReport) HasFailures() bool {
	return len(r.errors) > 0
}

func (r *BuildReport) Render(w io.Writer) {
	duration := time.Since(r.startTime)

	fmt.Fprintf(w, "  "+r.colors.Green("✓ ")+"%d svg files found\n", r.fileCount)
	if len(r.generated) > 0 {
		fmt.Fprintf(w, "  "+r.colors.Green("✓ ")+"%d components generated\n", len(r.generated))
	}
	if len(r.skipped) > 0 {
		fmt.Fprintf(w, "  "+r.colors.Gray("- ")+"%d locked files skipped\n", len(r.skipped))
	}

	if len(r.warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  "+r.colors.Yellow("⚠ ")+"Warnings (%d):\n", len(r.warnings))
		r.renderIssues(w, r.warnings, r.colors.Yellow("⚠"))
	}

	if len(r.errors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  "+r.colors.Red("✗ ")+"Errors (%d):\n", len(r.errors))
		r.renderIssues(w, r.errors, r.colors.Red("✗"))
	}

	fmt.Fprintln(w)
	if len(r.errors) > 0 {
		fmt.Fprintf(w, "  %s\n", r.colors.Red(fmt.Sprintf("Build finished with %d failures in %s", len(r.errors), formatDuration(duration))))
	} else {
		fmt.Fprintf(w, "  "+r.colors.Green("✓ ")+"Build complete in %s\n", formatDuration(duration))
	}

	if r.outputDir != "" {
		fmt.Fprintf(w, "\n  %s\n", r.colors.Gray("Output: "+r.outputDir))
	}
}

func (r *BuildReport) renderIssues(w io.Writer, issues []BuildIssue, mark string) {
	for _, issue := range issues {
		fmt.Fprintf(w, "  %s %s\n", mark, issue.Source)
		fmt.Fprintf(w, "    %s\n", issue.Message)

		for _, detail := range deduplicateStrings(issue.Details) {
			fmt.Fprintf(w, "      • %s\n", detail)
		}
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", float64(d)/float64(time.Second))
}

func deduplicateStrings(items []string) []string {
	if len(items) <= 1 {
		return items
	}

	seen := make(map[string]int)
	order := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] == 0 {
			order = append(order, item)
		}
		seen[item]++
	}

	result := make([]string, 0, len(order))
	for _, item := range order {
		if count := seen[item]; count > 1 {
			result = append(result, fmt.Sprintf("%s (%d occurrences)", item, count))
		} else {
			result = append(result, item)
		}
	}
	return result
}
