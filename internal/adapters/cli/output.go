package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

type Output struct {
	out          io.Writer
	errOut       io.Writer
	enableColors bool
}

func NewOutput() *Output {
	return &Output{
		out:          os.Stdout,
		errOut:       os.Stderr,
		enableColors: isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == "",
	}
}

// NewWriterOutput writes both streams to w without colors.
func NewWriterOutput(w io.Writer) *Output {
	return &Output{out: w, errOut: w}
}

func (o *Output) DisableColors() {
	o.enableColors = false
}

func (o *Output) Green(text string) string {
	return o.paint("32", text)
}

func (o *Output) Yellow(text string) string {
	return o.paint("33", text)
}

func (o *Output) Red(text string) string {
	return o.paint("31", text)
}

func (o *Output) Gray(text string) string {
	return o.paint("90", text)
}

func (o *Output) paint(code, text string) string {
	if !o.enableColors {
		return text
	}
	return "\033[" + code + "m" + text + "\033[0m"
}

func (o *Output) PrintHeader(msg string) {
	fmt.Fprintln(o.out, msg)
	fmt.Fprintln(o.out)
}

func (o *Output) PrintStep(msg string, args ...any) {
	fmt.Fprintf(o.out, "  "+msg+"\n", args...)
}

func (o *Output) PrintSuccess(msg string, args ...any) {
	fmt.Fprintf(o.out, "  "+o.Green("✓ ")+"%s\n", fmt.Sprintf(msg, args...))
}

func (o *Output) PrintWarning(msg string, args ...any) {
	fmt.Fprintf(o.out, "  "+o.Yellow("⚠ ")+"%s\n", fmt.Sprintf(msg, args...))
}

func (o *Output) PrintError(msg string, args ...any) {
	fmt.Fprintf(o.errOut, "  "+o.Red("✗ ")+"%s\n", fmt.Sprintf(msg, args...))
}

func (o *Output) PrintFile(path string) {
	fmt.Fprintf(o.out, "    %s\n", path)
}

func (o *Output) PrintDone(msg string) {
	fmt.Fprintln(o.out, msg)
}

// Writer is the stream reports and diffs are printed to.
func (o *Output) Writer() io.Writer {
	return o.out
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
