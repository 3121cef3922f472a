package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/gogpu/shaderprog"
)

// Banners printed before a driver log, as the GL tutorials print them.
const (
	bannerVertex   = "ERROR::SHADER::VERTEX::COMPILATION_FAILED"
	bannerFragment = "ERROR::SHADER::FRAGMENT::COMPILATION_FAILED"
	bannerLink     = "ERROR::SHADER::PROGRAM::LINKING_FAILED"
)

// reporter prints one result per program.
type reporter struct {
	out *termenv.Output
}

func newReporter(w io.Writer, mode string) *reporter {
	var opts []termenv.OutputOption
	switch mode {
	case "always":
		opts = append(opts, termenv.WithProfile(termenv.ANSI))
	case "never":
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &reporter{out: termenv.NewOutput(w, opts...)}
}

func (r *reporter) styled(s string, c termenv.Color) string {
	return r.out.String(s).Foreground(c).Bold().String()
}

// Success reports a linked program.
func (r *reporter) Success(name string) {
	fmt.Fprintf(r.out, "%s %s\n", r.styled("ok", termenv.ANSIGreen), name)
}

// Failure reports a failed build: the tutorial banner and the verbatim log
// for compile and link errors, the error text otherwise.
func (r *reporter) Failure(name string, err error) {
	banner, log := describe(err)
	if banner == "" {
		if name != "" {
			fmt.Fprintf(r.out, "%s %s: %v\n", r.styled("error", termenv.ANSIRed), name, err)
		} else {
			fmt.Fprintf(r.out, "%s %v\n", r.styled("error", termenv.ANSIRed), err)
		}
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", r.styled("FAIL", termenv.ANSIRed), name)
	fmt.Fprintln(r.out, r.styled(banner, termenv.ANSIYellow))
	if log = strings.TrimRight(log, "\n"); log != "" {
		fmt.Fprintln(r.out, log)
	}
}

func describe(err error) (banner, log string) {
	var ce *shaderprog.CompileError
	if errors.As(err, &ce) {
		if ce.Stage == shaderprog.StageFragment {
			return bannerFragment, ce.Log
		}
		return bannerVertex, ce.Log
	}
	var le *shaderprog.LinkError
	if errors.As(err, &le) {
		return bannerLink, le.Log
	}
	return "", ""
}
