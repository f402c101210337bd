package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ANSI colors used for message levels.
const (
	colorError   = "1"
	colorSuccess = "2"
	colorWarn    = "3"
	colorInfo    = "4"
)

type UI struct {
	Out          io.Writer
	Err          io.Writer
	Output       *termenv.Output
	ErrOutput    *termenv.Output
	ColorEnabled bool
}

func New(out io.Writer, err io.Writer, mode ColorMode, disableColor bool) *UI {
	output := termenv.NewOutput(out)
	errOutput := termenv.NewOutput(err)

	return &UI{
		Out:          out,
		Err:          err,
		Output:       output,
		ErrOutput:    errOutput,
		ColorEnabled: shouldEnableColor(output, mode, disableColor),
	}
}

func shouldEnableColor(output *termenv.Output, mode ColorMode, disableColor bool) bool {
	if disableColor {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return output.ColorProfile() != termenv.Ascii
	}
}

func (u *UI) Errorf(format string, args ...any) {
	u.print(u.Err, u.ErrOutput, colorError, format, args...)
}

func (u *UI) Warnf(format string, args ...any) {
	u.print(u.Err, u.ErrOutput, colorWarn, format, args...)
}

func (u *UI) Infof(format string, args ...any) {
	u.print(u.Out, u.Output, colorInfo, format, args...)
}

func (u *UI) Successf(format string, args ...any) {
	u.print(u.Out, u.Output, colorSuccess, format, args...)
}

func (u *UI) print(w io.Writer, output *termenv.Output, color string, format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if u.ColorEnabled && output != nil {
		msg = output.String(msg).Foreground(output.Color(color)).String()
	}
	fmt.Fprintln(w, msg)
}

func NormalizeColorMode(value string) ColorMode {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case string(ColorAlways):
		return ColorAlways
	case string(ColorNever):
		return ColorNever
	default:
		return ColorAuto
	}
}
