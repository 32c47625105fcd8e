package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// newConsoleHandler renders human-oriented lines. Colour is enabled only when
// w is a terminal; source locations are kept for debug output.
func newConsoleHandler(w io.Writer, lvl slog.Leveler, addSource bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		AddSource:  addSource,
		NoColor:    !isTerminal(w),
		TimeFormat: time.TimeOnly,
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
