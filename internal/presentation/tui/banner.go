package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Vestibule banner to w, colored for the detected terminal profile.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{` __   __       _   _ _           _     `, "#fbbf24"},
		{` \ \ / /__ ___| |_(_) |__  _  _| |___ `, "#f59e0b"},
		{`  \ V / -_|_-<|  _| | '_ \| || | / -_)`, "#f97316"},
		{`   \_/\___/__/ \__|_|_.__/ \_,_|_\___|`, "#ef4444"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("   "+version).Faint())
	}
	fmt.Fprintln(w)
}
