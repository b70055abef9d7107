package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the session banner with the given version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	title := termenv.String(" ⏱  unixtime ").Foreground(p.Color("#818cf8")).Bold()
	ver := termenv.String("v" + strings.TrimSpace(version)).Foreground(p.Color("#c084fc"))
	hint := termenv.String("now · human <ts> · ts <date> · :log · quit").Faint()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", title, ver)
	fmt.Fprintln(w, hint)
	fmt.Fprintln(w)
}
