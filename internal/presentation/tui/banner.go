package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`        _             _                 _     _ `, "#818cf8"},
	{`   __ _| |_  _ _ __  | |_  __ _ _ _ ___(_)__| |`, "#a78bfa"},
	{`  / _' | | || | '_ \ | ' \/ _' | '_| |_| / _' |`, "#c084fc"},
	{`  \__, |_|\_, | .__/ |_||_\__, |_| |_| |_\__,_|`, "#e879f9"},
	{`  |___/   |__/|_|         |___/                 `, "#f472b6"},
}

// PrintBanner writes the glyphgrid banner to w.
func PrintBanner(w io.Writer, profile termenv.Profile) {
	out := termenv.NewOutput(w, termenv.WithProfile(profile))
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(profile.Color(line.color)))
	}
	fmt.Fprintln(w)
}
