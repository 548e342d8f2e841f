package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var bannerColor = color.New(color.FgHiMagenta, color.Bold)

// PrintBanner writes the ASCII art banner to w, in magenta when colors are on.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, bannerColor.Sprint(` _         _       _           _       _
| |__   __| |_ __ | |__   __ _| |_ ___| |__
| '_ \ / _`+"`"+` | '__|| '_ \ / _`+"`"+` | __/ __| '_ \
| | | | (_| | |   | |_) | (_| | || (__| | | |
|_| |_|\__,_|_|   |_.__/ \__,_|\__\___|_| |_|
`))
	fmt.Fprintln(w)
}
