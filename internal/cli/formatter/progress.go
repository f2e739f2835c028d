package formatter

import (
	"fmt"
	"strings"
)

const (
	barFilled = "█"
	barEmpty  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45%. The fill turns
// from dim to yellow once generation is underway and to green once the
// run is past the halfway checkpoint, where the required plan has
// landed.
func RenderProgress(pct float64, width int) string {
	switch {
	case pct < 0:
		pct = 0
	case pct > 1:
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled)

	style := StyleGreen
	switch {
	case pct < 0.1:
		style = StyleDim
	case pct < 0.5:
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
