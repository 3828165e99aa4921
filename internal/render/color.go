// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"math"

	"github.com/pdiddy/notes-export/pkg/types"
)

// convertColor renders a color as a CSS hex string with an alpha channel,
// e.g. #ff0000ff.
func convertColor(c types.Color) string {
	return fmt.Sprintf("#%02x%02x%02x%02x",
		channel(c.Red), channel(c.Green), channel(c.Blue), channel(c.Alpha))
}

func channel(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return int(math.Floor(v * 255))
}

// convertAlign maps an alignment to its CSS text-align keyword.
func convertAlign(a types.Alignment) string {
	switch a {
	case types.AlignCentre:
		return "center"
	case types.AlignRight:
		return "right"
	case types.AlignJustify:
		return "justify"
	default:
		return "left"
	}
}
