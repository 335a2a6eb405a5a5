// Package render draws a running simulation with raylib and handles viewer input.
package render

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/critters/components"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	BarFillLow    rl.Color
	BarFillMedium rl.Color
	BarFillHigh   rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillLow:     rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium:  rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:    rl.Color{R: 100, G: 200, B: 100, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// Widgets draws panels, labels and bars with a consistent theme.
type Widgets struct {
	Theme Theme
}

// NewWidgets creates widgets with the default theme.
func NewWidgets() *Widgets {
	return &Widgets{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (w *Widgets) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, w.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, w.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (w *Widgets) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, w.Theme.HeaderFontSize, w.Theme.SectionHeader)
	return y + w.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (w *Widgets) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, w.Theme.FontSize, w.Theme.LabelColor)
	rl.DrawText(value, x+w.Theme.LabelWidth, y, w.Theme.FontSize, w.Theme.ValueColor)
	return y + w.Theme.LineHeight
}

// DrawBar draws a progress bar for a value in [min, max], coloured by how full it is.
func (w *Widgets) DrawBar(x, y int32, label string, value, minVal, maxVal float64, format string, width int32) int32 {
	ratio := float32(0)
	if maxVal > minVal {
		ratio = float32((value - minVal) / (maxVal - minVal))
	}
	ratio = min(max(ratio, 0), 1)

	barX := x + w.Theme.LabelWidth
	barWidth := width - w.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, w.Theme.FontSize, w.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, w.Theme.BarHeight, w.Theme.BarBg)

	barColor := w.Theme.BarFillHigh
	if ratio < 0.3 {
		barColor = w.Theme.BarFillLow
	} else if ratio < 0.6 {
		barColor = w.Theme.BarFillMedium
	}
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*ratio), w.Theme.BarHeight, barColor)

	rl.DrawText(fmt.Sprintf(format, value), barX+barWidth+5, y, w.Theme.FontSize, w.Theme.ValueColor)

	return y + w.Theme.LineHeight + 2
}

// DrawFields renders descriptor-driven fields: bars for bounded values,
// text for the rest. Zero values are skipped unless the field asks otherwise.
func (w *Widgets) DrawFields(x, y, width int32, fields []components.FieldDescriptor, get func(id string) float64) int32 {
	for _, f := range fields {
		v := get(f.ID)
		if v == 0 && !f.ShowWhenZero {
			continue
		}
		if f.IsBar {
			y = w.DrawBar(x, y, f.Label, v, f.Min, f.Max, f.Format, width)
		} else {
			y = w.DrawLabelValue(x, y, f.Label, fmt.Sprintf(f.Format, v))
		}
	}
	return y
}
