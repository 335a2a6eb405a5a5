package render

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/critters/components"
	"github.com/pthm-cable/critters/inspector"
)

// selectRadius is how far (in tiles) a click may land from a creature and still select it.
const selectRadius = 1.0

// selectAt selects the live creature nearest to world point (wx, wy).
func (v *Viewer) selectAt(wx, wy float64) {
	best := selectRadius
	v.hasSelected = false
	for _, c := range v.sim.Creatures() {
		d := math.Hypot(c.Pos.X-wx, c.Pos.Y-wy)
		if d < best {
			best = d
			v.selected = c.Entity
			v.hasSelected = true
		}
	}
}

// drawInspector shows the selected creature's type, vitals, personality
// and behaviour in a right-hand panel.
func (v *Viewer) drawInspector() {
	if !v.hasSelected {
		return
	}
	c, ok := v.sim.Creature(v.selected)
	if !ok || !c.Alive() {
		v.hasSelected = false
		return
	}
	ct, ok := v.sim.World.Types.Lookup(c.Org.TypeID)
	if !ok {
		return
	}

	w := v.widgets
	th := w.Theme
	x := int32(v.screenWidth) - panelWidth - th.Padding
	y := th.Padding
	height := int32(v.screenHeight) - 2*th.Padding

	w.DrawPanel(x, y, panelWidth, height)
	x += th.Padding
	y += th.Padding
	inner := int32(panelWidth) - 2*th.Padding

	rl.DrawText(ct.Name, x, y, 18, typeColor(ct.ID))
	y += 24
	y = w.DrawLabelValue(x, y, "Diet", ct.Diet.String())
	y = w.DrawLabelValue(x, y, "Habitat", ct.Habitat.String())
	if ct.IsHybrid {
		y = w.DrawLabelValue(x, y, "Hybrid", "yes")
	}
	y += 4

	y = w.DrawSectionHeader(x, y, "Vitals")
	y = w.DrawFields(x, y, inner, components.VitalsFieldDescriptors(), func(id string) float64 {
		return components.GetVitalsValue(c.Vit, id)
	})
	y += 4

	y = w.DrawSectionHeader(x, y, "Personality")
	y = w.DrawFields(x, y, inner, components.PersonalityFieldDescriptors(), func(id string) float64 {
		return components.GetPersonalityValue(&c.Org.Personality, id)
	})
	y += 4

	y = w.DrawSectionHeader(x, y, "Organism")
	y = v.drawReflected(x, y, inner, c.Org)
	y += 4

	y = w.DrawSectionHeader(x, y, "Behavior")
	v.drawReflected(x, y, inner, c.Beh)
}

// drawReflected renders a component through its inspect tags.
func (v *Viewer) drawReflected(x, y, width int32, component any) int32 {
	w := v.widgets
	for _, f := range inspector.ExtractFields(component) {
		if f.Widget == inspector.WidgetBar {
			y = w.DrawBar(x, y, f.Name, f.Value, 0, f.Max, "%.2f", width)
			continue
		}
		text := f.Text
		if len(text) > 18 {
			text = text[:8] + ".." + text[len(text)-6:]
		}
		y = w.DrawLabelValue(x, y, f.Name, text)
	}
	return y
}
