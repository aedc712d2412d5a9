package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/orrery/nbody"
)

type BodyInspector struct {
	selected int
}

func NewBodyInspector() *BodyInspector {
	return &BodyInspector{selected: -1}
}

func (bi *BodyInspector) Render(space *nbody.Space, view *nbody.SpaceView, selected int, pinned []int) {
	if !imgui.BeginV("Body Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	bi.selected = selected

	if bi.selected < 0 || bi.selected >= space.Len() {
		imgui.Text("No body selected")
	} else if imgui.TreeNodeStr(fmt.Sprintf("Body %d", bi.selected)) {
		bi.renderBody(space, view, bi.selected)
		imgui.TreePop()
	}

	if len(pinned) > 0 {
		imgui.Separator()
		for _, i := range pinned {
			if i >= space.Len() || i == bi.selected {
				continue
			}
			if imgui.TreeNodeStr(fmt.Sprintf("Pinned %d", i)) {
				bi.renderBody(space, view, i)
				imgui.TreePop()
			}
		}
	}

	imgui.End()
}

func (bi *BodyInspector) renderBody(space *nbody.Space, view *nbody.SpaceView, i int) {
	body := space.Body(i)
	force := space.Force(i)

	imgui.Text(fmt.Sprintf("Mass: %g", body.Mass))
	imgui.Text(fmt.Sprintf("Position: (%.4f, %.4f)", body.Position[0], body.Position[1]))
	imgui.Text(fmt.Sprintf("Velocity: (%.4f, %.4f)", body.Velocity[0], body.Velocity[1]))
	imgui.Text(fmt.Sprintf("Force: (%.6f, %.6f)", force[0], force[1]))
	imgui.Text(fmt.Sprintf("Kinetic Energy: %.6g", body.KineticEnergy()))

	if view == nil || i >= view.Len() {
		return
	}

	center := view.Center()
	rel := body.Position.Sub(center)
	imgui.Text(fmt.Sprintf("Distance to Barycenter: %.4f", rel.Len()))

	track := view.Tracks()[i]
	imgui.BulletText(fmt.Sprintf("Trail: %d / %d (%d recorded)", track.Len(), track.Cap(), track.Total()))

	color := view.Instances()[i].Color
	imgui.BulletText(fmt.Sprintf("Color: %.2f %.2f %.2f", color[0], color[1], color[2]))
}
