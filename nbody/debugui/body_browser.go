package debugui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/kamstrup/intmap"
	"github.com/plus3/orrery/nbody"
)

// BodyInfo is one row of the body browser.
type BodyInfo struct {
	Index    int
	Mass     float64
	Position [2]float64
	Speed    float64
}

// BodyBrowser lists the bodies of a space in a sortable, filterable table.
// Selecting a row makes it the subject of the BodyInspector; pinned bodies
// stay listed in the inspector regardless of selection.
type BodyBrowser struct {
	rows          []BodyInfo
	sortColumn    int
	sortAscending bool
	filterText    string
	selected      int
	pinned        *intmap.Map[int, struct{}]
	maxPerPage    int
	currentPage   int
}

func NewBodyBrowser(maxPerPage int) *BodyBrowser {
	return &BodyBrowser{
		sortAscending: true,
		selected:      -1,
		pinned:        intmap.New[int, struct{}](8),
		maxPerPage:    maxPerPage,
	}
}

func (bb *BodyBrowser) Render(space *nbody.Space) {
	if !imgui.BeginV("Body Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	bb.Refresh(space)

	imgui.InputTextWithHint("##search", "Filter by index...", &bb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		bb.filterText = ""
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("BodyTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Index")
		imgui.TableSetupColumn("Mass")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Speed")
		imgui.TableSetupColumn("Pin")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			bb.sortColumn = int(spec.ColumnIndex())
			bb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		rows := bb.Filtered()
		startIdx := bb.currentPage * bb.maxPerPage
		endIdx := min(startIdx+bb.maxPerPage, len(rows))

		for i := startIdx; i < endIdx; i++ {
			row := rows[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(strconv.Itoa(row.Index), bb.selected == row.Index, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				bb.selected = row.Index
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.3g", row.Mass))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("(%.1f, %.1f)", row.Position[0], row.Position[1]))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.4f", row.Speed))

			imgui.TableNextColumn()
			pinned := bb.IsPinned(row.Index)
			if imgui.Checkbox(fmt.Sprintf("##pin%d", row.Index), &pinned) {
				bb.SetPinned(row.Index, pinned)
			}
		}

		imgui.EndTable()
	}

	rows := bb.Filtered()
	if len(rows) > bb.maxPerPage {
		totalPages := (len(rows) + bb.maxPerPage - 1) / bb.maxPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d bodies)", bb.currentPage+1, totalPages, len(rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && bb.currentPage > 0 {
			bb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && bb.currentPage < totalPages-1 {
			bb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d bodies", len(rows)))
	}

	imgui.End()
}

// Refresh rebuilds the rows from space and re-sorts them.
func (bb *BodyBrowser) Refresh(space *nbody.Space) {
	bb.rows = bb.rows[:0]
	for i, body := range space.Bodies() {
		bb.rows = append(bb.rows, BodyInfo{
			Index:    i,
			Mass:     body.Mass,
			Position: body.Position,
			Speed:    body.Velocity.Len(),
		})
	}
	bb.sortRows()
}

// SortBy sets the sort column (0 index, 1 mass, 2 distance from origin, 3 speed).
func (bb *BodyBrowser) SortBy(column int, ascending bool) {
	bb.sortColumn = column
	bb.sortAscending = ascending
	bb.sortRows()
}

func (bb *BodyBrowser) sortRows() {
	sort.SliceStable(bb.rows, func(i, j int) bool {
		a, b := bb.rows[i], bb.rows[j]
		var less bool

		switch bb.sortColumn {
		case 1:
			less = a.Mass < b.Mass
		case 2:
			less = a.Position[0]*a.Position[0]+a.Position[1]*a.Position[1] <
				b.Position[0]*b.Position[0]+b.Position[1]*b.Position[1]
		case 3:
			less = a.Speed < b.Speed
		default:
			less = a.Index < b.Index
		}

		if !bb.sortAscending {
			return !less
		}
		return less
	})
}

// SetFilter sets the index filter text.
func (bb *BodyBrowser) SetFilter(text string) {
	bb.filterText = text
	bb.currentPage = 0
}

// Filtered returns the rows whose index contains the filter text.
func (bb *BodyBrowser) Filtered() []BodyInfo {
	filter := strings.TrimSpace(bb.filterText)
	if filter == "" {
		return bb.rows
	}

	filtered := make([]BodyInfo, 0, len(bb.rows))
	for _, row := range bb.rows {
		if strings.Contains(strconv.Itoa(row.Index), filter) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// Select makes body i the selected body; -1 clears the selection.
func (bb *BodyBrowser) Select(i int) {
	bb.selected = i
}

// Selected returns the selected body index, or -1.
func (bb *BodyBrowser) Selected() int {
	return bb.selected
}

func (bb *BodyBrowser) IsPinned(i int) bool {
	_, ok := bb.pinned.Get(i)
	return ok
}

func (bb *BodyBrowser) SetPinned(i int, pinned bool) {
	if pinned {
		bb.pinned.Put(i, struct{}{})
	} else {
		bb.pinned.Del(i)
	}
}

// Pinned returns the pinned body indices in ascending order.
func (bb *BodyBrowser) Pinned() []int {
	pinned := make([]int, 0, bb.pinned.Len())
	for _, row := range bb.rows {
		if bb.IsPinned(row.Index) {
			pinned = append(pinned, row.Index)
		}
	}
	sort.Ints(pinned)
	return pinned
}
