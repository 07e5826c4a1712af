package editor

import "github.com/iliyamo/venue-layout-editor/internal/model"

// Tool is the active editing tool.  It decides where pointer events go.
type Tool string

const (
	ToolSelect   Tool = "select"
	ToolSeat     Tool = "seat"
	ToolBulkSeat Tool = "bulk-seat"
	ToolTable    Tool = "table"
	ToolBooth    Tool = "booth"
	ToolStage    Tool = "stage"
	ToolWashroom Tool = "washroom"
	ToolScreen   Tool = "screen"
	ToolEntry    Tool = "entry"
	ToolExit     Tool = "exit"
)

var placementTools = map[Tool]model.ItemType{
	ToolSeat:     model.ItemSeat,
	ToolTable:    model.ItemTable,
	ToolBooth:    model.ItemBooth,
	ToolStage:    model.ItemStage,
	ToolWashroom: model.ItemWashroom,
	ToolScreen:   model.ItemScreen,
	ToolEntry:    model.ItemEntry,
	ToolExit:     model.ItemExit,
}

// Valid reports whether t is a known tool.
func (t Tool) Valid() bool {
	if t == ToolSelect || t == ToolBulkSeat {
		return true
	}
	_, ok := placementTools[t]
	return ok
}

// ItemType returns the item type placed by a single-item placement tool.
func (t Tool) ItemType() (model.ItemType, bool) {
	typ, ok := placementTools[t]
	return typ, ok
}
