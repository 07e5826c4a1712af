package editor

import (
	"fmt"

	"github.com/iliyamo/venue-layout-editor/internal/model"
)

// seqIDs hands out id-1, id-2, ... so tests can predict ids.
type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// listIDs replays a fixed list of ids, then falls back to a sequence.
type listIDs struct {
	ids []string
	seq seqIDs
}

func (g *listIDs) NewID() string {
	if len(g.ids) > 0 {
		id := g.ids[0]
		g.ids = g.ids[1:]
		return id
	}
	return g.seq.NewID()
}

func box(id string, x, y, w, h float64) model.LayoutItem {
	return model.LayoutItem{ID: id, Type: model.ItemBooth, X: x, Y: y, W: w, H: h}
}

func seat(id, category string, x, y float64) model.LayoutItem {
	return model.LayoutItem{ID: id, Type: model.ItemSeat, X: x, Y: y, W: 30, H: 30, CategoryID: category}
}

func ids(items []model.LayoutItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func xs(items []model.LayoutItem) []float64 {
	out := make([]float64, len(items))
	for i, it := range items {
		out[i] = it.X
	}
	return out
}
