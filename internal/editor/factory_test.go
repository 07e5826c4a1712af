package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/venue-layout-editor/internal/geometry"
	"github.com/iliyamo/venue-layout-editor/internal/model"
)

func TestNewItem_Seat(t *testing.T) {
	existing := []model.LayoutItem{seat("a", "vip", 0, 0), seat("b", "vip", 40, 0), box("c", 0, 100, 100, 60)}
	it := NewItem(&seqIDs{}, model.ItemSeat, geometry.Point{X: 40, Y: 60}, CreateOptions{
		Existing:   existing,
		Categories: model.DefaultCategories(),
	})

	assert.Equal(t, "id-1", it.ID)
	assert.Equal(t, model.ItemSeat, it.Type)
	assert.Equal(t, "S3", it.Label)
	assert.Equal(t, "standard", it.CategoryID)
	assert.Equal(t, 40.0, it.X)
	assert.Equal(t, 60.0, it.Y)
	assert.Equal(t, 30.0, it.W)
	assert.Equal(t, 30.0, it.H)
	assert.Zero(t, it.Rotation)
}

func TestNewItem_SeatCategoryPreference(t *testing.T) {
	opts := CreateOptions{Categories: model.DefaultCategories(), CategoryID: "premium"}
	assert.Equal(t, "premium", NewItem(&seqIDs{}, model.ItemSeat, geometry.Point{}, opts).CategoryID)

	assert.Empty(t, NewItem(&seqIDs{}, model.ItemSeat, geometry.Point{}, CreateOptions{}).CategoryID)
}

func TestNewItem_Table(t *testing.T) {
	it := NewItem(&seqIDs{}, model.ItemTable, geometry.Point{}, CreateOptions{})
	assert.Equal(t, "T1", it.Label)
	assert.Equal(t, model.ShapeRect, it.Shape)
	assert.Equal(t, 4, it.TableSeats)
	assert.Equal(t, 120.0, it.W)
	assert.Equal(t, 80.0, it.H)
}

func TestNewItem_OtherTypesUseDisplayName(t *testing.T) {
	for _, typ := range []model.ItemType{model.ItemBooth, model.ItemStage, model.ItemScreen, model.ItemWashroom, model.ItemEntry, model.ItemExit} {
		it := NewItem(&seqIDs{}, typ, geometry.Point{}, CreateOptions{})
		assert.Equal(t, typ.DisplayName(), it.Label)
		assert.Equal(t, 100.0, it.W)
		assert.Equal(t, 60.0, it.H)
	}
}

func TestNewItem_SkipsTakenIDs(t *testing.T) {
	gen := &listIDs{ids: []string{"a", "", "fresh"}}
	it := NewItem(gen, model.ItemSeat, geometry.Point{}, CreateOptions{Existing: []model.LayoutItem{seat("a", "", 0, 0)}})
	assert.Equal(t, "fresh", it.ID)
}
