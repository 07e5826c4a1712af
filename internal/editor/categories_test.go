package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-layout-editor/internal/model"
)

func TestAddCategory(t *testing.T) {
	cats, c, err := AddCategory(&seqIDs{}, model.DefaultCategories(), model.SeatCategory{Name: " Balcony ", Color: "#123abc", Price: 75})
	require.NoError(t, err)
	assert.Equal(t, "id-1", c.ID)
	assert.Equal(t, "Balcony", c.Name)
	assert.Len(t, cats, 4)

	_, _, err = AddCategory(&seqIDs{}, cats, model.SeatCategory{ID: "vip", Name: "VIP 2", Color: "#000000"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, _, err = AddCategory(&seqIDs{}, cats, model.SeatCategory{Name: "Bad", Color: "red"})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestUpdateCategory(t *testing.T) {
	cats, err := UpdateCategory(model.DefaultCategories(), model.SeatCategory{ID: "vip", Name: "VIP", Color: "#FFFFFF", Price: 120})
	require.NoError(t, err)
	c, ok := model.FindCategory(cats, "vip")
	require.True(t, ok)
	assert.Equal(t, 120.0, c.Price)

	_, err = UpdateCategory(cats, model.SeatCategory{ID: "nope", Name: "x", Color: "#FFFFFF"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = UpdateCategory(cats, model.SeatCategory{ID: "vip", Name: "VIP", Color: "#FFFFFF", Price: -1})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestDeleteCategory_NonCascading(t *testing.T) {
	items := []model.LayoutItem{
		seat("s1", "vip", 0, 0),
		seat("s2", "vip", 40, 0),
		seat("s3", "vip", 80, 0),
		seat("s4", "standard", 120, 0),
	}
	before := model.CloneItems(items)

	cats, warn, err := DeleteCategory(model.DefaultCategories(), items, "vip")
	require.NoError(t, err)
	require.NotNil(t, warn)
	assert.Equal(t, WarnDanglingCategory, warn.Code)
	assert.Equal(t, 3, warn.Count)
	assert.Len(t, cats, 2)

	assert.Equal(t, before, items)
	assert.Equal(t, model.FallbackColor, model.ItemColor(items[0], cats))
}

func TestDeleteCategory_Unreferenced(t *testing.T) {
	cats, warn, err := DeleteCategory(model.DefaultCategories(), nil, "premium")
	require.NoError(t, err)
	assert.Nil(t, warn)
	assert.Len(t, cats, 2)

	_, _, err = DeleteCategory(cats, nil, "premium")
	assert.ErrorIs(t, err, model.ErrValidation)
}
