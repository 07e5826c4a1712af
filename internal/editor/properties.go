package editor

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/iliyamo/venue-layout-editor/internal/model"
)

// Field names an editable item property.
type Field string

const (
	FieldLabel      Field = "label"
	FieldType       Field = "type"
	FieldCategory   Field = "categoryId"
	FieldShape      Field = "shape"
	FieldTableSeats Field = "tableSeats"
	FieldX          Field = "x"
	FieldY          Field = "y"
	FieldW          Field = "w"
	FieldH          Field = "h"
	FieldRotation   Field = "rotation"
)

// PropertyChange sets Field to Value on the selection.  Value is a string
// for text fields and a number for numeric ones.
type PropertyChange struct {
	Field Field `json:"field"`
	Value any   `json:"value"`
}

// ApplyProperty applies one property change to the selected items.
//
// With a single selected item the value is written straight through.
// With several, x/y are applied as an offset relative to the first
// selected item (collection order), w/h as a proportional scale of it,
// and every other field is set identically on all of them.  Sizes never
// drop below model.MinItemSize.
func ApplyProperty(items []model.LayoutItem, selected IDSet, ch PropertyChange) ([]model.LayoutItem, bool, error) {
	idx := selectedIndices(items, selected)
	if len(idx) == 0 {
		return items, false, nil
	}
	out := model.CloneItems(items)
	first := out[idx[0]]

	switch ch.Field {
	case FieldX, FieldY:
		v, err := numberValue(ch)
		if err != nil {
			return items, false, err
		}
		offset := v - axisPos(first, ch.Field == FieldX)
		for _, i := range idx {
			if ch.Field == FieldX {
				out[i].X += offset
			} else {
				out[i].Y += offset
			}
		}

	case FieldW, FieldH:
		v, err := numberValue(ch)
		if err != nil {
			return items, false, err
		}
		if len(idx) == 1 {
			setSize(&out[idx[0]], ch.Field, ClampSize(v))
			break
		}
		base := first.W
		if ch.Field == FieldH {
			base = first.H
		}
		if base <= 0 || math.IsNaN(base) || math.IsInf(base, 0) {
			// no usable reference size to scale from
			for _, i := range idx {
				setSize(&out[i], ch.Field, ClampSize(v))
			}
			break
		}
		scale := v / base
		for _, i := range idx {
			cur := out[i].W
			if ch.Field == FieldH {
				cur = out[i].H
			}
			setSize(&out[i], ch.Field, ClampSize(cur*scale))
		}

	case FieldRotation:
		v, err := numberValue(ch)
		if err != nil {
			return items, false, err
		}
		for _, i := range idx {
			out[i].Rotation = NormalizeRotation(v)
		}

	case FieldTableSeats:
		v, err := numberValue(ch)
		if err != nil {
			return items, false, err
		}
		if v < 0 || v != math.Trunc(v) {
			return items, false, model.NewValidationError(string(ch.Field), "must be a non-negative integer")
		}
		for _, i := range idx {
			out[i].TableSeats = int(v)
		}

	case FieldLabel, FieldCategory:
		s, err := textValue(ch)
		if err != nil {
			return items, false, err
		}
		if ch.Field == FieldLabel && utf8.RuneCountInString(s) > model.MaxLabelLen {
			return items, false, model.NewValidationError(string(ch.Field), fmt.Sprintf("must be at most %d characters", model.MaxLabelLen))
		}
		if ch.Field == FieldCategory && len(s) > model.MaxIDLen {
			return items, false, model.NewValidationError(string(ch.Field), fmt.Sprintf("must be at most %d bytes", model.MaxIDLen))
		}
		for _, i := range idx {
			if ch.Field == FieldLabel {
				out[i].Label = s
			} else {
				out[i].CategoryID = s
			}
		}

	case FieldType:
		s, err := textValue(ch)
		if err != nil {
			return items, false, err
		}
		typ, ok := model.ParseItemType(s)
		if !ok {
			return items, false, model.NewValidationError(string(ch.Field), "unknown item type "+s)
		}
		for _, i := range idx {
			out[i].Type = typ
			if typ == model.ItemTable && out[i].Shape == "" {
				out[i].Shape = model.ShapeRect
			}
		}

	case FieldShape:
		s, err := textValue(ch)
		if err != nil {
			return items, false, err
		}
		shape, ok := model.ParseTableShape(s)
		if !ok {
			return items, false, model.NewValidationError(string(ch.Field), "unknown table shape "+s)
		}
		for _, i := range idx {
			out[i].Shape = shape
		}

	default:
		return items, false, model.NewValidationError("field", fmt.Sprintf("unknown field %q", ch.Field))
	}

	if itemsEqual(items, out) {
		return items, false, nil
	}
	return out, true, nil
}

// AlignMode is one of the six alignment directions.
type AlignMode string

const (
	AlignLeft   AlignMode = "left"
	AlignCenter AlignMode = "center"
	AlignRight  AlignMode = "right"
	AlignTop    AlignMode = "top"
	AlignMiddle AlignMode = "middle"
	AlignBottom AlignMode = "bottom"
)

// Align lines up two or more selected items.  left/top use the minimum
// edge, right/bottom the maximum far edge and center/middle the mean centre.
func Align(items []model.LayoutItem, selected IDSet, mode AlignMode) ([]model.LayoutItem, bool, error) {
	horizontal := true
	switch mode {
	case AlignLeft, AlignCenter, AlignRight:
	case AlignTop, AlignMiddle, AlignBottom:
		horizontal = false
	default:
		return items, false, model.NewValidationError("mode", fmt.Sprintf("unknown alignment %q", mode))
	}
	idx := selectedIndices(items, selected)
	if len(idx) < 2 {
		return items, false, nil
	}

	out := model.CloneItems(items)
	minEdge, maxEdge, sumCenter := math.Inf(1), math.Inf(-1), 0.0
	for _, i := range idx {
		pos, size := axisPos(out[i], horizontal), axisSize(out[i], horizontal)
		minEdge = math.Min(minEdge, pos)
		maxEdge = math.Max(maxEdge, pos+size)
		sumCenter += pos + size/2
	}
	avgCenter := sumCenter / float64(len(idx))

	for _, i := range idx {
		size := axisSize(out[i], horizontal)
		var pos float64
		switch mode {
		case AlignLeft, AlignTop:
			pos = minEdge
		case AlignRight, AlignBottom:
			pos = maxEdge - size
		default:
			pos = avgCenter - size/2
		}
		setAxisPos(&out[i], horizontal, pos)
	}
	if itemsEqual(items, out) {
		return items, false, nil
	}
	return out, true, nil
}

// Axis selects the distribution direction.
type Axis string

const (
	AxisHorizontal Axis = "horizontal"
	AxisVertical   Axis = "vertical"
)

// Distribute spaces three or more selected items evenly between the
// outermost ones, keeping their order along the axis.
func Distribute(items []model.LayoutItem, selected IDSet, axis Axis) ([]model.LayoutItem, bool, error) {
	if axis != AxisHorizontal && axis != AxisVertical {
		return items, false, model.NewValidationError("axis", fmt.Sprintf("unknown axis %q", axis))
	}
	horizontal := axis == AxisHorizontal
	idx := selectedIndices(items, selected)
	if len(idx) < 3 {
		return items, false, nil
	}

	out := model.CloneItems(items)
	sort.SliceStable(idx, func(a, b int) bool {
		return axisPos(out[idx[a]], horizontal) < axisPos(out[idx[b]], horizontal)
	})

	first, last := out[idx[0]], out[idx[len(idx)-1]]
	totalSpan := axisPos(last, horizontal) + axisSize(last, horizontal) - axisPos(first, horizontal)
	itemSpan := 0.0
	for _, i := range idx {
		itemSpan += axisSize(out[i], horizontal)
	}
	gap := (totalSpan - itemSpan) / float64(len(idx)-1)

	running := axisPos(first, horizontal)
	for _, i := range idx {
		setAxisPos(&out[i], horizontal, running)
		running += axisSize(out[i], horizontal) + gap
	}
	if itemsEqual(items, out) {
		return items, false, nil
	}
	return out, true, nil
}

func axisPos(it model.LayoutItem, horizontal bool) float64 {
	if horizontal {
		return it.X
	}
	return it.Y
}

func axisSize(it model.LayoutItem, horizontal bool) float64 {
	if horizontal {
		return it.W
	}
	return it.H
}

func setAxisPos(it *model.LayoutItem, horizontal bool, v float64) {
	if horizontal {
		it.X = v
	} else {
		it.Y = v
	}
}

func setSize(it *model.LayoutItem, f Field, v float64) {
	if f == FieldW {
		it.W = v
	} else {
		it.H = v
	}
}

func numberValue(ch PropertyChange) (float64, error) {
	switch v := ch.Value.(type) {
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v, nil
		}
	case int:
		return float64(v), nil
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, nil
		}
	}
	return 0, model.NewValidationError(string(ch.Field), "must be a number")
}

func textValue(ch PropertyChange) (string, error) {
	s, ok := ch.Value.(string)
	if !ok {
		return "", model.NewValidationError(string(ch.Field), "must be a string")
	}
	return strings.TrimSpace(s), nil
}

func itemsEqual(a, b []model.LayoutItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.SeatNumber != nil && y.SeatNumber != nil && *x.SeatNumber == *y.SeatNumber {
			x.SeatNumber, y.SeatNumber = nil, nil
		}
		if x != y {
			return false
		}
	}
	return true
}
