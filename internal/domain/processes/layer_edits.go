package processes

import (
	"fmt"

	"github.com/juliabase/juliabase/internal/domain/common"
)

// Layer-edit actions. They describe structural changes to a deposition's
// layer list: the browser-era edit workflow (duplicate this layer, move that
// one up, delete the last) expressed as explicit operations applied
// server-side in order.
const (
	LayerActionAdd       = "add"
	LayerActionDelete    = "delete"
	LayerActionDuplicate = "duplicate"
	LayerActionMoveUp    = "move-up"
	LayerActionMoveDown  = "move-down"
)

// LayerEdit is one structural operation. Position addresses a layer by its
// current 1-based number at the time the edit is applied; edits in a batch
// see the effects of earlier edits. For "add", Layer carries the new layer's
// parameters and Position 0 means append.
type LayerEdit struct {
	Action   string `validate:"required,oneof=add delete duplicate move-up move-down"`
	Position int    `validate:"min=0"`
	Layer    *Layer ``
}

// ApplyLayerEdits applies the edits in order to a copy of layers and returns
// the result renumbered 1..n. Moving the first layer up or the last layer
// down is a no-op. A position outside the current list fails with
// ErrInvalidParameter and leaves the input untouched.
func ApplyLayerEdits(layers []Layer, edits []LayerEdit) ([]Layer, error) {
	result := make([]Layer, len(layers))
	copy(result, layers)

	for i, edit := range edits {
		var err error
		switch edit.Action {
		case LayerActionAdd:
			result, err = addLayer(result, edit)
		case LayerActionDelete:
			result, err = deleteLayer(result, edit.Position)
		case LayerActionDuplicate:
			result, err = duplicateLayer(result, edit.Position)
		case LayerActionMoveUp:
			result, err = moveLayer(result, edit.Position, -1)
		case LayerActionMoveDown:
			result, err = moveLayer(result, edit.Position, +1)
		default:
			err = fmt.Errorf("%w: unknown layer action %q", common.ErrInvalidParameter, edit.Action)
		}
		if err != nil {
			return nil, fmt.Errorf("layer edit %d (%s): %w", i+1, edit.Action, err)
		}
	}

	renumber(result)
	return result, nil
}

func addLayer(layers []Layer, edit LayerEdit) ([]Layer, error) {
	if edit.Layer == nil {
		return nil, fmt.Errorf("%w: add requires layer parameters", common.ErrInvalidParameter)
	}
	layer := copyLayer(*edit.Layer)
	if edit.Position == 0 || edit.Position == len(layers)+1 {
		return append(layers, layer), nil
	}
	if edit.Position < 1 || edit.Position > len(layers) {
		return nil, positionError(edit.Position, len(layers))
	}
	return insertAt(layers, edit.Position-1, layer), nil
}

func deleteLayer(layers []Layer, position int) ([]Layer, error) {
	if position < 1 || position > len(layers) {
		return nil, positionError(position, len(layers))
	}
	return append(layers[:position-1], layers[position:]...), nil
}

func duplicateLayer(layers []Layer, position int) ([]Layer, error) {
	if position < 1 || position > len(layers) {
		return nil, positionError(position, len(layers))
	}
	// The copy lands directly after its source.
	return insertAt(layers, position, copyLayer(layers[position-1])), nil
}

func moveLayer(layers []Layer, position, delta int) ([]Layer, error) {
	if position < 1 || position > len(layers) {
		return nil, positionError(position, len(layers))
	}
	target := position + delta
	if target < 1 || target > len(layers) {
		return layers, nil
	}
	layers[position-1], layers[target-1] = layers[target-1], layers[position-1]
	return layers, nil
}

func insertAt(layers []Layer, index int, layer Layer) []Layer {
	layers = append(layers, Layer{})
	copy(layers[index+1:], layers[index:])
	layers[index] = layer
	return layers
}

// copyLayer deep-copies the gas flow map so duplicated layers can be edited
// independently.
func copyLayer(layer Layer) Layer {
	if layer.GasFlows != nil {
		flows := make(map[string]float64, len(layer.GasFlows))
		for gas, flow := range layer.GasFlows {
			flows[gas] = flow
		}
		layer.GasFlows = flows
	}
	return layer
}

func renumber(layers []Layer) {
	for i := range layers {
		layers[i].Number = i + 1
	}
}

func positionError(position, count int) error {
	return fmt.Errorf("%w: layer position %d outside 1..%d", common.ErrInvalidParameter, position, count)
}
