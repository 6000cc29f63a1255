package models

import (
	"encoding/json"
	"fmt"

	"github.com/juliabase/juliabase/internal/domain/processes"
)

// DepositionModel extends a process row with deposition-specific fields.
// The ID equals the ID of the process row.
type DepositionModel struct {
	ID       string `gorm:"primaryKey;type:uuid"`
	Number   string `gorm:"not null;uniqueIndex;type:varchar(15)"`
	Finished bool   `gorm:"not null;default:false"`
}

// TableName specifies the table name for GORM
func (DepositionModel) TableName() string {
	return "depositions"
}

// LayerModel is one layer row of a deposition. Gas flows are stored as a
// JSON object keyed by gas channel.
type LayerModel struct {
	DepositionID string  `gorm:"primaryKey;type:uuid"`
	Number       int     `gorm:"primaryKey"`
	Thickness    float64 ``
	Temperature  float64 ``
	Power        float64 ``
	Duration     float64 ``
	GasFlows     string  `gorm:"type:text"`
}

// TableName specifies the table name for GORM
func (LayerModel) TableName() string {
	return "deposition_layers"
}

// ToDomain converts the layer row to a domain layer.
func (m *LayerModel) ToDomain() (processes.Layer, error) {
	layer := processes.Layer{
		Number:      m.Number,
		Thickness:   m.Thickness,
		Temperature: m.Temperature,
		Power:       m.Power,
		Duration:    m.Duration,
	}
	if m.GasFlows != "" {
		if err := json.Unmarshal([]byte(m.GasFlows), &layer.GasFlows); err != nil {
			return processes.Layer{}, fmt.Errorf("failed to decode gas flows of layer %d: %w", m.Number, err)
		}
	}
	return layer, nil
}

// FromDomain converts a domain layer to a layer row.
func (m *LayerModel) FromDomain(depositionID string, layer processes.Layer) error {
	m.DepositionID = depositionID
	m.Number = layer.Number
	m.Thickness = layer.Thickness
	m.Temperature = layer.Temperature
	m.Power = layer.Power
	m.Duration = layer.Duration
	m.GasFlows = ""
	if len(layer.GasFlows) > 0 {
		encoded, err := json.Marshal(layer.GasFlows)
		if err != nil {
			return fmt.Errorf("failed to encode gas flows of layer %d: %w", layer.Number, err)
		}
		m.GasFlows = string(encoded)
	}
	return nil
}
