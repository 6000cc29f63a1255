package remote

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Layer is the wire view of a deposition layer.
type Layer struct {
	Number      int                `json:"number"`
	Thickness   float64            `json:"thickness"`
	Temperature float64            `json:"temperature"`
	Power       float64            `json:"power"`
	Duration    float64            `json:"duration"`
	GasFlows    map[string]float64 `json:"gas_flows,omitempty"`
}

// LayerEdit is one structural layer operation, applied server-side in order.
type LayerEdit struct {
	Action   string `json:"action"`
	Position int    `json:"position,omitempty"`
	Layer    *Layer `json:"layer,omitempty"`
}

// Deposition is the wire view of a deposition.
type Deposition struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	OperatorID string    `json:"operator_id"`
	Timestamp  time.Time `json:"timestamp"`
	Comments   string    `json:"comments"`
	SampleIDs  []string  `json:"sample_ids"`
	Layers     []Layer   `json:"layers"`
	Finished   bool      `json:"finished"`
}

// NewDeposition carries a deposition to be created. Leave Number empty to
// have the server assign the next free number of the year.
type NewDeposition struct {
	Number    string     `json:"number,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Comments  string     `json:"comments,omitempty"`
	SampleIDs []string   `json:"sample_ids"`
	Layers    []Layer    `json:"layers,omitempty"`
	Finished  bool       `json:"finished,omitempty"`
}

// DepositionEdit carries a deposition update. Nil fields stay unchanged.
type DepositionEdit struct {
	Comments   *string     `json:"comments,omitempty"`
	SampleIDs  []string    `json:"sample_ids,omitempty"`
	LayerEdits []LayerEdit `json:"layer_edits,omitempty"`
	Finished   *bool       `json:"finished,omitempty"`
}

// GetDeposition fetches a deposition by its number.
func (c *Client) GetDeposition(ctx context.Context, number string) (*Deposition, error) {
	var deposition Deposition
	if err := c.do(ctx, http.MethodGet, "/depositions/"+url.PathEscape(number), nil, &deposition); err != nil {
		return nil, err
	}
	return &deposition, nil
}

// CreateDeposition records a new deposition run.
func (c *Client) CreateDeposition(ctx context.Context, newDeposition *NewDeposition) (*Deposition, error) {
	var deposition Deposition
	if err := c.do(ctx, http.MethodPost, "/depositions", newDeposition, &deposition); err != nil {
		return nil, err
	}
	return &deposition, nil
}

// UpdateDeposition applies an edit to the deposition with the given number.
func (c *Client) UpdateDeposition(ctx context.Context, number string, edit *DepositionEdit) (*Deposition, error) {
	var deposition Deposition
	if err := c.do(ctx, http.MethodPut, "/depositions/"+url.PathEscape(number), edit, &deposition); err != nil {
		return nil, err
	}
	return &deposition, nil
}
