package remote

import (
	"context"
	"net/http"
	"time"
)

// Process is the wire view of a generic process.
type Process struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	OperatorID string    `json:"operator_id"`
	Timestamp  time.Time `json:"timestamp"`
	Comments   string    `json:"comments"`
	SampleIDs  []string  `json:"sample_ids"`
}

// NewProcess carries a process to be attached to samples, e.g. a measurement
// imported from an instrument data file.
type NewProcess struct {
	Kind      string     `json:"kind"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Comments  string     `json:"comments,omitempty"`
	SampleIDs []string   `json:"sample_ids"`
}

// CreateProcess attaches a generic process to its samples.
func (c *Client) CreateProcess(ctx context.Context, newProcess *NewProcess) (*Process, error) {
	var process Process
	if err := c.do(ctx, http.MethodPost, "/processes", newProcess, &process); err != nil {
		return nil, err
	}
	return &process, nil
}
