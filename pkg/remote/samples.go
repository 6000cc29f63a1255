package remote

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

// Sample is the wire view of a sample.
type Sample struct {
	ID                           string    `json:"id"`
	Name                         string    `json:"name"`
	Tags                         string    `json:"tags"`
	Purpose                      string    `json:"purpose"`
	CurrentLocation              string    `json:"current_location"`
	CurrentlyResponsiblePersonID string    `json:"currently_responsible_person_id"`
	TopicID                      *string   `json:"topic_id,omitempty"`
	SplitOriginID                *string   `json:"split_origin_id,omitempty"`
	DateTimeCreated              time.Time `json:"date_time_created"`
}

// NewSample carries the fields of a sample registration.
type NewSample struct {
	Name            string  `json:"name"`
	Tags            string  `json:"tags,omitempty"`
	Purpose         string  `json:"purpose,omitempty"`
	CurrentLocation string  `json:"current_location,omitempty"`
	TopicID         *string `json:"topic_id,omitempty"`
}

// GetSampleByName fetches a sample by its current name or a former name.
func (c *Client) GetSampleByName(ctx context.Context, name string) (*Sample, error) {
	var sample Sample
	if err := c.do(ctx, http.MethodGet, "/samples/"+url.PathEscape(name), nil, &sample); err != nil {
		return nil, err
	}
	return &sample, nil
}

// CreateSample registers a new sample.
func (c *Client) CreateSample(ctx context.Context, newSample *NewSample) (*Sample, error) {
	var sample Sample
	if err := c.do(ctx, http.MethodPost, "/samples", newSample, &sample); err != nil {
		return nil, err
	}
	return &sample, nil
}

// AddToMySamples puts the given samples into the caller's "My Samples" set.
func (c *Client) AddToMySamples(ctx context.Context, sampleIDs []string) error {
	request := map[string][]string{"add": sampleIDs}
	return c.do(ctx, http.MethodPut, "/my-samples", request, nil)
}

// sampleNamePattern matches lab sample names of the form "14-TB-042" with an
// optional split suffix, as they appear in instrument data files.
var sampleNamePattern = regexp.MustCompile(`\b\d{2}-[A-Z]{1,4}-[A-Za-z0-9]{1,10}(?:-\d{1,3})*\b`)

// ExtractSampleNames returns the sample names found in text, in order of
// first appearance, without duplicates. Crawlers use it to map data files to
// samples.
func ExtractSampleNames(text string) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, match := range sampleNamePattern.FindAllString(text, -1) {
		if _, ok := seen[match]; ok {
			continue
		}
		seen[match] = struct{}{}
		names = append(names, match)
	}
	return names
}
