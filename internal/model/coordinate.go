// Package model defines the data types shared across the siting engine:
// coordinates, generation assets, candidate sites, weights, and evaluation
// results.
package model

import "github.com/rotisserie/eris"

// Coordinate is an immutable latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the coordinate lies within valid geographic bounds.
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return eris.Errorf("model: latitude %.4f out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return eris.Errorf("model: longitude %.4f out of range [-180, 180]", c.Longitude)
	}
	return nil
}
