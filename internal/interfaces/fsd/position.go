// Package fsd
package fsd

type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p *Position) PositionValid() bool {
	return p.Latitude != 0 && p.Longitude != 0
}
