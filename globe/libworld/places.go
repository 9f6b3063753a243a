package libworld

import (
	"fmt"
	"strings"

	"globe-viewer/globe/libnav"

	"golang.org/x/exp/slices"
)

type Place struct {
	Name       string               `yaml:"name"`
	Coordinate libnav.GeoCoordinate `yaml:",inline"`
}

// Places is an ordered set of named fly-to presets. Names are unique ignoring case.
type Places struct {
	list []Place
}

func DefaultPlaces() *Places {
	return &Places{list: []Place{
		{Name: "Belgium", Coordinate: libnav.GeoCoordinate{Lat: 50.7024, Lon: 4.7281}},
		{Name: "Madagascar", Coordinate: libnav.GeoCoordinate{Lat: -19.6587, Lon: 46.5245}},
		{Name: "Australia", Coordinate: libnav.GeoCoordinate{Lat: -25.8226, Lon: 134.1719}},
		{Name: "Iceland", Coordinate: libnav.GeoCoordinate{Lat: 64.8881, Lon: -18.4203}},
		{Name: "Chile", Coordinate: libnav.GeoCoordinate{Lat: -26.2958, Lon: -70.0307}},
		{Name: "Kansas", Coordinate: libnav.GeoCoordinate{Lat: 38.4486, Lon: -98.4658}},
	}}
}

// Add appends a place, or replaces the coordinate of an existing one with the same name.
func (p *Places) Add(place Place) error {
	place.Name = strings.TrimSpace(place.Name)
	if place.Name == "" {
		return fmt.Errorf("place has no name")
	}
	if !place.Coordinate.Valid() {
		return fmt.Errorf("place %q has invalid coordinate %v", place.Name, place.Coordinate)
	}
	if i := p.index(place.Name); i >= 0 {
		p.list[i].Coordinate = place.Coordinate
		return nil
	}
	p.list = append(p.list, place)
	return nil
}

func (p *Places) index(name string) int {
	return slices.IndexFunc(p.list, func(pl Place) bool {
		return strings.EqualFold(pl.Name, name)
	})
}

func (p *Places) Lookup(name string) (Place, bool) {
	i := p.index(strings.TrimSpace(name))
	if i < 0 {
		return Place{}, false
	}
	return p.list[i], true
}

// All returns the places in insertion order.
func (p *Places) All() []Place {
	return slices.Clone(p.list)
}

func (p *Places) Sorted() []Place {
	sorted := slices.Clone(p.list)
	slices.SortFunc(sorted, func(a, b Place) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return sorted
}

func (p *Places) Len() int {
	return len(p.list)
}
