package main

import (
	"fmt"

	"globe-viewer/globe/libnav"
	"globe-viewer/globe/libworld"

	im "github.com/inkyblackness/imgui-go/v4"
)

// Panels holds what the settings and places windows show besides the world settings.
type Panels struct {
	Places *libworld.Places
	// sort the preset buttons by name instead of insertion order
	SortPlaces bool
	// nil without a TLE file
	Satellite *SatelliteFollow

	Hovered      libnav.GeoCoordinate
	HoveredValid bool
	TextureName  string
}

// SatelliteFollow is the UI state of the tracked satellite.
type SatelliteFollow struct {
	Name     string
	Follow   bool
	Position libnav.GeoCoordinate
	Altitude float64
	Err      error
}

// DrawPanels builds the UI windows for this frame and returns the fly-to targets the
// user clicked. Settings are edited in place.
func DrawPanels(settings *libworld.Settings, ctrl *libnav.Controller, p *Panels) []libnav.GeoCoordinate {
	var navigate []libnav.GeoCoordinate

	if im.Begin("Settings") {
		im.SliderInt("month", &settings.Month, 1, libworld.MonthCount)
		im.Checkbox("cycle months", &settings.CycleMonth)
		im.SliderInt("cycle ms", &settings.CycleDurationMs, libworld.MinCycleDurationMs, libworld.MaxCycleDurationMs)
		im.Checkbox("wireframe", &settings.Wireframe)

		im.PushID("overlays")
		if im.CollapsingHeader("Overlays") {
			im.Checkbox("equator", &settings.ShowEquator)
			im.Checkbox("geographic poles", &settings.ShowGeographicPoles)
			im.Checkbox("magnetic poles", &settings.ShowMagneticPoles)
			im.Checkbox("sky", &settings.ShowSky)
		}
		im.PopID()

		im.PushID("camera")
		if im.CollapsingHeader("Camera") {
			im.Text(fmt.Sprintf("over %v", ctrl.Pose.Geo()))
			im.Text(fmt.Sprintf("distance %.3f", ctrl.Pose.Distance()))
			if p.HoveredValid {
				im.Text(fmt.Sprintf("cursor %v", p.Hovered))
			} else {
				im.Text("cursor -")
			}
			im.Text(fmt.Sprintf("texture %s", p.TextureName))
		}
		im.PopID()
	}
	im.End()
	settings.Clamp()

	if im.Begin("Places") {
		settings.Moving = ctrl.FlyTo.Moving()
		if im.Checkbox("moving", &settings.Moving) {
			ctrl.FlyTo.SetActive(settings.Moving)
		}
		im.Separator()

		places := p.Places.All()
		if p.SortPlaces {
			places = p.Places.Sorted()
		}
		for _, place := range places {
			if im.Button(place.Name) {
				navigate = append(navigate, place.Coordinate)
			}
		}
		im.Checkbox("sort by name", &p.SortPlaces)

		if sat := p.Satellite; sat != nil {
			im.Separator()
			im.PushID("satellite")
			im.Checkbox("follow "+sat.Name, &sat.Follow)
			if sat.Err != nil {
				im.Text(sat.Err.Error())
			} else {
				im.Text(fmt.Sprintf("%v at %.0f km", sat.Position, sat.Altitude))
			}
			if im.Button("go to satellite") && sat.Err == nil {
				navigate = append(navigate, sat.Position)
			}
			im.PopID()
		}
	}
	im.End()

	return navigate
}
