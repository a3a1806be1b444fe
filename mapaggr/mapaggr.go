// Package mapaggr clusters geotagged reports into s2 cells so the map view
// stays readable at any zoom level.
package mapaggr

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"segnalapp/server/api"
)

const (
	expectedCells = 16
	minLevel      = 2
	maxLevel      = 18
	// Cells with this many points or fewer pass through unaggregated.
	minToAggr = 3
)

// baseLevel picks the cell level at which roughly expectedCells cells cover
// the viewport.
func baseLevel(vp api.ViewPort) int {
	minLL := s2.LatLngFromDegrees(vp.LatMin, vp.LonMin)
	maxLL := s2.LatLngFromDegrees(vp.LatMax, vp.LonMax)
	rect := s2.Rect{
		Lat: r1.Interval{Lo: minLL.Lat.Radians(), Hi: maxLL.Lat.Radians()},
		Lng: s1.Interval{Lo: minLL.Lng.Radians(), Hi: maxLL.Lng.Radians()},
	}
	vpArea := rect.Area()

	center := s2.CellIDFromLatLng(s2.LatLngFromDegrees(
		(vp.LatMin+vp.LatMax)/2, (vp.LonMin+vp.LonMax)/2))
	for lv := maxLevel; lv >= minLevel; lv-- {
		cell := s2.CellFromCellID(center.Parent(lv))
		if vpArea/cell.ApproxArea() < expectedCells {
			return lv
		}
	}
	return minLevel
}

// Aggregate buckets the points into cells sized for the viewport. Sparse
// cells return their points as-is; dense cells collapse to their centroid
// with a count.
func Aggregate(vp api.ViewPort, points []api.MapResult) []api.MapResult {
	level := baseLevel(vp)

	type bucket struct {
		sum    s2.Point
		count  int64
		points []api.MapResult
	}
	buckets := make(map[s2.CellID]*bucket)
	for _, p := range points {
		ll := s2.LatLngFromDegrees(p.Latitude, p.Longitude)
		cid := s2.CellIDFromLatLng(ll).Parent(level)
		b := buckets[cid]
		if b == nil {
			b = &bucket{}
			buckets[cid] = b
		}
		b.sum = s2.Point{Vector: b.sum.Add(s2.PointFromLatLng(ll).Vector)}
		b.count += p.Count
		b.points = append(b.points, p)
	}

	out := make([]api.MapResult, 0, len(buckets))
	for _, b := range buckets {
		if b.count <= minToAggr {
			out = append(out, b.points...)
			continue
		}
		centroid := s2.LatLngFromPoint(s2.Point{Vector: b.sum.Normalize()})
		out = append(out, api.MapResult{
			Latitude:  centroid.Lat.Degrees(),
			Longitude: centroid.Lng.Degrees(),
			Count:     b.count,
		})
	}
	return out
}
