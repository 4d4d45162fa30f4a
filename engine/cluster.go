package engine

import (
	"math"
	"strconv"
)

// ============================================================================
// SPATIAL CLUSTERING — co-location hotspots from raw coordinates
// ============================================================================
// Greedy single-pass grouping in raw degree space. Euclidean distance on
// degrees is deliberate: at city scale the latitude/longitude anisotropy is
// below the GPS noise floor, and the field staff tune the threshold by eye
// against the rendered map anyway.
// ============================================================================

// DefaultProximity is the grouping radius in degrees, roughly 35–40 m at
// city latitudes.
const DefaultProximity = 0.00035

// GeoFilter narrows the point set handed to DetectClusters.
type GeoFilter struct {
	EntityID string // entity key, empty/AllToken = all
	Month    string // "YYYY-MM", empty/AllToken = all
	Day      int    // day of month, 0 = all
}

// GeoPoints extracts the raw coordinates of the records that carry a fix
// and pass the filter, preserving input order.
func GeoPoints(records []ScanRecord, kind EntityKind, f GeoFilter) []GeoPoint {
	points := make([]GeoPoint, 0, len(records))
	for _, r := range records {
		if !r.HasGeo {
			continue
		}
		if f.EntityID != "" && f.EntityID != AllToken && r.EntityKey(kind) != f.EntityID {
			continue
		}
		if f.Month != "" && f.Month != AllToken && r.Month() != f.Month {
			continue
		}
		if f.Day != 0 && r.Date.Day() != f.Day {
			continue
		}
		points = append(points, GeoPoint{Lat: r.Lat, Lng: r.Lng})
	}
	return points
}

// DetectClusters finds groups of three or more mutually nearby points.
// Each point joins at most one cluster: points are consumed left to right,
// and every unconsumed point within threshold of the seed joins the seed's
// group. threshold <= 0 uses DefaultProximity.
func DetectClusters(points []GeoPoint, threshold float64) []Cluster {
	if threshold <= 0 {
		threshold = DefaultProximity
	}

	used := make([]bool, len(points))
	clusters := make([]Cluster, 0)

	for i, seed := range points {
		if used[i] {
			continue
		}
		used[i] = true
		group := []GeoPoint{seed}

		for j := i + 1; j < len(points); j++ {
			if used[j] {
				continue
			}
			if math.Hypot(points[j].Lat-seed.Lat, points[j].Lng-seed.Lng) < threshold {
				used[j] = true
				group = append(group, points[j])
			}
		}

		if len(group) < 3 {
			continue
		}

		var sumLat, sumLng float64
		for _, p := range group {
			sumLat += p.Lat
			sumLng += p.Lng
		}
		clusters = append(clusters, Cluster{
			Centroid: GeoPoint{
				Lat: sumLat / float64(len(group)),
				Lng: sumLng / float64(len(group)),
			},
			Size: len(group),
		})
	}
	return clusters
}

// ParseThreshold parses a user-supplied threshold override, falling back to
// DefaultProximity on blank or invalid input.
func ParseThreshold(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return DefaultProximity
	}
	return v
}
