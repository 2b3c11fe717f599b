package s2tiles

import (
	"math"

	"github.com/paulmach/orb"
)

// LonLatToFaceXY projects a WGS84 lon/lat point onto one of the six cube
// faces at the given zoom, returning the face index and tile coordinate.
// Grounded on the projection-helper style of the teacher's BboxRegion
// (region.go), generalized from a planar web-mercator bbox parser to a
// cube-face point projection using orb.Point for the input type.
func LonLatToFaceXY(pt orb.Point, zoom uint8) (face uint8, x, y uint32) {
	lon := pt.Lon() * math.Pi / 180
	lat := pt.Lat() * math.Pi / 180

	cosLat := math.Cos(lat)
	px := cosLat * math.Cos(lon)
	py := cosLat * math.Sin(lon)
	pz := math.Sin(lat)

	ax, ay, az := math.Abs(px), math.Abs(py), math.Abs(pz)

	var u, v float64
	switch {
	case ax >= ay && ax >= az:
		if px > 0 {
			face, u, v = 0, -py/ax, -pz/ax
		} else {
			face, u, v = 1, py/ax, -pz/ax
		}
	case ay >= ax && ay >= az:
		if py > 0 {
			face, u, v = 2, px/ay, -pz/ay
		} else {
			face, u, v = 3, -px/ay, -pz/ay
		}
	default:
		if pz > 0 {
			face, u, v = 4, -py/az, -px/az
		} else {
			face, u, v = 5, py/az, px/az
		}
	}

	n := float64(uint32(1) << zoom)
	fx := (u + 1) / 2 * n
	fy := (v + 1) / 2 * n
	x = clampTileCoord(fx, n)
	y = clampTileCoord(fy, n)
	return face, x, y
}

func clampTileCoord(v, n float64) uint32 {
	if v < 0 {
		return 0
	}
	if v >= n {
		return uint32(n) - 1
	}
	return uint32(v)
}
