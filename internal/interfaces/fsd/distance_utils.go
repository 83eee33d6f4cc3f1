package fsd

import (
	"math"
)

const (
	earthRadiusMeters     = 6371000
	metersPerNauticalMile = 1852
)

// DistanceInNauticalMiles 使用球面余弦定理计算两点间距离
func DistanceInNauticalMiles(p1, p2 Position) float64 {
	lat1 := p1.Latitude * math.Pi / 180
	lon1 := p1.Longitude * math.Pi / 180
	lat2 := p2.Latitude * math.Pi / 180
	lon2 := p2.Longitude * math.Pi / 180

	cos := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(lon2-lon1)
	// 浮点误差可能使 cos 略微超出 [-1, 1]
	cos = math.Max(-1, math.Min(1, cos))

	return (earthRadiusMeters * math.Acos(cos)) / metersPerNauticalMile
}

// InRange 判断两点是否在给定海里范围内, 无效坐标视为不在范围内
func InRange(p1, p2 Position, rangeNm float64) bool {
	if !p1.PositionValid() || !p2.PositionValid() {
		return false
	}
	return DistanceInNauticalMiles(p1, p2) <= rangeNm
}
