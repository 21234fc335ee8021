package geo

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// earthRadiusMeters 地球平均半径（米）
const earthRadiusMeters = 6371000

// ErrInvalidCoordinate 坐标格式非法或超出有效范围
var ErrInvalidCoordinate = errors.New("坐标格式非法或超出有效范围")

// Coordinate 经纬度坐标（十进制度），构造后不可变
type Coordinate struct {
	lat float64
	lng float64
}

// NewCoordinate 构造坐标，校验取值范围
// 纬度 ∈ [-90, 90]，经度 ∈ [-180, 180]
func NewCoordinate(lat, lng float64) (Coordinate, error) {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return Coordinate{}, ErrInvalidCoordinate
	}
	if lat < -90 || lat > 90 {
		return Coordinate{}, ErrInvalidCoordinate
	}
	if lng < -180 || lng > 180 {
		return Coordinate{}, ErrInvalidCoordinate
	}
	return Coordinate{lat: lat, lng: lng}, nil
}

// ParseCoordinate 从字符串构造坐标
// 空串、非数字、超范围均返回 ErrInvalidCoordinate
func ParseCoordinate(latStr, lngStr string) (Coordinate, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Coordinate{}, ErrInvalidCoordinate
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return Coordinate{}, ErrInvalidCoordinate
	}
	return NewCoordinate(lat, lng)
}

// Latitude 纬度（十进制度）
func (c Coordinate) Latitude() float64 { return c.lat }

// Longitude 经度（十进制度）
func (c Coordinate) Longitude() float64 { return c.lng }

// DistanceMeters 计算两点间大圆距离（米），Haversine 公式
// 纯函数，确定性，无失败路径（范围校验由 Coordinate 构造承担）
func DistanceMeters(a, b Coordinate) float64 {
	phi1 := a.lat * math.Pi / 180
	phi2 := b.lat * math.Pi / 180
	deltaPhi := (b.lat - a.lat) * math.Pi / 180
	deltaLambda := (b.lng - a.lng) * math.Pi / 180

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// WithinRadius 判断 dest 是否落在以 origin 为圆心的半径内
// 距离恰好等于半径视为在内（<=）
func WithinRadius(origin, dest Coordinate, radiusMeters float64) bool {
	return DistanceMeters(origin, dest) <= radiusMeters
}
