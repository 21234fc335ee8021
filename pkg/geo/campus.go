package geo

import "strings"

// CampusZone 命名校区围栏：圆心坐标 + 允许半径（米）
// 进程启动时从配置加载，运行期间只读
type CampusZone struct {
	Name         string
	Center       Coordinate
	RadiusMeters float64
}

// Contains 判断点是否落在本校区围栏内
func (z CampusZone) Contains(p Coordinate) bool {
	return WithinRadius(z.Center, p, z.RadiusMeters)
}

// WithinAnyCampus 判断点是否落在任一校区围栏内
// 逻辑或，命中即短路；校区顺序不影响结果
func WithinAnyCampus(p Coordinate, zones []CampusZone) bool {
	for _, z := range zones {
		if z.Contains(p) {
			return true
		}
	}
	return false
}

// NearestCampusDistance 返回点到各校区圆心的最小距离及对应校区允许半径
// 供越界错误携带"实际距离/允许上限"信息；zones 为空时返回 ok=false
func NearestCampusDistance(p Coordinate, zones []CampusZone) (distance, limit float64, ok bool) {
	if len(zones) == 0 {
		return 0, 0, false
	}
	best := -1
	for i, z := range zones {
		d := DistanceMeters(z.Center, p)
		if best < 0 || d < distance {
			best = i
			distance = d
		}
	}
	return distance, zones[best].RadiusMeters, true
}

// FindCampusByName 按名称查找校区（大小写不敏感的精确匹配）
func FindCampusByName(name string, zones []CampusZone) (CampusZone, bool) {
	for _, z := range zones {
		if strings.EqualFold(z.Name, name) {
			return z, true
		}
	}
	return CampusZone{}, false
}
