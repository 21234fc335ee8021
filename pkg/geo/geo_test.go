package geo

import (
	"math"
	"testing"
)

// ── Coordinate 构造与解析 ──

func TestNewCoordinate_Valid(t *testing.T) {
	c, err := NewCoordinate(-3.7436587, -38.5410718)
	if err != nil {
		t.Fatalf("合法坐标构造失败: %v", err)
	}
	if c.Latitude() != -3.7436587 || c.Longitude() != -38.5410718 {
		t.Errorf("坐标取值不一致: (%v, %v)", c.Latitude(), c.Longitude())
	}
}

func TestNewCoordinate_OutOfRange(t *testing.T) {
	cases := []struct {
		name     string
		lat, lng float64
	}{
		{"纬度超上界", 90.1, 0},
		{"纬度超下界", -90.1, 0},
		{"经度超上界", 0, 180.1},
		{"经度超下界", 0, -180.1},
		{"NaN", math.NaN(), 0},
	}
	for _, tc := range cases {
		if _, err := NewCoordinate(tc.lat, tc.lng); err == nil {
			t.Errorf("%s: 期望 ErrInvalidCoordinate，实际无错误", tc.name)
		}
	}
}

func TestNewCoordinate_Boundary(t *testing.T) {
	// 边界值本身合法
	for _, p := range [][2]float64{{90, 180}, {-90, -180}, {0, 0}} {
		if _, err := NewCoordinate(p[0], p[1]); err != nil {
			t.Errorf("边界坐标 (%v, %v) 应合法: %v", p[0], p[1], err)
		}
	}
}

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate("-3.7436587", " -38.5410718 ")
	if err != nil {
		t.Fatalf("解析合法坐标失败: %v", err)
	}
	if c.Latitude() != -3.7436587 {
		t.Errorf("期望纬度=-3.7436587，实际=%v", c.Latitude())
	}

	bad := [][2]string{
		{"", ""},
		{"abc", "1"},
		{"1", "abc"},
		{"91", "0"},
		{"0", "181"},
	}
	for _, p := range bad {
		if _, err := ParseCoordinate(p[0], p[1]); err == nil {
			t.Errorf("解析 (%q, %q) 应失败", p[0], p[1])
		}
	}
}

// ── DistanceMeters ──

func TestDistanceMeters_SamePoint(t *testing.T) {
	c, _ := NewCoordinate(-3.7436587, -38.5410718)
	if d := DistanceMeters(c, c); d != 0 {
		t.Errorf("同一点距离期望为 0，实际=%v", d)
	}
}

func TestDistanceMeters_Symmetry(t *testing.T) {
	a, _ := NewCoordinate(-3.7436587, -38.5410718)
	b, _ := NewCoordinate(-3.768, -38.478)
	if DistanceMeters(a, b) != DistanceMeters(b, a) {
		t.Error("距离计算应满足对称性")
	}
}

func TestDistanceMeters_KnownFixture(t *testing.T) {
	// 赤道上经度相差 1° ≈ 111195 米
	a, _ := NewCoordinate(0, 0)
	b, _ := NewCoordinate(0, 1)
	d := DistanceMeters(a, b)
	if math.Abs(d-111195) > 50 {
		t.Errorf("期望约 111195m（±50m），实际=%v", d)
	}
}

// ── WithinRadius ──

func TestWithinRadius_BoundaryInclusive(t *testing.T) {
	origin, _ := NewCoordinate(0, 0)
	dest, _ := NewCoordinate(0, 1)
	d := DistanceMeters(origin, dest)

	// 距离恰好等于半径视为在内
	if !WithinRadius(origin, dest, d) {
		t.Error("距离等于半径时应判定在内")
	}
	if WithinRadius(origin, dest, d-1) {
		t.Error("距离超出半径时应判定在外")
	}
}

// ── 校区围栏 ──

func testZones() []CampusZone {
	main, _ := NewCoordinate(-3.7436587, -38.5410718)
	north, _ := NewCoordinate(-3.7319, -38.5267)
	return []CampusZone{
		{Name: "Campus Central", Center: main, RadiusMeters: 2000},
		{Name: "Campus Norte", Center: north, RadiusMeters: 1500},
	}
}

func TestWithinAnyCampus(t *testing.T) {
	zones := testZones()

	inside, _ := NewCoordinate(-3.7436587, -38.5410718) // 主校区圆心
	if !WithinAnyCampus(inside, zones) {
		t.Error("圆心点应落在校区内")
	}

	far, _ := NewCoordinate(-3.80, -38.40) // 距两校区均超 5km
	if WithinAnyCampus(far, zones) {
		t.Error("远离所有校区的点不应判定在内")
	}

	if WithinAnyCampus(inside, nil) {
		t.Error("空校区集合不应命中")
	}
}

func TestNearestCampusDistance(t *testing.T) {
	zones := testZones()

	p, _ := NewCoordinate(-3.7436587, -38.5410718)
	d, limit, ok := NearestCampusDistance(p, zones)
	if !ok {
		t.Fatal("非空校区集合应返回 ok=true")
	}
	if d != 0 {
		t.Errorf("圆心点最近距离期望=0，实际=%v", d)
	}
	if limit != 2000 {
		t.Errorf("期望允许半径=2000，实际=%v", limit)
	}

	if _, _, ok := NearestCampusDistance(p, nil); ok {
		t.Error("空校区集合应返回 ok=false")
	}
}

func TestFindCampusByName(t *testing.T) {
	zones := testZones()

	z, ok := FindCampusByName("campus central", zones)
	if !ok {
		t.Fatal("大小写不敏感匹配应命中")
	}
	if z.Name != "Campus Central" {
		t.Errorf("期望 Campus Central，实际=%s", z.Name)
	}

	if _, ok := FindCampusByName("不存在的校区", zones); ok {
		t.Error("未配置的校区名不应命中")
	}
}
