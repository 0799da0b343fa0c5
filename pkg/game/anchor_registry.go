package game

import (
	"log"
	"sort"

	"github.com/decker502/cardtable/pkg/types"
)

// AnchorReport 渲染层上报的一个锚点几何信息
// 坐标取矩形中心
type AnchorReport struct {
	ID      types.AnchorID
	X, Y    float64 // 左上角
	W, H    float64
	Visible bool

	// PlayerID 座位视图当前显示的玩家（可为空）
	PlayerID string
}

// Center 返回矩形中心点
func (r AnchorReport) Center() types.Point {
	return types.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// AnchorProvider 可被 Refresh 主动扫描的锚点来源（如场景布局）
type AnchorProvider interface {
	ScanAnchors() []AnchorReport
}

// AnchorProviderFunc 函数形式的 AnchorProvider
type AnchorProviderFunc func() []AnchorReport

// ScanAnchors 实现 AnchorProvider
func (f AnchorProviderFunc) ScanAnchors() []AnchorReport {
	return f()
}

// AnchorRegistry 跟踪每个锚点（座位、牌桌中心）当前的屏幕坐标
//
// 写入只发生在 Refresh 内部：Report 只是登记几何信息，Refresh 时才生效。
// 其他组件只通过 Resolve/Lookup/ResolvePlayer 读取，拿不到内部 map。
type AnchorRegistry struct {
	positions map[types.AnchorID]types.Point
	reported  map[types.AnchorID]AnchorReport
	providers []AnchorProvider

	// 玩家ID -> 座位（SetSeat 显式设置）
	seats map[string]types.AnchorID
	// 玩家ID -> 座位（Refresh 时从座位视图扫描得到）
	scannedSeats map[string]types.AnchorID

	viewportW, viewportH float64

	// generation 每次 Refresh 导致坐标变化时递增
	generation uint64
}

// NewAnchorRegistry 创建锚点注册表
func NewAnchorRegistry() *AnchorRegistry {
	return &AnchorRegistry{
		positions:    make(map[types.AnchorID]types.Point),
		reported:     make(map[types.AnchorID]AnchorReport),
		seats:        make(map[string]types.AnchorID),
		scannedSeats: make(map[string]types.AnchorID),
	}
}

// AddProvider 注册一个锚点来源
func (r *AnchorRegistry) AddProvider(p AnchorProvider) {
	if p == nil {
		return
	}
	r.providers = append(r.providers, p)
}

// Report 登记锚点几何信息（渲染层在布局变化时调用）
// 下一次 Refresh 后生效
func (r *AnchorRegistry) Report(report AnchorReport) {
	r.reported[report.ID] = report
}

// Forget 移除登记的锚点（座位视图被销毁）
func (r *AnchorRegistry) Forget(id types.AnchorID) {
	delete(r.reported, id)
}

// SetViewport 设置视口尺寸，用于最终兜底坐标
func (r *AnchorRegistry) SetViewport(w, h float64) {
	r.viewportW, r.viewportH = w, h
}

// Refresh 重新扫描全部锚点并记录当前坐标
//
// 幂等：输入不变时多次调用结果相同。开销与锚点数量成正比，
// 可以在每次 resize / scroll / 方向变化 / 可见性恢复时调用。
//
// 返回: 坐标是否发生变化
func (r *AnchorRegistry) Refresh() bool {
	next := make(map[types.AnchorID]types.Point, len(r.positions))
	occupants := make(map[types.AnchorID]string)

	apply := func(rep AnchorReport) {
		if !rep.Visible {
			delete(next, rep.ID)
			delete(occupants, rep.ID)
			return
		}
		next[rep.ID] = rep.Center()
		if rep.ID.IsSeat() {
			occupants[rep.ID] = rep.PlayerID
		}
	}

	for _, p := range r.providers {
		for _, rep := range p.ScanAnchors() {
			apply(rep)
		}
	}
	// 直接上报的信息优先于扫描结果
	for _, id := range sortedAnchorIDs(r.reported) {
		apply(r.reported[id])
	}

	changed := len(next) != len(r.positions)
	if !changed {
		for id, pt := range next {
			if old, ok := r.positions[id]; !ok || old != pt {
				changed = true
				break
			}
		}
	}

	r.positions = next
	r.scannedSeats = make(map[string]types.AnchorID, len(occupants))
	for seat, pid := range occupants {
		if pid != "" {
			r.scannedSeats[pid] = seat
		}
	}
	if changed {
		r.generation++
		log.Printf("[AnchorRegistry] 锚点刷新: %d 个锚点 (generation=%d)", len(next), r.generation)
	}
	return changed
}

// Generation 返回坐标版本号
func (r *AnchorRegistry) Generation() uint64 {
	return r.generation
}

// Lookup 严格查找锚点坐标，不做兜底
func (r *AnchorRegistry) Lookup(id types.AnchorID) (types.Point, bool) {
	pt, ok := r.positions[id]
	return pt, ok
}

// Resolve 返回锚点坐标
//
// 兜底顺序：锚点自身 → 牌桌中心 → 视口中心。永不失败。
func (r *AnchorRegistry) Resolve(id types.AnchorID) types.Point {
	if pt, ok := r.positions[id]; ok {
		return pt
	}
	if pt, ok := r.positions[types.TableCenter]; ok {
		return pt
	}
	return types.Point{X: r.viewportW / 2, Y: r.viewportH / 2}
}

// SetSeat 记录玩家当前所在座位
func (r *AnchorRegistry) SetSeat(playerID string, seat int) {
	if playerID == "" || seat < 0 || seat >= types.MaxSeats {
		return
	}
	// 一个座位只能有一个玩家
	for pid, a := range r.seats {
		if a == types.SeatAnchor(seat) && pid != playerID {
			delete(r.seats, pid)
		}
	}
	r.seats[playerID] = types.SeatAnchor(seat)
}

// ClearSeat 玩家离座
func (r *AnchorRegistry) ClearSeat(playerID string) {
	delete(r.seats, playerID)
}

// ResetSeats 清空全部座位信息（大厅重置）
func (r *AnchorRegistry) ResetSeats() {
	r.seats = make(map[string]types.AnchorID)
}

// ResolvePlayer 返回玩家所在座位锚点；未入座返回 types.NoSeat
// 显式设置的座位优先于扫描结果
func (r *AnchorRegistry) ResolvePlayer(playerID string) types.AnchorID {
	if playerID == "" {
		return types.NoSeat
	}
	if a, ok := r.seats[playerID]; ok {
		return a
	}
	if a, ok := r.scannedSeats[playerID]; ok {
		return a
	}
	return types.NoSeat
}

// PlayerAt 返回座位上的玩家ID；空座返回 ""
func (r *AnchorRegistry) PlayerAt(seat int) string {
	for pid, a := range r.seats {
		if a == types.SeatAnchor(seat) {
			return pid
		}
	}
	for pid, a := range r.scannedSeats {
		if a == types.SeatAnchor(seat) {
			if _, explicit := r.seats[pid]; !explicit {
				return pid
			}
		}
	}
	return ""
}

// ActiveSeats 返回已有玩家的座位（升序、去重）
func (r *AnchorRegistry) ActiveSeats() []int {
	set := make(map[int]struct{})
	for _, a := range r.seats {
		set[a.Seat()] = struct{}{}
	}
	for pid, a := range r.scannedSeats {
		if _, explicit := r.seats[pid]; !explicit {
			set[a.Seat()] = struct{}{}
		}
	}
	seats := make([]int, 0, len(set))
	for s := range set {
		seats = append(seats, s)
	}
	sort.Ints(seats)
	return seats
}

func sortedAnchorIDs(m map[types.AnchorID]AnchorReport) []types.AnchorID {
	ids := make([]types.AnchorID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
