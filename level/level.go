package level

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"

	"riotarena/game"
)

// 地图对象层名称
const (
	PlatformLayer = "platforms"
	SpawnLayer    = "spawns"
)

// blastMargin 出界判定区域比地图四周多出的距离
const blastMargin = 200.0

// Load 从 fsys 中读取 <name>.tmx：platforms 对象层中的矩形成为平台，
// spawns 对象层中的点成为出生平台位置。name 为空或 fsys 为 nil 时返回内置地图。
func Load(fsys fs.FS, name string) (*game.Map, error) {
	if fsys == nil || name == "" {
		return game.TestMap(), nil
	}
	path := name
	if !strings.HasSuffix(path, ".tmx") {
		path += ".tmx"
	}
	if name == "testmap" {
		if _, err := fs.Stat(fsys, path); err != nil {
			return game.TestMap(), nil
		}
	}
	tm, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", path, err)
	}

	m := &game.Map{Name: strings.TrimSuffix(name, ".tmx")}
	for _, og := range tm.ObjectGroups {
		switch og.Name {
		case PlatformLayer:
			for _, o := range og.Objects {
				if o.Width <= 0 || o.Height <= 0 {
					continue
				}
				m.Platforms = append(m.Platforms, game.Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height})
			}
		case SpawnLayer:
			for _, o := range og.Objects {
				m.Spawns = append(m.Spawns, game.Point{X: o.X, Y: o.Y})
			}
		}
	}
	if len(m.Platforms) == 0 {
		return nil, fmt.Errorf("load TMX %s: no %q object layer", path, PlatformLayer)
	}
	sort.Slice(m.Spawns, func(i, j int) bool { return m.Spawns[i].X < m.Spawns[j].X })

	w := float64(tm.Width * tm.TileWidth)
	h := float64(tm.Height * tm.TileHeight)
	m.BlastZone = game.Rect{X: -blastMargin, Y: -blastMargin, Width: w + 2*blastMargin, Height: h + 2*blastMargin}
	return m, nil
}
