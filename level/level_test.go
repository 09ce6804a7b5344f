package level

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riotarena/game"
)

const arenaTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="40" height="30" tilewidth="16" tileheight="16" infinite="0" nextlayerid="3" nextobjectid="5">
 <objectgroup id="1" name="platforms">
  <object id="1" x="80" y="300" width="480" height="40"/>
  <object id="2" x="140" y="220" width="100" height="10"/>
 </objectgroup>
 <objectgroup id="2" name="spawns">
  <object id="3" x="400" y="120"><point/></object>
  <object id="4" x="200" y="140"><point/></object>
 </objectgroup>
</map>
`

func TestLoadTMX(t *testing.T) {
	fsys := fstest.MapFS{"arena.tmx": {Data: []byte(arenaTMX)}}

	m, err := Load(fsys, "arena")
	require.NoError(t, err)
	assert.Equal(t, "arena", m.Name)
	assert.Equal(t, []game.Rect{
		{X: 80, Y: 300, Width: 480, Height: 40},
		{X: 140, Y: 220, Width: 100, Height: 10},
	}, m.Platforms)
	assert.Equal(t, []game.Point{{X: 200, Y: 140}, {X: 400, Y: 120}}, m.Spawns)
	assert.Equal(t, game.Rect{X: -200, Y: -200, Width: 1040, Height: 880}, m.BlastZone)
}

func TestLoadFallsBackToBuiltin(t *testing.T) {
	m, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "testmap", m.Name)

	m, err = Load(fstest.MapFS{}, "testmap")
	require.NoError(t, err)
	assert.Equal(t, game.TestMap().Platforms, m.Platforms)
}

func TestLoadMissingMap(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "nowhere")
	assert.Error(t, err)
}

func TestLoadWithoutPlatforms(t *testing.T) {
	fsys := fstest.MapFS{"empty.tmx": {Data: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" width="10" height="10" tilewidth="16" tileheight="16"></map>
`)}}
	_, err := Load(fsys, "empty")
	assert.Error(t, err)
}
