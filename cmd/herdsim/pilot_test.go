package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/herdguard/internal/config"
	"github.com/udisondev/herdguard/internal/encounter"
	"github.com/udisondev/herdguard/internal/geom"
	"github.com/udisondev/herdguard/internal/testutil"
)

func newTestLoop(t *testing.T) (*frameLoop, *outcome) {
	t.Helper()

	cfg := config.DefaultSession()
	cfg.Seed = 5
	cfg.Wave.Placement.MaxRadius = 14

	var out outcome
	s, err := encounter.New(cfg, encounter.Options{
		Cues: logCues{},
		Hooks: encounter.Hooks{
			OnEnemyDeath:  out.enemyKilled,
			OnPlayerDeath: out.playerKilled,
			OnAnimalDeath: out.animalKilled,
		},
	})
	require.NoError(t, err)

	p, err := s.RegisterPlayer()
	require.NoError(t, err)

	return &frameLoop{
		session: s,
		pilot:   newPilot(s, p),
		outcome: &out,
		step:    testutil.Frame,
	}, &out
}

func TestPilot_KillsFirstEnemy(t *testing.T) {
	loop, out := newTestLoop(t)
	require.NoError(t, loop.session.Start())

	for loop.session.Now() < 20*time.Second && out.kills == 0 {
		require.False(t, loop.frame(testutil.Frame), "game ended early")
	}

	assert.Equal(t, 1, out.kills)
	assert.True(t, loop.session.Player().Alive())
}

func TestPilot_ReturnsToGuardPost(t *testing.T) {
	loop, _ := newTestLoop(t)
	player := loop.session.Player()
	guard := player.Position()

	player.Body().SetPosition(guard.Add(geom.V3(3, 0, 0)))
	for range 120 {
		loop.frame(testutil.Frame)
	}

	testutil.AssertVecNear(t, guard, player.Position(), 1e-6)
}

func TestPilot_RegeneratesOutOfCombat(t *testing.T) {
	loop, _ := newTestLoop(t)
	res := loop.session.Resolver()
	res.SetStanceDuration(500 * time.Millisecond)
	player := loop.session.Player()

	_, err := res.ApplyDamage(player.ID(), "wolf", 40)
	require.NoError(t, err)
	hurt := player.Vitality().Current()

	// still inside the stance window
	for range 10 {
		loop.frame(testutil.Frame)
	}
	assert.InDelta(t, hurt, player.Vitality().Current(), 1e-9)

	for range 120 {
		loop.frame(testutil.Frame)
	}
	assert.Greater(t, player.Vitality().Current(), hurt)
	assert.LessOrEqual(t, player.Vitality().Current(), player.Vitality().Maximum())
}

func TestFrameLoop_StopsAtDuration(t *testing.T) {
	loop, _ := newTestLoop(t)
	loop.duration = time.Second

	frames := 0
	for !loop.frame(testutil.Frame) {
		frames++
		require.Less(t, frames, 1000)
	}
	assert.GreaterOrEqual(t, loop.session.Now(), time.Second)
}

func TestOutcome_Over(t *testing.T) {
	loop, out := newTestLoop(t)
	assert.False(t, out.over(loop.session))

	for _, a := range loop.session.World().Protectables() {
		a.Hit(100)
	}
	assert.True(t, out.over(loop.session))
	assert.Equal(t, loop.session.Config().World.HerdSize, out.animalsLost)
}
