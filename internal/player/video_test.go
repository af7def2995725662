package player

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/logging"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/renderer"
)

func surfaceKinds(cmds []renderer.ReceivedCommand) []any {
	var out []any
	for _, c := range cmds {
		if c.Kind == renderer.KindSetSurface {
			out = append(out, c.Payload)
		}
	}
	return out
}

func TestSetVideoSurface_FansOutToVideoRenderers(t *testing.T) {
	env := newTestEnv(t)
	s := &renderer.FakeSurface{}

	require.NoError(t, env.p.SetVideoSurface(s, false))

	require.Eventually(t, func() bool {
		return len(surfaceKinds(env.video.Received())) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []any{s}, surfaceKinds(env.video.Received()))
	assert.Empty(t, env.audio.Received(), "audio renderers never see surfaces")
}

func TestSetVideoSurface_ReleasesOwnedPredecessor(t *testing.T) {
	env := newTestEnv(t)
	owned := &renderer.FakeSurface{}
	next := &renderer.FakeSurface{}

	require.NoError(t, env.p.SetVideoSurface(owned, true))
	require.NoError(t, env.p.SetVideoSurface(next, false))

	assert.Equal(t, 1, owned.Released())
	assert.Equal(t, 0, next.Released())
	assert.Equal(t, []any{owned, next}, surfaceKinds(env.video.Received()))
}

func TestSetVideoSurface_SameSurfaceIsNotAReplacement(t *testing.T) {
	env := newTestEnv(t)
	s := &renderer.FakeSurface{}

	require.NoError(t, env.p.SetVideoSurface(s, true))
	require.NoError(t, env.p.SetVideoSurface(s, true))

	// Re-attaching the current surface forwards it again but must not
	// release it: it is still the active output.
	require.Eventually(t, func() bool {
		return len(surfaceKinds(env.video.Received())) == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, s.Released())
	assert.Nil(t, env.p.PlayerError())
}

func TestClearVideoSurface(t *testing.T) {
	env := newTestEnv(t)
	owned := &renderer.FakeSurface{}
	require.NoError(t, env.p.SetVideoSurface(owned, true))

	require.NoError(t, env.p.ClearVideoSurface())

	assert.Equal(t, 1, owned.Released())
	assert.Equal(t, []any{owned, nil}, surfaceKinds(env.video.Received()))
}

func TestSetVideoSurface_FirstAttachNeverTimesOut(t *testing.T) {
	cfg := config.Default().Player
	cfg.DetachSurfaceTimeout = config.Duration(30 * time.Millisecond)
	env := newTestEnvWithConfig(t, cfg)
	env.video.Delay[renderer.KindSetSurface] = 200 * time.Millisecond
	s := &renderer.FakeSurface{}

	// Nothing is attached yet, so there is no hand-off to wait for
	// even on a renderer slower than the detach timeout.
	require.NoError(t, env.p.SetVideoSurface(s, false))

	assert.Nil(t, env.p.PlayerError())
	assert.Equal(t, playback.StateIdle, env.p.State())
	require.Eventually(t, func() bool {
		return len(surfaceKinds(env.video.Received())) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestSetVideoSurface_ReplacementTimeoutFailsPlayer(t *testing.T) {
	cfg := config.Default().Player
	cfg.DetachSurfaceTimeout = config.Duration(30 * time.Millisecond)
	env := newTestEnvWithConfig(t, cfg)
	first := &renderer.FakeSurface{}
	require.NoError(t, env.p.SetVideoSurface(first, false))
	require.Eventually(t, func() bool {
		return len(surfaceKinds(env.video.Received())) == 1
	}, time.Second, 5*time.Millisecond)
	env.video.Delay[renderer.KindSetSurface] = 300 * time.Millisecond

	var errKinds []playback.ErrorKind
	env.p.AddListener(&Listener{
		OnPlayerError: func(err *playback.Error) {
			if err != nil {
				errKinds = append(errKinds, err.Kind)
			}
		},
	})

	err := env.p.SetVideoSurface(&renderer.FakeSurface{}, false)
	require.Error(t, err)

	assert.Equal(t, playback.StateIdle, env.p.State())
	require.NotNil(t, env.p.PlayerError())
	assert.Equal(t, playback.ErrorKindTimeout, env.p.PlayerError().Kind)
	assert.Equal(t, []playback.ErrorKind{playback.ErrorKindTimeout}, errKinds)
}

func TestReportSurfaceSizeChanged(t *testing.T) {
	env := newTestEnv(t)

	var sizes [][2]int
	env.p.AddListener(&Listener{
		OnSurfaceSizeChanged: func(w, h int) { sizes = append(sizes, [2]int{w, h}) },
	})

	env.p.ReportSurfaceSizeChanged(1920, 1080)
	env.p.ReportSurfaceSizeChanged(1920, 1080)
	env.p.ReportSurfaceSizeChanged(1280, 720)
	require.NoError(t, env.p.ProcessUpdates())

	assert.Equal(t, [][2]int{{1920, 1080}, {1280, 720}}, sizes)
}

func TestRelease(t *testing.T) {
	audio := renderer.NewFake(renderer.TrackAudio)
	video := renderer.NewFake(renderer.TrackVideo)
	p := New(config.Default().Player, logging.Discard(), []renderer.Renderer{audio, video})
	owned := &renderer.FakeSurface{}
	require.NoError(t, p.SetVideoSurface(owned, true))

	require.NoError(t, p.Release())

	assert.Equal(t, 1, owned.Released())
	assert.Equal(t, []any{owned, nil}, surfaceKinds(video.Received()))

	// Released players reject all operations.
	assert.ErrorIs(t, p.Prepare(), ErrReleased)
	assert.ErrorIs(t, p.SetVolume(0.5), ErrReleased)

	// A second release is a no-op.
	require.NoError(t, p.Release())
}

func TestVolume(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.p.SetVolume(0.5))
	assert.Equal(t, 0.5, env.p.Volume())

	// Out-of-range values clamp.
	require.NoError(t, env.p.SetVolume(1.7))
	assert.Equal(t, 1.0, env.p.Volume())
	require.NoError(t, env.p.SetVolume(-2))
	assert.Equal(t, 0.0, env.p.Volume())

	// Setting the current volume sends nothing.
	require.NoError(t, env.p.SetVolume(0))

	collect := func() []any {
		var volumes []any
		for _, c := range env.audio.Received() {
			if c.Kind == renderer.KindSetVolume {
				volumes = append(volumes, c.Payload)
			}
		}
		return volumes
	}
	require.Eventually(t, func() bool { return len(collect()) == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []any{0.5, 1.0, 0.0}, collect())
	assert.Empty(t, env.video.Received(), "volume goes to audio renderers only")
}

func TestSetAudioSessionID_ReachesAudioAndVideo(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.p.SetAudioSessionID(7))

	found := func(cmds []renderer.ReceivedCommand) bool {
		for _, c := range cmds {
			if c.Kind == renderer.KindSetAudioSessionID && c.Payload == 7 {
				return true
			}
		}
		return false
	}
	require.Eventually(t, func() bool {
		return found(env.audio.Received()) && found(env.video.Received())
	}, time.Second, 5*time.Millisecond)
}

func TestWrongGoroutine_FailFast(t *testing.T) {
	cfg := config.Default().Player
	cfg.FailOnWrongGoroutine = true
	env := newTestEnvWithConfig(t, cfg)

	errs := make(chan error, 1)
	go func() { errs <- env.p.Prepare() }()
	assert.ErrorIs(t, <-errs, ErrWrongGoroutine)

	// Off-goroutine reads return zero values instead of state.
	states := make(chan playback.State, 1)
	go func() { states <- env.p.State() }()
	assert.Equal(t, playback.StateIdle, <-states)
}

func TestWrongGoroutine_WarnModeStillWorks(t *testing.T) {
	env := newTestEnv(t)

	errs := make(chan error, 1)
	go func() { errs <- env.p.Prepare() }()
	assert.NoError(t, <-errs)
}
