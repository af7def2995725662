package player

import (
	"errors"

	"github.com/llehouerou/reel/internal/dispatch"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/renderer"
)

// SetVideoSurface hands a new video output target to all video
// renderers. When takeOwnership is set the player releases the surface
// once it is replaced or the player is released.
//
// Replacing an existing surface blocks until every renderer confirmed
// the hand-off: the previous surface may be destroyed as soon as this
// call returns, and rendering into a dead surface must not continue.
// A replacement that is not confirmed within DetachSurfaceTimeout
// fails the player. A first attach has nothing to detach and never
// blocks.
func (p *Player) SetVideoSurface(surface renderer.Surface, takeOwnership bool) error {
	if err := p.guard(); err != nil {
		return err
	}
	return p.setSurfaceInternal(surface, takeOwnership)
}

// ClearVideoSurface detaches the current video surface from all video
// renderers.
func (p *Player) ClearVideoSurface() error {
	if err := p.guard(); err != nil {
		return err
	}
	return p.setSurfaceInternal(nil, false)
}

func (p *Player) setSurfaceInternal(surface renderer.Surface, takeOwnership bool) error {
	replacing := p.surface != nil && p.surface != surface
	cmds := p.sendToRenderers(renderer.TrackVideo, renderer.KindSetSurface, surface)

	var err error
	if replacing {
		err = dispatch.AwaitAll(cmds, p.cfg.DetachSurfaceTimeout.Std())
	}

	old, ownedOld := p.surface, p.ownsSurface
	p.surface = surface
	p.ownsSurface = takeOwnership
	if replacing && ownedOld {
		old.Release()
	}

	if err != nil {
		perr := playback.NewSourceError(err)
		if errors.Is(err, dispatch.ErrDeliveryTimeout) {
			perr = playback.NewTimeoutError("detach surface", err)
		}
		p.machine.Fail(perr)
		p.flush()
		return perr
	}
	p.flush()
	return nil
}

// ReportSurfaceSizeChanged is called by the video path when the output
// surface dimensions change.
func (p *Player) ReportSurfaceSizeChanged(width, height int) {
	p.postUpdate(func(p *Player) {
		if p.surfaceW == width && p.surfaceH == height {
			return
		}
		p.surfaceW = width
		p.surfaceH = height
		for _, l := range p.snapshotListeners() {
			if l.OnSurfaceSizeChanged != nil {
				l.OnSurfaceSizeChanged(width, height)
			}
		}
	})
}

// SetVideoScalingMode forwards the scaling mode to the video
// renderers.
func (p *Player) SetVideoScalingMode(mode int) error {
	if err := p.guard(); err != nil {
		return err
	}
	p.sendToRenderers(renderer.TrackVideo, renderer.KindSetScalingMode, mode)
	return nil
}

// SetVideoFrameMetadataListener routes frame metadata callbacks to the
// given listener on the video renderers.
func (p *Player) SetVideoFrameMetadataListener(listener any) error {
	if err := p.guard(); err != nil {
		return err
	}
	p.sendToRenderers(renderer.TrackVideo, renderer.KindSetFrameMetadataListener, listener)
	return nil
}

// SetCameraMotionListener routes camera motion metadata to the given
// listener on the camera motion renderers.
func (p *Player) SetCameraMotionListener(listener any) error {
	if err := p.guard(); err != nil {
		return err
	}
	p.sendToRenderers(renderer.TrackCameraMotion, renderer.KindSetCameraMotionListener, listener)
	return nil
}
