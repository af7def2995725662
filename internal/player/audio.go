package player

import "github.com/llehouerou/reel/internal/renderer"

// SetVolume sets the audio volume. Values are clamped to [0, 1].
func (p *Player) SetVolume(volume float64) error {
	if err := p.guard(); err != nil {
		return err
	}
	if volume < 0 {
		volume = 0
	} else if volume > 1 {
		volume = 1
	}
	if volume == p.volume {
		return nil
	}
	p.volume = volume
	p.sendToRenderers(renderer.TrackAudio, renderer.KindSetVolume, volume)
	return nil
}

// Volume returns the current audio volume.
func (p *Player) Volume() float64 {
	if err := p.verifyControlGoroutine(); err != nil {
		return 0
	}
	return p.volume
}

// SetAudioAttributes forwards output routing attributes to the audio
// renderers.
func (p *Player) SetAudioAttributes(attrs renderer.AudioAttributes) error {
	if err := p.guard(); err != nil {
		return err
	}
	p.sendToRenderers(renderer.TrackAudio, renderer.KindSetAudioAttributes, attrs)
	return nil
}

// SetSkipSilence toggles silence skipping on the audio renderers.
func (p *Player) SetSkipSilence(enabled bool) error {
	if err := p.guard(); err != nil {
		return err
	}
	p.sendToRenderers(renderer.TrackAudio, renderer.KindSetSkipSilence, enabled)
	return nil
}

// SetAudioSessionID forwards the platform audio session to both the
// audio and video renderers; tunneled video playback needs it too.
func (p *Player) SetAudioSessionID(id int) error {
	if err := p.guard(); err != nil {
		return err
	}
	p.sendToRenderers(renderer.TrackAudio, renderer.KindSetAudioSessionID, id)
	p.sendToRenderers(renderer.TrackVideo, renderer.KindSetAudioSessionID, id)
	return nil
}

// SetAuxEffectInfo attaches an auxiliary audio effect to the audio
// renderers.
func (p *Player) SetAuxEffectInfo(info renderer.AuxEffectInfo) error {
	if err := p.guard(); err != nil {
		return err
	}
	p.sendToRenderers(renderer.TrackAudio, renderer.KindSetAuxEffect, info)
	return nil
}
