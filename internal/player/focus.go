package player

import "github.com/llehouerou/reel/internal/playback"

// FocusDirective is the outcome of an audio-routing arbitration.
type FocusDirective int

const (
	// FocusAllow lets playback proceed.
	FocusAllow FocusDirective = iota

	// FocusSuppressTransient keeps the play intent but suppresses
	// playback until focus returns.
	FocusSuppressTransient

	// FocusDeny refuses the play intent entirely.
	FocusDeny
)

// FocusArbiter decides whether a play intent may proceed. The core
// never originates suppression itself; it only applies the directive.
type FocusArbiter interface {
	Decide(playWhenReady bool, state playback.State) FocusDirective
}

// applyFocus applies the arbitration outcome for the given intent to
// the state machine.
func (p *Player) applyFocus(playWhenReady bool) {
	directive := FocusAllow
	if playWhenReady && p.arbiter != nil {
		directive = p.arbiter.Decide(playWhenReady, p.machine.State().State)
	}
	switch directive {
	case FocusDeny:
		p.machine.SetPlayWhenReady(false, playback.SuppressionNone)
	case FocusSuppressTransient:
		p.machine.SetPlayWhenReady(true, playback.SuppressionTransientAudioFocusLoss)
	default:
		p.machine.SetPlayWhenReady(playWhenReady, playback.SuppressionNone)
	}
}

// ReevaluateAudioFocus re-runs arbitration for the current intent.
// Call it whenever the routing policy or the suppression source
// changes; clearing a suppression while ready fires exactly one
// isPlaying change.
func (p *Player) ReevaluateAudioFocus() error {
	if err := p.guard(); err != nil {
		return err
	}
	p.applyFocus(p.machine.State().PlayWhenReady)
	p.flush()
	return nil
}
