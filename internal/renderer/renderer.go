// Package renderer defines the contract the playback core expects
// from its renderer collaborators. Renderers do the actual decoding
// and output elsewhere; the core only addresses them by track type
// through the dispatch channel.
package renderer

// TrackType is the fixed track type a renderer reports.
type TrackType int

const (
	TrackAudio TrackType = iota
	TrackVideo
	TrackText
	TrackMetadata
	TrackCameraMotion
)

// String returns the track type name.
func (t TrackType) String() string {
	switch t {
	case TrackAudio:
		return "Audio"
	case TrackVideo:
		return "Video"
	case TrackText:
		return "Text"
	case TrackMetadata:
		return "Metadata"
	case TrackCameraMotion:
		return "CameraMotion"
	default:
		return "Unknown"
	}
}

// Command kinds accepted by renderers through the dispatch channel.
const (
	KindSetSurface = iota
	KindSetVolume
	KindSetAudioAttributes
	KindSetScalingMode
	KindSetSkipSilence
	KindSetAudioSessionID
	KindSetAuxEffect
	KindSetFrameMetadataListener
	KindSetCameraMotionListener
)

// Renderer receives typed commands on the internal execution path. It
// satisfies the dispatch target contract.
type Renderer interface {
	TrackType() TrackType
	HandleCommand(kind int, payload any) error
}

// Surface is an abstract video output target. Release frees the
// underlying resource; the core calls it only for surfaces it owns.
type Surface interface {
	Release()
}

// AudioAttributes describe how audio output should be routed.
type AudioAttributes struct {
	ContentType int
	Usage       int
	Flags       int
}

// AuxEffectInfo attaches an auxiliary audio effect.
type AuxEffectInfo struct {
	EffectID  int
	SendLevel float64
}
