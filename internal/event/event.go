// Package event provides the set of changed player aspects that is
// accumulated during one processing unit and handed to listeners in a
// single batch.
package event

// Aspect identifies one aspect of the player that changed.
type Aspect int

const (
	AspectTimeline Aspect = iota
	AspectMediaItem
	AspectTracks
	AspectStaticMetadata
	AspectIsLoading
	AspectPlaybackState
	AspectPlayWhenReady
	AspectSuppressionReason
	AspectIsPlaying
	AspectRepeatMode
	AspectShuffleMode
	AspectPlayerError
	AspectPositionDiscontinuity
	AspectPlaybackParameters

	numAspects
)

// String returns the aspect name.
func (a Aspect) String() string {
	switch a {
	case AspectTimeline:
		return "Timeline"
	case AspectMediaItem:
		return "MediaItem"
	case AspectTracks:
		return "Tracks"
	case AspectStaticMetadata:
		return "StaticMetadata"
	case AspectIsLoading:
		return "IsLoading"
	case AspectPlaybackState:
		return "PlaybackState"
	case AspectPlayWhenReady:
		return "PlayWhenReady"
	case AspectSuppressionReason:
		return "SuppressionReason"
	case AspectIsPlaying:
		return "IsPlaying"
	case AspectRepeatMode:
		return "RepeatMode"
	case AspectShuffleMode:
		return "ShuffleMode"
	case AspectPlayerError:
		return "PlayerError"
	case AspectPositionDiscontinuity:
		return "PositionDiscontinuity"
	case AspectPlaybackParameters:
		return "PlaybackParameters"
	default:
		return "Unknown"
	}
}

// Set is a collection of distinct changed aspects. The zero value is
// an empty set. Sets are built fresh for each processing unit and
// discarded after dispatch; no iteration order is guaranteed.
type Set struct {
	bits uint32
}

// Add inserts an aspect. Duplicates collapse.
func (s *Set) Add(a Aspect) {
	s.bits |= 1 << uint(a)
}

// Merge inserts every aspect of o.
func (s *Set) Merge(o Set) {
	s.bits |= o.bits
}

// Contains reports whether the aspect is in the set.
func (s Set) Contains(a Aspect) bool {
	return s.bits&(1<<uint(a)) != 0
}

// ContainsAny reports whether any of the given aspects is in the set.
func (s Set) ContainsAny(aspects ...Aspect) bool {
	for _, a := range aspects {
		if s.Contains(a) {
			return true
		}
	}
	return false
}

// Aspects returns the members of the set.
func (s Set) Aspects() []Aspect {
	var out []Aspect
	for a := Aspect(0); a < numAspects; a++ {
		if s.Contains(a) {
			out = append(out, a)
		}
	}
	return out
}

// Len returns the number of members.
func (s Set) Len() int {
	n := 0
	for a := Aspect(0); a < numAspects; a++ {
		if s.Contains(a) {
			n++
		}
	}
	return n
}

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool {
	return s.bits == 0
}
