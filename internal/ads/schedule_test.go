package ads

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedule(t *testing.T) {
	s, err := NewSchedule("src", 10*time.Second, 30*time.Second, PostRoll)
	require.NoError(t, err)

	assert.Equal(t, "src", s.ID())
	assert.Equal(t, 3, s.GroupCount())
	assert.Equal(t, 10*time.Second, s.GroupTime(0))
	assert.Equal(t, PostRoll, s.GroupTime(2))
	for i := range 3 {
		assert.Equal(t, CountUnset, s.AdCount(i))
		assert.True(t, s.HasUnplayedAds(i), "group %d", i)
	}
}

func TestNewSchedule_UnsortedTimes(t *testing.T) {
	_, err := NewSchedule("src", 30*time.Second, 10*time.Second)
	assert.Error(t, err)
}

func TestWithAdCount(t *testing.T) {
	s, err := NewSchedule("src", 10*time.Second)
	require.NoError(t, err)

	s2, err := s.WithAdCount(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, s2.AdCount(0))
	assert.Equal(t, TimeUnset, s2.AdDuration(0, 0))

	// The original is untouched.
	assert.Equal(t, CountUnset, s.AdCount(0))

	// The count is immutable once known.
	_, err = s2.WithAdCount(0, 3)
	assert.Error(t, err)
	s3, err := s2.WithAdCount(0, 2)
	require.NoError(t, err)
	assert.True(t, s3.Equal(s2))

	_, err = s.WithAdCount(0, -1)
	assert.Error(t, err)
}

func TestAdStateProgression(t *testing.T) {
	s, err := NewSchedule("src", time.Second)
	require.NoError(t, err)
	s, err = s.WithAdCount(0, 3)
	require.NoError(t, err)

	assert.Equal(t, 0, s.FirstAdToPlay(0))

	s, err = s.WithAvailableAd(0, 0)
	require.NoError(t, err)
	s, err = s.WithPlayedAd(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, s.FirstAdToPlay(0))

	s, err = s.WithSkippedAd(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, s.FirstAdToPlay(0))
	assert.True(t, s.HasUnplayedAds(0))

	s, err = s.WithPlayedAd(0, 2)
	require.NoError(t, err)
	assert.False(t, s.HasUnplayedAds(0))
	assert.Equal(t, 3, s.FirstAdToPlay(0))
}

func TestAdState_NeverReverts(t *testing.T) {
	s, err := NewSchedule("src", time.Second)
	require.NoError(t, err)
	s, err = s.WithAdCount(0, 1)
	require.NoError(t, err)
	s, err = s.WithPlayedAd(0, 0)
	require.NoError(t, err)

	_, err = s.WithAvailableAd(0, 0)
	assert.ErrorIs(t, err, ErrStateReverted)
	_, err = s.WithSkippedAd(0, 0)
	assert.ErrorIs(t, err, ErrStateReverted)

	// Re-marking the same terminal state is fine.
	_, err = s.WithPlayedAd(0, 0)
	assert.NoError(t, err)
}

func TestWithAdState_GrowsUnknownCountGroup(t *testing.T) {
	s, err := NewSchedule("src", time.Second)
	require.NoError(t, err)

	// Marking ad 2 in a group with unknown count grows the states.
	s, err = s.WithPlayedAd(0, 2)
	require.NoError(t, err)
	assert.Equal(t, CountUnset, s.AdCount(0))
	assert.True(t, s.HasUnplayedAds(0))
	assert.Equal(t, 0, s.FirstAdToPlay(0))

	// With a known count the same index is rejected.
	s2, err := NewSchedule("src", time.Second)
	require.NoError(t, err)
	s2, err = s2.WithAdCount(0, 2)
	require.NoError(t, err)
	_, err = s2.WithPlayedAd(0, 2)
	assert.Error(t, err)
}

func TestNextAdToPlay_SkipsTerminalStates(t *testing.T) {
	s, err := NewSchedule("src", time.Second)
	require.NoError(t, err)
	s, err = s.WithAdCount(0, 4)
	require.NoError(t, err)
	s, err = s.WithPlayedAd(0, 1)
	require.NoError(t, err)
	s, err = s.WithSkippedAd(0, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, s.NextAdToPlay(0, 0))
	assert.Equal(t, 0, s.FirstAdToPlay(0))
}

func TestWithAdDurations(t *testing.T) {
	s, err := NewSchedule("src", time.Second)
	require.NoError(t, err)
	s, err = s.WithAdCount(0, 2)
	require.NoError(t, err)

	s, err = s.WithAdDurations(0, 5*time.Second, 15*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, s.AdDuration(0, 0))
	assert.Equal(t, 15*time.Second, s.AdDuration(0, 1))

	_, err = s.WithAdDurations(0, time.Second)
	assert.Error(t, err)
}

func TestAdDuration_UnknownCount(t *testing.T) {
	s, err := NewSchedule("src", time.Second)
	require.NoError(t, err)
	assert.Equal(t, TimeUnset, s.AdDuration(0, 0))
}

func TestResumePosition(t *testing.T) {
	s, err := NewSchedule("src", time.Second)
	require.NoError(t, err)
	s, err = s.WithAdCount(0, 2)
	require.NoError(t, err)

	s = s.WithResumePosition(3 * time.Second)
	assert.Equal(t, 3*time.Second, s.ResumePosition())

	// Completing an ad clears the resume offset.
	s, err = s.WithPlayedAd(0, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), s.ResumePosition())
}

func TestGroupIndexForPosition(t *testing.T) {
	s, err := NewSchedule("src", 10*time.Second, 30*time.Second, PostRoll)
	require.NoError(t, err)
	dur := time.Minute

	assert.Equal(t, IndexUnset, s.GroupIndexForPosition(5*time.Second, dur))
	assert.Equal(t, 0, s.GroupIndexForPosition(10*time.Second, dur))
	assert.Equal(t, 0, s.GroupIndexForPosition(29*time.Second, dur))
	assert.Equal(t, 1, s.GroupIndexForPosition(45*time.Second, dur))

	// The post-roll is reached only at the period end.
	assert.Equal(t, 2, s.GroupIndexForPosition(dur, dur))

	// With an unknown duration the post-roll is unreachable.
	assert.Equal(t, 1, s.GroupIndexForPosition(time.Hour, TimeUnset))
}

func TestGroupIndexForPosition_SkipsPlayedGroups(t *testing.T) {
	s, err := NewSchedule("src", 10*time.Second)
	require.NoError(t, err)
	s, err = s.WithAdCount(0, 1)
	require.NoError(t, err)
	s, err = s.WithPlayedAd(0, 0)
	require.NoError(t, err)

	assert.Equal(t, IndexUnset, s.GroupIndexForPosition(20*time.Second, time.Minute))
}

func TestGroupIndexAfterPosition(t *testing.T) {
	s, err := NewSchedule("src", 10*time.Second, 30*time.Second, PostRoll)
	require.NoError(t, err)
	dur := time.Minute

	assert.Equal(t, 0, s.GroupIndexAfterPosition(5*time.Second, dur))
	assert.Equal(t, 1, s.GroupIndexAfterPosition(10*time.Second, dur))

	// The post-roll counts as after any mid-period position.
	assert.Equal(t, 2, s.GroupIndexAfterPosition(45*time.Second, dur))
	assert.Equal(t, 2, s.GroupIndexAfterPosition(45*time.Second, TimeUnset))
}

func TestNone(t *testing.T) {
	assert.Equal(t, 0, None.GroupCount())
	assert.Equal(t, IndexUnset, None.GroupIndexForPosition(0, time.Minute))
	assert.Equal(t, IndexUnset, None.GroupIndexAfterPosition(0, time.Minute))
	assert.True(t, None.Equal(Schedule{}))
}

func TestEqual(t *testing.T) {
	a, err := NewSchedule("src", time.Second)
	require.NoError(t, err)
	b, err := NewSchedule("src", time.Second)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	c, err := b.WithAdCount(0, 1)
	require.NoError(t, err)
	assert.False(t, a.Equal(c))

	d, err := NewSchedule("other", time.Second)
	require.NoError(t, err)
	assert.False(t, a.Equal(d))
}
