package playlist

import (
	"github.com/samber/lo"

	"github.com/llehouerou/reel/internal/timeline"
)

// BuildTimeline derives a fresh timeline snapshot from the items: one
// window spanning one period per item. Items whose duration is not yet
// known and that are not live produce placeholder windows.
func BuildTimeline(items []Item, opts ...timeline.Option) (*timeline.Timeline, error) {
	if len(items) == 0 {
		return timeline.Empty, nil
	}
	windows := lo.Map(items, func(item Item, i int) timeline.Window {
		return timeline.Window{
			UID:                   item.ID,
			MediaID:               item.ID,
			Media:                 item,
			PresentationStartTime: item.StartTime,
			StartTime:             item.StartTime,
			IsSeekable:            item.Seekable,
			IsDynamic:             item.Dynamic || item.Live != nil,
			Live:                  item.Live,
			IsPlaceholder:         item.Duration == timeline.TimeUnset && item.Live == nil,
			FirstPeriodIndex:      i,
			LastPeriodIndex:       i,
			DefaultPosition:       item.DefaultPosition,
			Duration:              item.Duration,
			PositionInFirstPeriod: 0,
		}
	})
	periods := lo.Map(items, func(item Item, i int) timeline.Period {
		return timeline.Period{
			ID:          item.Title,
			UID:         item.ID,
			WindowIndex: i,
			Duration:    item.Duration,
			Ads:         item.Ads,
		}
	})
	return timeline.New(windows, periods, opts...)
}
