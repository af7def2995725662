// Command reelsim runs a scripted playback session against fake
// renderers and prints the events the player emits. It exists to
// exercise the playback core end to end without real media output.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/llehouerou/reel/internal/ads"
	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/event"
	"github.com/llehouerou/reel/internal/logging"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/player"
	"github.com/llehouerou/reel/internal/playlist"
	"github.com/llehouerou/reel/internal/renderer"
	"github.com/llehouerou/reel/internal/timeline"
)

// noopSurface stands in for a real video output target. The session
// uses distinct pointers so the second attach replaces the first.
type noopSurface struct{}

func (*noopSurface) Release() {}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           "reelsim",
		Short:         "Run a scripted playback session against fake renderers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	log := logging.New(cfg.Logging)
	out := cmd.OutOrStdout()

	audio := renderer.NewFake(renderer.TrackAudio)
	video := renderer.NewFake(renderer.TrackVideo)
	p := player.New(cfg.Player, log, []renderer.Renderer{audio, video})
	defer p.Release()

	p.AddListener(&player.Listener{
		OnTimelineChanged: func(tl *timeline.Timeline, reason player.TimelineChangeReason) {
			fmt.Fprintf(out, "timeline changed: %d windows (reason %d)\n", tl.WindowCount(), reason)
		},
		OnMediaItemTransition: func(item *playlist.Item, reason player.MediaItemTransitionReason) {
			title := "<none>"
			if item != nil {
				title = item.Title
			}
			fmt.Fprintf(out, "item transition: %s (reason %d)\n", title, reason)
		},
		OnPlaybackStateChanged: func(s playback.State) {
			fmt.Fprintf(out, "state: %s\n", s)
		},
		OnIsPlayingChanged: func(playing bool) {
			fmt.Fprintf(out, "isPlaying: %v\n", playing)
		},
		OnPositionDiscontinuity: func(reason player.DiscontinuityReason) {
			fmt.Fprintf(out, "discontinuity (reason %d)\n", reason)
		},
		OnEvents: func(p *player.Player, set event.Set) {
			fmt.Fprintf(out, "-- unit: %d aspects\n", set.Len())
		},
	})

	schedule, err := ads.NewSchedule(uuid.NewString(), 0, 40*time.Minute, ads.PostRoll)
	if err != nil {
		return err
	}
	items := []playlist.Item{
		{Title: "intro", URI: "file:///media/intro.mkv", Duration: 30 * time.Second, Seekable: true},
		{Title: "feature", URI: "file:///media/feature.mkv", Duration: 95 * time.Minute, Seekable: true, Ads: schedule},
		{Title: "live tail", URI: "https://example.test/tail.m3u8", Live: &timeline.LiveConfiguration{TargetOffset: 3 * time.Second}, Duration: timeline.TimeUnset},
	}
	if err := p.SetMediaItems(items...); err != nil {
		return err
	}
	if err := p.Prepare(); err != nil {
		return err
	}
	if err := p.Play(); err != nil {
		return err
	}

	// The fake renderers report readiness the way a real playback
	// loop would.
	p.ReportRendererState(playback.StateReady)
	if err := p.ProcessUpdates(); err != nil {
		return err
	}

	if err := p.SeekTo(1, 10*time.Minute); err != nil {
		return err
	}
	if err := p.SetVideoSurface(&noopSurface{}, true); err != nil {
		return err
	}
	if err := p.SetVideoSurface(&noopSurface{}, false); err != nil {
		return err
	}
	p.ReportEndOfWindow()
	if err := p.ProcessUpdates(); err != nil {
		return err
	}
	if err := p.Stop(); err != nil {
		return err
	}
	return nil
}
