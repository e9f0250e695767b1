package compare

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openlaps/vbo-session-go/pkg/cmd/loader"
	"github.com/openlaps/vbo-session-go/pkg/compare"
	"github.com/openlaps/vbo-session-go/pkg/config"
	"github.com/openlaps/vbo-session-go/pkg/model"
)

var progress float64

func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare main other...",
		Short: "synchronize sessions and print the delta summary",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compareSessions(cmd.Context(), args[0], args[1:])
		},
	}
	cmd.Flags().Float64Var(&progress, "progress", 0.5,
		"normalized session progress (0..1) to compare at")
	return cmd
}

func compareSessions(ctx context.Context, mainPath string, otherPaths []string) error {
	main, err := loader.LoadSession(ctx, mainPath)
	if err != nil {
		return err
	}
	comparators := make([]*model.Session, 0, len(otherPaths))
	for _, path := range otherPaths {
		session, sErr := loader.LoadSession(ctx, path)
		if sErr != nil {
			return sErr
		}
		comparators = append(comparators, session)
	}

	sync, err := compare.NewSynchronizer(main, comparators,
		compare.WithAllowDifferentTracks(config.AllowDifferentTracks),
		compare.WithProgressTolerance(config.ProgressTolerance))
	if err != nil {
		return err
	}
	if err := sync.SetMainProgress(progress); err != nil {
		return err
	}

	mainPos := sync.MainPosition()
	fmt.Printf("%s @ %.1f%%: lap %d, t=%.3fs, v=%.1f\n",
		main.FilePath, mainPos.NormalizedProgress*100,
		mainPos.LapNumber, mainPos.Sample.Time, mainPos.Sample.Velocity)
	for _, delta := range sync.Deltas() {
		fmt.Printf("%s: %+.3fs (lap %d, %.1f%%, v=%.1f)\n",
			delta.FilePath, delta.TimeDelta, delta.LapNumber,
			delta.Progress*100, delta.Velocity)
	}
	return nil
}
