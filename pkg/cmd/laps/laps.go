package laps

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openlaps/vbo-session-go/pkg/cmd/loader"
	lapdetect "github.com/openlaps/vbo-session-go/pkg/laps"
)

func NewLapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "laps file",
		Short: "display the laps and sectors of a logger file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return displayLaps(cmd.Context(), args[0])
		},
	}
	return cmd
}

func displayLaps(ctx context.Context, path string) error {
	session, err := loader.LoadSession(ctx, path)
	if err != nil {
		return err
	}
	fmt.Printf("%-4s %-10s %-10s %-10s %-9s %-6s %s\n",
		"Lap", "Start", "End", "Time", "Distance", "Valid", "Label")
	for _, lap := range session.Laps {
		fmt.Printf("%-4d %-10.3f %-10.3f %-10.3f %-9.0f %-6t %s\n",
			lap.LapNumber, lap.StartTime, lap.EndTime, lap.LapTime,
			lap.Distance, lap.IsValid, lap.Label)
		for _, sector := range lap.Sectors {
			fmt.Printf("     S%d %.3fs (%.0fm-%.0fm)\n",
				sector.SectorNumber, sector.SectorTime,
				sector.StartDistance, sector.EndDistance)
		}
	}
	fmt.Printf("\nAverage valid lap: %.3fs\n", lapdetect.AverageLapTime(session.Laps))
	for num, best := range lapdetect.BestSectorTimes(session.Laps) {
		fmt.Printf("Best S%d: %.3fs\n", num, best)
	}
	return nil
}
