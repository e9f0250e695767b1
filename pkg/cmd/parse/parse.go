package parse

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openlaps/vbo-session-go/log"
	"github.com/openlaps/vbo-session-go/pkg/cmd/loader"
)

func NewParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse file",
		Short: "parse a logger file and print a session summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return parseFile(cmd.Context(), args[0])
		},
	}
	return cmd
}

func parseFile(ctx context.Context, path string) error {
	logger := log.GetFromContext(ctx).Named("parse")
	session, err := loader.LoadSession(ctx, path)
	if err != nil {
		return err
	}
	logger.Debug("session parsed", log.String("file", path))

	fmt.Printf("File:       %s\n", session.FilePath)
	fmt.Printf("Created:    %s\n", session.Header.CreationDate.Format("2006-01-02 15:04:05"))
	fmt.Printf("Channels:   %d\n", len(session.Header.Channels))
	fmt.Printf("Samples:    %d\n", len(session.DataPoints))
	fmt.Printf("Laps:       %d\n", len(session.Laps))
	if session.CircuitName() != "" {
		fmt.Printf("Circuit:    %s (%s)\n",
			session.CircuitInfo.Circuit, session.CircuitInfo.Country)
	}
	if session.FastestLap != nil {
		fmt.Printf("Fastest:    lap %d (%.3fs)\n",
			session.FastestLap.LapNumber, session.FastestLap.LapTime)
	}
	if session.TrackLength > 0 {
		fmt.Printf("Track:      %.0fm\n", session.TrackLength)
	}
	for _, video := range session.Videos {
		fmt.Printf("Video:      %s.%s\n", video.Name, video.Extension)
	}
	return nil
}
