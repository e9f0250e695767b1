package loader

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openlaps/vbo-session-go/log"
	"github.com/openlaps/vbo-session-go/pkg/config"
	"github.com/openlaps/vbo-session-go/pkg/laps"
	"github.com/openlaps/vbo-session-go/pkg/model"
	"github.com/openlaps/vbo-session-go/pkg/vbo"
)

// LoadSession reads a logger file from disk and parses it with the
// options resolved from CLI configuration. Lap detection is always on
// for CLI use.
func LoadSession(ctx context.Context, path string) (*model.Session, error) {
	logger := log.GetFromContext(ctx)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	opts := []vbo.Option{
		vbo.WithFilePath(path),
		vbo.WithLogger(logger),
		vbo.WithMaxDataPoints(config.MaxDataPoints),
		vbo.WithLapDetection(
			laps.WithSectorCount(config.SectorCount),
			laps.WithMinDistance(config.MinLapDistance),
			laps.WithMinLapTime(config.MinLapTime),
		),
	}
	if config.ChannelMapFile != "" {
		mappings, mErr := loadChannelMap(config.ChannelMapFile)
		if mErr != nil {
			return nil, mErr
		}
		opts = append(opts, vbo.WithCustomMappings(mappings))
	}
	return vbo.Parse(string(raw), opts...)
}

// loadChannelMap reads a yaml file of column-name to field-name
// overrides.
func loadChannelMap(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading channel map %s: %w", path, err)
	}
	ret := map[string]string{}
	if err := yaml.Unmarshal(raw, &ret); err != nil {
		return nil, fmt.Errorf("parsing channel map %s: %w", path, err)
	}
	return ret, nil
}
