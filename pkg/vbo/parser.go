package vbo

import (
	"fmt"
	"strings"

	"github.com/openlaps/vbo-session-go/log"
	"github.com/openlaps/vbo-session-go/pkg/laps"
	"github.com/openlaps/vbo-session-go/pkg/model"
)

// ParseError is a structural error that aborts the whole parse.
type ParseError struct {
	Section string
	Msg     string
}

func (e *ParseError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("parse error in [%s]: %s", e.Section, e.Msg)
	}
	return fmt.Sprintf("parse error: %s", e.Msg)
}

// Parser decodes the section-delimited logger text format. Parsing is a
// pure function of the input text and the parser configuration.
type Parser struct {
	customMappings map[string]string
	maxDataPoints  int
	filePath       string
	detectLaps     bool
	lapOpts        []laps.Option
	logger         *log.Logger
}

type Option func(*Parser)

// WithCustomMappings overlays caller-supplied column-to-field mappings
// on the default table. Custom wins on conflict.
func WithCustomMappings(mappings map[string]string) Option {
	return func(p *Parser) {
		p.customMappings = mappings
	}
}

// WithMaxDataPoints truncates the [data] section once n samples have
// been decoded. Zero yields zero samples; negative means unlimited.
func WithMaxDataPoints(n int) Option {
	return func(p *Parser) {
		p.maxDataPoints = n
	}
}

// WithFilePath records the origin of the text on the session.
func WithFilePath(path string) Option {
	return func(p *Parser) {
		p.filePath = path
	}
}

// WithLapDetection runs lap detection after normalization and attaches
// laps, fastest lap and track length to the session.
func WithLapDetection(opts ...laps.Option) Option {
	return func(p *Parser) {
		p.detectLaps = true
		p.lapOpts = opts
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Parse decodes raw logger text into a session. It fails with a
// ParseError when the input is empty or lacks a [header] or [data]
// section; bad data rows are dropped with a warning instead.
func Parse(raw string, opts ...Option) (*model.Session, error) {
	p := &Parser{maxDataPoints: -1, logger: log.Default()}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named("vbo")

	if strings.TrimSpace(raw) == "" {
		return nil, &ParseError{Msg: "empty input"}
	}
	secs := scanSections(raw)
	if !secs.has("header") {
		return nil, &ParseError{Section: "header", Msg: "section not found"}
	}
	if !secs.has("data") {
		return nil, &ParseError{Section: "data", Msg: "section not found"}
	}

	header := p.parseHeader(secs)
	columns := columnNames(secs, header.Channels)
	fields := resolveColumns(columns, p.customMappings)

	samples := p.decodeData(secs.lines("data"), fields)

	// captured before rebasing; normalization is destructive to this
	rawTotalTime := 0.0
	for _, s := range samples {
		if s.Time > rawTotalTime {
			rawTotalTime = s.Time
		}
	}
	normalize(samples, p.logger)

	session := &model.Session{
		FilePath:    p.filePath,
		Header:      header,
		DataPoints:  samples,
		Laps:        []*model.Lap{},
		TotalTime:   rawTotalTime,
		CircuitInfo: parseCircuitInfo(secs),
		Videos:      parseVideos(secs),
	}
	if p.detectLaps {
		p.attachLaps(session)
	}
	return session, nil
}

func (p *Parser) parseHeader(secs sections) *model.Header {
	header := &model.Header{
		CreationDate: secs.creationDate(),
		Channels:     []*model.Channel{},
		Units:        []string{},
	}
	for i, line := range secs.lines("header") {
		header.Channels = append(header.Channels, &model.Channel{Name: line, Index: i})
	}
	// positional unit assignment; excess or missing units stay unmatched
	for i, unit := range secs.lines("channel units") {
		header.Units = append(header.Units, unit)
		if i < len(header.Channels) {
			header.Channels[i].Unit = unit
		}
	}
	parseComments(secs, header)
	return header
}

func (p *Parser) decodeData(lines []string, fields []string) []*model.Sample {
	samples := []*model.Sample{}
	dropped := 0
	for _, line := range lines {
		if p.maxDataPoints >= 0 && len(samples) >= p.maxDataPoints {
			break
		}
		sample, err := decodeRow(line, fields)
		if err != nil {
			dropped++
			p.logger.Warn("dropping malformed data row",
				log.String("row", line), log.ErrorField(err))
			continue
		}
		samples = append(samples, sample)
	}
	if dropped > 0 {
		p.logger.Info("dropped malformed rows", log.Int("count", dropped))
	}
	return samples
}

func (p *Parser) attachLaps(session *model.Session) {
	session.Laps = laps.Detect(session.DataPoints, p.lapOpts...)
	session.FastestLap = laps.FindFastestLap(session.Laps)
	if session.FastestLap != nil {
		session.TrackLength = session.FastestLap.Distance
	} else {
		for _, lap := range session.Laps {
			if lap.Distance > session.TrackLength {
				session.TrackLength = lap.Distance
			}
		}
	}
}
