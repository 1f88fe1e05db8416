package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/airtrace/airtrace/internal/config"
	"github.com/airtrace/airtrace/internal/dot11"
	"github.com/airtrace/airtrace/internal/pipeline"
	"github.com/airtrace/airtrace/internal/sink"
	"github.com/airtrace/airtrace/internal/sink/console"
	"github.com/airtrace/airtrace/internal/source"
	"github.com/airtrace/airtrace/internal/source/file"
	"github.com/airtrace/airtrace/internal/source/live"
	"github.com/airtrace/airtrace/pkg/log"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture and decode 802.11 frames",
	Long: `Capture reads frames from the configured source (monitor-mode
interface or pcap file), decodes each MAC header and prints the result
through the configured sink. Malformed frames are counted and skipped.`,
	Run: runCapture,
}

func runCapture(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile)
	if err != nil {
		exitWithError("failed to load config", err)
	}
	if err := cfg.Validate(); err != nil {
		exitWithError("invalid config", err)
	}

	log.Init(cfg.Log)
	logger := log.GetLogger()

	src, err := buildSource(cfg)
	if err != nil {
		exitWithError("failed to build source", err)
	}
	snk, err := buildSink(cfg)
	if err != nil {
		exitWithError("failed to build sink", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := src.Start(ctx); err != nil {
		exitWithError("failed to start source", err)
	}
	defer src.Stop()
	defer snk.Close()

	p := pipeline.New(src, snk, frameTypes(cfg.Capture.FrameTypes))

	err = p.Run(ctx)
	stats := p.Stats()
	logger.WithFields(map[string]interface{}{
		"frames":              stats.Frames,
		"decoded":             stats.Decoded,
		"filtered":            stats.Filtered,
		"truncated":           stats.Truncated,
		"unsupported_version": stats.UnsupportedVersion,
		"link_errors":         stats.LinkErrors,
	}).Info("capture finished")

	if err != nil && ctx.Err() == nil {
		exitWithError("capture failed", err)
	}
}

func buildSource(cfg *config.Config) (source.Source, error) {
	if cfg.Capture.File != "" {
		return file.NewSource(cfg.Capture.File)
	}
	return live.NewSource(live.Config{
		Interface:  cfg.Capture.Interface,
		Snaplen:    cfg.Capture.Snaplen,
		Promisc:    cfg.Capture.Promisc,
		FrameTypes: cfg.Capture.FrameTypes,
	})
}

func buildSink(cfg *config.Config) (sink.Sink, error) {
	switch cfg.Sink.Type {
	case "console":
		return console.NewSink(cfg.Sink.Options)
	default:
		return nil, fmt.Errorf("unknown sink type %q", cfg.Sink.Type)
	}
}

// frameTypes maps config names to decoded frame types; Validate has
// already rejected unknown names.
func frameTypes(names []string) []dot11.FrameType {
	var types []dot11.FrameType
	for _, name := range names {
		switch name {
		case "management", "mgmt":
			types = append(types, dot11.FrameTypeManagement)
		case "control", "ctrl":
			types = append(types, dot11.FrameTypeControl)
		case "data":
			types = append(types, dot11.FrameTypeData)
		}
	}
	return types
}
