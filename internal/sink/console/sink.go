// Package console implements a sink printing one line per decoded frame.
package console

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/airtrace/airtrace/internal/core"
	"github.com/airtrace/airtrace/internal/dot11"
)

// Options come from the sink's free-form config map.
type Options struct {
	ShowFlags bool `mapstructure:"show_flags"` // append retry/wep flags
	ShowBody  bool `mapstructure:"show_body"`  // append ssid/channel labels
}

type Sink struct {
	opts Options
	out  io.Writer
}

// NewSink builds a console sink from the raw options map.
func NewSink(options map[string]any) (*Sink, error) {
	var opts Options
	if err := mapstructure.Decode(options, &opts); err != nil {
		return nil, fmt.Errorf("console: invalid options: %w", err)
	}
	return &Sink{opts: opts, out: os.Stdout}, nil
}

func (s *Sink) Write(h *dot11.Header, frame core.RawFrame) error {
	labels := s.labels(h)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s/%s", frame.Timestamp.Format("15:04:05.000000"),
		h.FrameControl.Type, h.FrameControl.Subtype)

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%s", strings.TrimPrefix(k, "dot11."), labels[k])
	}

	_, err := fmt.Fprintln(s.out, sb.String())
	return err
}

// labels flattens the header into the shared label set.
func (s *Sink) labels(h *dot11.Header) core.Labels {
	labels := core.Labels{
		core.LabelDot11Dst: h.Dst,
		core.LabelDot11Src: h.Src,
	}
	if h.BSSID != "" {
		labels[core.LabelDot11BSSID] = h.BSSID
	}
	if s.opts.ShowFlags {
		labels[core.LabelDot11Retry] = strconv.FormatBool(h.FrameControl.Retry)
		labels[core.LabelDot11WEP] = strconv.FormatBool(h.FrameControl.WEP)
	}
	if s.opts.ShowBody {
		switch info := h.Info.(type) {
		case dot11.Beacon:
			addBodyLabels(labels, info.SSID, info.Channel)
		case dot11.ProbeResponse:
			addBodyLabels(labels, info.SSID, info.Channel)
		case dot11.ProbeRequest:
			addBodyLabels(labels, info.SSID, 0)
		case dot11.AssociationRequest:
			addBodyLabels(labels, info.SSID, 0)
		}
	}
	return labels
}

func addBodyLabels(labels core.Labels, ssid string, channel uint8) {
	if ssid != "" {
		labels[core.LabelDot11SSID] = strconv.Quote(ssid)
	}
	if channel != 0 {
		labels[core.LabelDot11Channel] = strconv.Itoa(int(channel))
	}
}

func (s *Sink) Close() error {
	return nil
}
