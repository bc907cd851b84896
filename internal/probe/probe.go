// Package probe extracts media metadata with ffprobe. Probe failures are
// non-fatal to uploads; a zeroed result is stored until a retry succeeds.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// Result holds the stream facts a plan check and a player need.
type Result struct {
	DurationSeconds int32
	Width           *int32
	Height          *int32
	Codec           *string
}

// Prober inspects a media file on local disk.
type Prober interface {
	Probe(ctx context.Context, path string) Result
}

// FFProber shells out to ffprobe.
type FFProber struct {
	binary string
	logger *slog.Logger
}

func NewFFProber(binary string, logger *slog.Logger) *FFProber {
	if binary == "" {
		binary = "ffprobe"
	}
	return &FFProber{binary: binary, logger: logger}
}

type ffprobeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int32  `json:"width"`
		Height    int32  `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe never returns an error: a broken file or missing binary yields a
// zeroed result and a log line.
func (p *FFProber) Probe(ctx context.Context, path string) Result {
	cmd := exec.CommandContext(ctx, p.binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		p.logger.Warn("ffprobe failed", "path", path, "error", err)
		return Result{}
	}

	var out ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		p.logger.Warn("ffprobe output unparseable", "path", path, "error", err)
		return Result{}
	}

	var result Result
	if d := strings.TrimSpace(out.Format.Duration); d != "" {
		if seconds, err := strconv.ParseFloat(d, 64); err == nil {
			result.DurationSeconds = int32(seconds)
		}
	}
	for _, stream := range out.Streams {
		if stream.CodecType != "video" {
			continue
		}
		if stream.Width > 0 {
			w := stream.Width
			result.Width = &w
		}
		if stream.Height > 0 {
			h := stream.Height
			result.Height = &h
		}
		if stream.CodecName != "" {
			codec := stream.CodecName
			result.Codec = &codec
		}
		break
	}
	return result
}
