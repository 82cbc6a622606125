package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// FFProbeOutput defines the structure for ffprobe JSON output relevant to duration.
// We only care about the format.duration field.
type FFProbeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Prober reads media metadata with ffprobe. It never transcodes.
type Prober struct {
	// Binary is the ffprobe executable; defaults to "ffprobe" on PATH.
	Binary string
}

// NewProber returns a Prober using binary, or "ffprobe" when empty.
func NewProber(binary string) *Prober {
	if binary == "" {
		binary = "ffprobe"
	}
	return &Prober{Binary: binary}
}

// Available reports whether the ffprobe binary can be found.
func (p *Prober) Available() bool {
	_, err := exec.LookPath(p.Binary)
	return err == nil
}

// ProbeDuration returns the duration in seconds of the media in data, which
// is piped to ffprobe on stdin.
func (p *Prober) ProbeDuration(ctx context.Context, data []byte) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("ffprobe: no media data")
	}

	// ffprobe -v quiet -print_format json -show_format -i pipe:0
	cmd := exec.CommandContext(ctx, p.Binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-i", "pipe:0",
	)

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w (stderr: %s)", err, strings.TrimSpace(stderr.String()))
	}

	return parseProbeOutput(out.Bytes())
}

func parseProbeOutput(raw []byte) (float64, error) {
	var probe FFProbeOutput
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0, fmt.Errorf("error unmarshalling ffprobe output: %w", err)
	}

	if probe.Format.Duration == "" || probe.Format.Duration == "N/A" {
		return 0, fmt.Errorf("could not retrieve duration from ffprobe output")
	}

	seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing duration string '%s': %w", probe.Format.Duration, err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("ffprobe reported negative duration %v", seconds)
	}
	return seconds, nil
}
