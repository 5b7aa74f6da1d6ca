package probe

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ffprobe output for a 3-frame 25 fps libx264 MP4 built from stills.
const sampleMP4 = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "profile": "High",
      "pix_fmt": "yuv420p",
      "width": 640,
      "height": 480,
      "nb_frames": "3",
      "avg_frame_rate": "25/1"
    }
  ],
  "format": {
    "filename": "/videos/out.mp4",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "0.120000",
    "size": "4821",
    "bit_rate": "321400"
  }
}`

func TestParseJSON_MP4(t *testing.T) {
	r, err := ParseJSON([]byte(sampleMP4))
	require.NoError(t, err)

	assert.Equal(t, "/videos/out.mp4", r.Format.Filename)
	assert.InDelta(t, 0.12, r.Format.Duration, 1e-9)
	assert.Equal(t, int64(4821), r.Format.Size)
	assert.Equal(t, int64(321400), r.Format.BitRate)

	require.NotNil(t, r.Video)
	assert.Equal(t, "h264", r.Video.Codec)
	assert.Equal(t, "yuv420p", r.Video.PixFmt)
	assert.Equal(t, 3, r.Video.NbFrames)
	assert.Equal(t, "640x480", r.Resolution())
	assert.InDelta(t, 25.0, r.FrameRate(), 1e-9)
}

func TestParseJSON_NoVideo(t *testing.T) {
	r, err := ParseJSON([]byte(`{"streams":[{"index":0,"codec_type":"audio"}],"format":{}}`))
	require.NoError(t, err)
	assert.Nil(t, r.Video)
	assert.Equal(t, "unknown", r.Resolution())
	assert.Zero(t, r.FrameRate())
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	_, err := ParseJSON([]byte("not json"))
	assert.Error(t, err)
}

func TestFrameRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"25/1", 25},
		{"30000/1001", 30000.0 / 1001.0},
		{"0/0", 0},
		{"24", 24},
		{"", 0},
	}
	for _, tt := range tests {
		r := &Result{Video: &VideoStream{AvgFrameRate: tt.in}}
		assert.InDelta(t, tt.want, r.FrameRate(), 1e-9, "avg_frame_rate %q", tt.in)
	}
}

func TestProbe_MissingFile(t *testing.T) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not available")
	}
	_, err := Probe(context.Background(), "ffprobe", filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)
}
