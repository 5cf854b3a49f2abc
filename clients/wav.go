package clients

import (
	"fmt"
	"os"
	"time"

	"github.com/cryptix/wav"
)

// WAVInfo is the format block of a RIFF/WAVE file.
type WAVInfo struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// ProbeWAV reads the header of the WAV file at path.
func ProbeWAV(path string) (WAVInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return WAVInfo{}, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return WAVInfo{}, err
	}
	r, err := wav.NewReader(f, st.Size())
	if err != nil {
		return WAVInfo{}, fmt.Errorf("probe %s: %w", path, err)
	}
	meta := r.GetFile()
	return WAVInfo{
		SampleRate: int(meta.SampleRate),
		Channels:   int(meta.Channels),
		BitDepth:   int(meta.SignificantBits),
		Duration:   meta.Duration,
	}, nil
}
