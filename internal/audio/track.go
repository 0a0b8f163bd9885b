package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
)

var ErrUnsupportedTrack = errors.New("backing track must be .mp3 or .ogg")

// Track is a decoded backing track.
type Track struct {
	stream beep.StreamSeekCloser
	format beep.Format
}

// LoadTrack opens an mp3 or ogg vorbis file.
func LoadTrack(path string) (*Track, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".mp3" && ext != ".ogg" {
		return nil, fmt.Errorf("%v: %w", path, ErrUnsupportedTrack)
	}
	f, err := os.Open(path)
	if nil != err {
		return nil, fmt.Errorf("unable to open track: %w", err)
	}

	var stream beep.StreamSeekCloser
	var format beep.Format
	if ext == ".ogg" {
		stream, format, err = vorbis.Decode(f)
	} else {
		stream, format, err = mp3.Decode(f)
	}
	if nil != err {
		f.Close()
		return nil, fmt.Errorf("unable to decode %v: %w", path, err)
	}
	return &Track{stream: stream, format: format}, nil
}

// Loop returns the track repeating forever at the synth sample rate.
func (t *Track) Loop() beep.Streamer {
	return beep.Resample(4, t.format.SampleRate, SampleRate, beep.Loop(-1, t.stream))
}

func (t *Track) Close() error {
	return t.stream.Close()
}
