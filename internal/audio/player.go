package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/tartampluch/go-celebrate/internal/config"
)

// sampleRate is the speaker rate; tracks are resampled to it.
const sampleRate = beep.SampleRate(44100)

// resampleQuality for beep.Resample, from 1 (fastest) to 64 (best).
const resampleQuality = 4

var (
	speakerOnce sync.Once
	speakerErr  error
)

// initSpeaker opens the audio device once per process.
func initSpeaker() error {
	speakerOnce.Do(func() {
		if err := speaker.Init(sampleRate, sampleRate.N(config.AudioBufferSpan)); err != nil {
			speakerErr = fmt.Errorf("%s: %w", config.ErrSpeakerInit, err)
		}
	})
	return speakerErr
}

// Track is a decoded audio file routed through a pause control and a volume stage.
// A nil *Track is a valid muted track: every method is a no-op.
type Track struct {
	path   string
	loop   bool
	format beep.Format
	source beep.StreamSeekCloser
	ctrl   *beep.Ctrl

	mu      sync.Mutex
	started bool
	done    bool
}

// Open decodes an MP3 or WAV file. loop repeats it forever; otherwise it plays once
// per Play call.
func Open(path string, loop bool) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrAudioOpen, err)
	}

	var (
		source beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case config.ExtMP3:
		source, format, err = mp3.Decode(f)
	case config.ExtWAV:
		source, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, fmt.Errorf("%s: %q", config.ErrAudioFormat, filepath.Ext(path))
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrAudioDecode, err)
	}

	t := &Track{path: path, loop: loop, format: format, source: source}
	t.ctrl = t.chain()
	return t, nil
}

// chain builds source -> loop -> resample -> volume -> pause control.
// One-shot tracks end with a callback marking them done.
func (t *Track) chain() *beep.Ctrl {
	var s beep.Streamer = t.source
	if t.loop {
		s = beep.Loop(-1, t.source)
	}
	if t.format.SampleRate != sampleRate {
		s = beep.Resample(resampleQuality, t.format.SampleRate, sampleRate, s)
	}
	s = &effects.Volume{
		Streamer: s,
		Base:     config.AudioVolumeBase,
		Volume:   math.Log(config.AudioVolume) / math.Log(config.AudioVolumeBase),
	}
	if !t.loop {
		s = beep.Seq(s, beep.Callback(t.finished))
	}
	return &beep.Ctrl{Streamer: s, Paused: true}
}

// Load is Open for optional files: an empty path, a missing file or an
// undecodable one yield a muted (nil) track and a log line instead of an error.
func Load(path string, loop bool) *Track {
	log := slog.With(config.LogKeyComponent, config.CompAudio, config.LogKeyFile, path)
	if path == "" {
		log.Debug(config.MsgAudioDisabled)
		return nil
	}
	t, err := Open(path, loop)
	if err != nil {
		log.Warn(config.MsgAudioFailed, config.LogKeyError, err)
		return nil
	}
	return t
}

// Play starts or resumes the track. A one-shot track that already ended restarts
// from the beginning. Device errors mute the track.
func (t *Track) Play() {
	if t == nil {
		return
	}
	if err := initSpeaker(); err != nil {
		slog.Warn(config.MsgAudioFailed,
			config.LogKeyComponent, config.CompAudio,
			config.LogKeyError, err)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	speaker.Lock()
	restart := t.done
	if restart {
		if err := t.source.Seek(0); err != nil {
			speaker.Unlock()
			slog.Warn(config.MsgAudioFailed,
				config.LogKeyComponent, config.CompAudio,
				config.LogKeyError, err)
			return
		}
		t.done = false
		t.ctrl = t.chain()
	}
	t.ctrl.Paused = false
	speaker.Unlock()

	if !t.started || restart {
		t.started = true
		speaker.Play(t.ctrl)
	}

	slog.Info(config.MsgAudioPlaying,
		config.LogKeyComponent, config.CompAudio,
		config.LogKeyFile, t.path)
}

// Pause halts playback; Play resumes where it stopped.
func (t *Track) Pause() {
	if t == nil || !t.isStarted() {
		return
	}
	speaker.Lock()
	t.ctrl.Paused = true
	speaker.Unlock()

	slog.Info(config.MsgAudioPaused,
		config.LogKeyComponent, config.CompAudio,
		config.LogKeyFile, t.path)
}

// Playing reports whether the track is audible: started, not paused and, for a
// one-shot, not yet run to the end.
func (t *Track) Playing() bool {
	if t == nil || !t.isStarted() {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !t.ctrl.Paused && !t.done
}

// Format reports the decoded sample format.
func (t *Track) Format() beep.Format {
	if t == nil {
		return beep.Format{}
	}
	return t.format
}

// Close detaches the track from the speaker and releases the file.
func (t *Track) Close() error {
	if t == nil {
		return nil
	}
	if t.isStarted() {
		speaker.Lock()
		t.ctrl.Streamer = nil
		speaker.Unlock()
	}
	err := t.source.Close()
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}

func (t *Track) isStarted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

// finished runs on the speaker goroutine when a one-shot track ends.
func (t *Track) finished() {
	t.done = true
}
