package media

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/pion/webrtc/v4"
)

// Re-export pion's RTPCodecType for convenience
type RTPCodecType = webrtc.RTPCodecType

const (
	RTPCodecTypeUnknown = webrtc.RTPCodecTypeUnknown
	RTPCodecTypeAudio   = webrtc.RTPCodecTypeAudio
	RTPCodecTypeVideo   = webrtc.RTPCodecTypeVideo
)

// Track is one audio or video signal within a capture stream,
// independently enableable and stoppable (like browser's
// MediaStreamTrack, reduced to the capture surface).
type Track interface {
	// ID returns the unique identifier for this track.
	ID() string

	// Kind returns the track kind (audio or video) - compatible with pion.
	Kind() RTPCodecType

	// Label returns a human-readable label for the track source.
	Label() string

	// DeviceID returns the identifier of the device feeding the track
	// (empty when the platform default was used).
	DeviceID() string

	// Enabled returns whether the track is live or muted.
	Enabled() bool

	// SetEnabled mutes (false) or unmutes (true) the track without
	// releasing the device.
	SetEnabled(enabled bool)

	// Stop ends capture and releases the device. Stopping twice is a
	// no-op.
	Stop()

	// Stopped reports whether Stop has been called.
	Stopped() bool
}

// MediaStream is a collection of live tracks (like browser's MediaStream).
type MediaStream interface {
	// ID returns the unique identifier for this stream.
	ID() string

	// GetTracks returns all tracks in the stream.
	GetTracks() []Track

	// GetAudioTracks returns all audio tracks.
	GetAudioTracks() []Track

	// GetVideoTracks returns all video tracks.
	GetVideoTracks() []Track

	// AddTrack adds a track to the stream.
	AddTrack(track Track)

	// RemoveTrack removes a track from the stream without stopping it.
	RemoveTrack(track Track)
}

// CaptureTrack is the concrete Track used by platform backends. The
// stop callback, if any, runs exactly once when the track is stopped.
type CaptureTrack struct {
	id       string
	label    string
	deviceID string
	kind     RTPCodecType
	enabled  atomic.Bool
	stopped  atomic.Bool

	stopMu sync.Mutex
	onStop func()
}

// NewCaptureTrack creates a live, enabled track.
func NewCaptureTrack(kind RTPCodecType, deviceID, label string) *CaptureTrack {
	t := &CaptureTrack{
		id:       generateTrackID(),
		label:    label,
		deviceID: deviceID,
		kind:     kind,
	}
	t.enabled.Store(true)
	return t
}

// OnStop sets a callback invoked when the track is stopped. Backends
// use it to release the underlying device handle. Setting it after the
// track stopped has no effect.
func (t *CaptureTrack) OnStop(callback func()) {
	t.stopMu.Lock()
	t.onStop = callback
	t.stopMu.Unlock()
}

func (t *CaptureTrack) ID() string         { return t.id }
func (t *CaptureTrack) Kind() RTPCodecType { return t.kind }
func (t *CaptureTrack) Label() string      { return t.label }
func (t *CaptureTrack) DeviceID() string   { return t.deviceID }

func (t *CaptureTrack) Enabled() bool     { return t.enabled.Load() }
func (t *CaptureTrack) SetEnabled(e bool) { t.enabled.Store(e) }
func (t *CaptureTrack) Stopped() bool     { return t.stopped.Load() }

func (t *CaptureTrack) Stop() {
	if t.stopped.Swap(true) {
		return
	}
	t.enabled.Store(false)
	t.stopMu.Lock()
	cb := t.onStop
	t.stopMu.Unlock()
	if cb != nil {
		cb()
	}
}

// CaptureStream is a basic MediaStream implementation.
type CaptureStream struct {
	id     string
	tracks []Track
	mu     sync.RWMutex
}

// NewCaptureStream creates an empty capture stream.
func NewCaptureStream() *CaptureStream {
	return &CaptureStream{id: generateStreamID()}
}

func (s *CaptureStream) ID() string { return s.id }

func (s *CaptureStream) GetTracks() []Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Track, len(s.tracks))
	copy(result, s.tracks)
	return result
}

func (s *CaptureStream) GetAudioTracks() []Track { return s.tracksOfKind(RTPCodecTypeAudio) }
func (s *CaptureStream) GetVideoTracks() []Track { return s.tracksOfKind(RTPCodecTypeVideo) }

func (s *CaptureStream) tracksOfKind(kind RTPCodecType) []Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []Track
	for _, t := range s.tracks {
		if t.Kind() == kind {
			result = append(result, t)
		}
	}
	return result
}

func (s *CaptureStream) AddTrack(track Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracks = append(s.tracks, track)
}

func (s *CaptureStream) RemoveTrack(track Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tracks {
		if t.ID() == track.ID() {
			s.tracks = append(s.tracks[:i], s.tracks[i+1:]...)
			return
		}
	}
}

// streamTracksOfKind returns the stream's tracks of one kind.
func streamTracksOfKind(s MediaStream, kind RTPCodecType) []Track {
	if kind == RTPCodecTypeAudio {
		return s.GetAudioTracks()
	}
	return s.GetVideoTracks()
}

// stopTracks stops every track of a stream.
func stopTracks(s MediaStream) {
	for _, t := range s.GetTracks() {
		t.Stop()
	}
}

var streamCounter atomic.Uint64
var trackCounter atomic.Uint64

func generateStreamID() string {
	return fmt.Sprintf("stream-%d", streamCounter.Add(1))
}

func generateTrackID() string {
	return fmt.Sprintf("track-%d", trackCounter.Add(1))
}
