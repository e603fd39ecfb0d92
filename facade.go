package media

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// DeviceFacade mirrors the platform's media device list and owns at
// most one active capture stream. It is the single entry point UI code
// uses to enumerate devices, inspect permissions, and toggle
// microphone/camera capture.
//
// The mirrored list is replaced wholesale on every successful
// enumeration, whether triggered by an explicit query or a topology
// change. Query operations always hit the platform fresh; the mirror
// exists for observers and for cheap snapshot reads.
type DeviceFacade struct {
	platform Platform
	log      zerolog.Logger

	mu             sync.RWMutex
	devices        []DeviceInfo
	stream         MediaStream
	observers      map[int]func([]DeviceInfo)
	nextObserverID int
	removeListener func()
	closed         bool

	// opMu serializes capture-mutating operations so two overlapping
	// toggles cannot both conclude "no track yet" and each adopt a
	// fresh stream.
	opMu sync.Mutex
}

// Option configures a DeviceFacade.
type Option func(f *DeviceFacade)

// WithLogger sets the logger used for swallowed capture failures.
// The default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(f *DeviceFacade) {
		f.log = log
	}
}

// WithDeviceChangeHandler attaches an observer at construction time.
// Observers can also be attached and detached later via OnDeviceChange.
func WithDeviceChangeHandler(handler func(devices []DeviceInfo)) Option {
	return func(f *DeviceFacade) {
		f.observers[f.nextObserverID] = handler
		f.nextObserverID++
	}
}

// NewDeviceFacade creates a facade bound to the given platform (nil
// selects the registered default). It performs an initial enumeration
// to populate the mirrored device list and subscribes to topology
// changes; each change re-enumerates and notifies observers.
func NewDeviceFacade(ctx context.Context, platform Platform, opts ...Option) (*DeviceFacade, error) {
	if platform == nil {
		platform = DefaultPlatform()
	}
	if platform == nil {
		return nil, fmt.Errorf("no platform registered: %w", ErrPlatformUnavailable)
	}

	f := &DeviceFacade{
		platform:  platform,
		log:       zerolog.Nop(),
		observers: make(map[int]func([]DeviceInfo)),
	}
	for _, opt := range opts {
		opt(f)
	}

	// The mirror stays empty until the first enumeration resolves.
	if devices, err := platform.EnumerateDevices(ctx); err != nil {
		f.log.Warn().Err(err).Msg("initial device enumeration failed")
	} else {
		f.devices = devices
	}

	f.removeListener = platform.OnDeviceChange(func() {
		f.refreshDevices(context.Background())
	})
	return f, nil
}

// Devices queries the platform for a fresh device snapshot. The mirror
// is replaced on success; enumeration failures propagate to the caller.
// A closed facade fails with ErrPlatformUnavailable.
func (f *DeviceFacade) Devices(ctx context.Context) ([]DeviceInfo, error) {
	if f.isClosed() {
		return nil, fmt.Errorf("facade closed: %w", ErrPlatformUnavailable)
	}
	devices, err := f.platform.EnumerateDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate devices: %w", err)
	}
	f.mu.Lock()
	if !f.closed {
		f.devices = devices
	}
	f.mu.Unlock()
	return devices, nil
}

func (f *DeviceFacade) isClosed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}

// Cameras returns the fresh device list filtered to video inputs.
func (f *DeviceFacade) Cameras(ctx context.Context) ([]DeviceInfo, error) {
	return f.devicesOfKind(ctx, DeviceKindVideoInput)
}

// Microphones returns the fresh device list filtered to audio inputs.
func (f *DeviceFacade) Microphones(ctx context.Context) ([]DeviceInfo, error) {
	return f.devicesOfKind(ctx, DeviceKindAudioInput)
}

// PlaybackDevices returns the fresh device list filtered to audio outputs.
func (f *DeviceFacade) PlaybackDevices(ctx context.Context) ([]DeviceInfo, error) {
	return f.devicesOfKind(ctx, DeviceKindAudioOutput)
}

func (f *DeviceFacade) devicesOfKind(ctx context.Context, kind DeviceKind) ([]DeviceInfo, error) {
	devices, err := f.Devices(ctx)
	if err != nil {
		return nil, err
	}
	var filtered []DeviceInfo
	for _, d := range devices {
		if d.Kind == kind {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

// DeviceList returns a copy of the mirrored device list: the most
// recent successful enumeration, or empty before the first one.
func (f *DeviceFacade) DeviceList() []DeviceInfo {
	f.mu.RLock()
	defer f.mu.RUnlock()
	devices := make([]DeviceInfo, len(f.devices))
	copy(devices, f.devices)
	return devices
}

// ActiveStream returns the active capture stream, or nil when no toggle
// has acquired one yet.
func (f *DeviceFacade) ActiveStream() MediaStream {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.stream
}

// CheckPermissions queries the grant state of every permission kind the
// scope expands to. The result is recomputed on every call, never
// cached. Query failures propagate to the caller. A closed facade fails
// with ErrPlatformUnavailable.
func (f *DeviceFacade) CheckPermissions(ctx context.Context, scope Scope) (map[PermissionKind]bool, error) {
	if f.isClosed() {
		return nil, fmt.Errorf("facade closed: %w", ErrPlatformUnavailable)
	}
	result := make(map[PermissionKind]bool)
	for _, kind := range scope.kinds() {
		status, err := f.platform.QueryPermission(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("query %s permission: %w", kind, err)
		}
		result[kind] = status.Granted()
	}
	return result, nil
}

// RequestPermission triggers the platform permission prompt by opening
// a transient capture stream, which is stopped immediately and never
// retained. Acquisition failures are logged and swallowed: the call
// always resolves with the current permission truth per
// CheckPermissions(scope).
func (f *DeviceFacade) RequestPermission(ctx context.Context, scope Scope) (map[PermissionKind]bool, error) {
	if f.isClosed() {
		return nil, fmt.Errorf("facade closed: %w", ErrPlatformUnavailable)
	}

	var opts UserMediaOptions
	if scope == ScopeCamera {
		opts.Video = &VideoConstraints{}
	}
	if scope == ScopeMicrophone || scope == ScopeAll {
		opts.Audio = &AudioConstraints{}
	}

	if opts.Video != nil || opts.Audio != nil {
		stream, err := f.platform.GetUserMedia(ctx, opts)
		if err != nil {
			f.log.Warn().Err(err).Stringer("scope", scope).Msg("permission prompt capture failed")
		} else {
			stopTracks(stream)
		}
	}

	return f.CheckPermissions(ctx, scope)
}

// ToggleMicrophone toggles audio capture and returns the resulting
// enabled state. With a live audio track present the track is muted or
// unmuted in place; a differing deviceID does not force a device
// switch. With no audio track yet, an audio-only stream is acquired
// (pinned to deviceID when given), surviving video tracks migrate into
// it, and it becomes the active stream. Acquisition failures are logged
// and reported as false, leaving prior state untouched.
func (f *DeviceFacade) ToggleMicrophone(ctx context.Context, deviceID string) bool {
	return f.toggleTrack(ctx, RTPCodecTypeAudio, deviceID)
}

// ToggleCamera is ToggleMicrophone with the roles of audio and video
// swapped.
func (f *DeviceFacade) ToggleCamera(ctx context.Context, deviceID string) bool {
	return f.toggleTrack(ctx, RTPCodecTypeVideo, deviceID)
}

func (f *DeviceFacade) toggleTrack(ctx context.Context, kind RTPCodecType, deviceID string) bool {
	f.opMu.Lock()
	defer f.opMu.Unlock()

	f.mu.RLock()
	stream := f.stream
	closed := f.closed
	f.mu.RUnlock()
	if closed {
		return false
	}

	if stream != nil {
		if existing := streamTracksOfKind(stream, kind); len(existing) > 0 {
			enabled := !existing[0].Enabled()
			for _, t := range existing {
				t.SetEnabled(enabled)
			}
			return enabled
		}
	}

	fresh, err := f.platform.GetUserMedia(ctx, captureOptions(kind, deviceID))
	if err != nil {
		f.log.Warn().
			Err(err).
			Str("kind", kind.String()).
			Str("device_id", deviceID).
			Msg("capture acquisition failed")
		return false
	}

	if stream != nil {
		for _, t := range stream.GetTracks() {
			if t.Kind() == kind {
				t.Stop()
				continue
			}
			stream.RemoveTrack(t)
			fresh.AddTrack(t)
		}
	}

	f.mu.Lock()
	f.stream = fresh
	f.mu.Unlock()
	return true
}

// captureOptions builds a single-kind capture request, pinned to an
// exact device when deviceID is non-empty.
func captureOptions(kind RTPCodecType, deviceID string) UserMediaOptions {
	if kind == RTPCodecTypeAudio {
		return UserMediaOptions{Audio: &AudioConstraints{DeviceID: deviceID}}
	}
	return UserMediaOptions{Video: &VideoConstraints{DeviceID: deviceID}}
}

// OnDeviceChange registers an observer invoked with the fresh device
// list after every topology refresh. The returned function detaches it.
// On a closed facade the observer is never attached and the returned
// remove is a no-op.
func (f *DeviceFacade) OnDeviceChange(observer func(devices []DeviceInfo)) (remove func()) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return func() {}
	}
	id := f.nextObserverID
	f.nextObserverID++
	f.observers[id] = observer
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.observers, id)
		f.mu.Unlock()
	}
}

// refreshDevices re-enumerates after a topology change, replaces the
// mirror, and fans the new list out to observers. Failures keep the
// previous mirror.
func (f *DeviceFacade) refreshDevices(ctx context.Context) {
	devices, err := f.platform.EnumerateDevices(ctx)
	if err != nil {
		f.log.Warn().Err(err).Msg("device re-enumeration failed")
		return
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.devices = devices
	observers := make([]func([]DeviceInfo), 0, len(f.observers))
	for _, cb := range f.observers {
		observers = append(observers, cb)
	}
	f.mu.Unlock()

	for _, cb := range observers {
		cb(devices)
	}
}

// Close detaches the topology listener, stops every track of the active
// stream, and releases it. Close is idempotent and must run on every
// teardown path so camera/microphone acquisition is never leaked.
func (f *DeviceFacade) Close() error {
	f.opMu.Lock()
	defer f.opMu.Unlock()

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	remove := f.removeListener
	f.removeListener = nil
	stream := f.stream
	f.stream = nil
	f.observers = nil
	f.mu.Unlock()

	if remove != nil {
		remove()
	}
	if stream != nil {
		stopTracks(stream)
	}
	return nil
}
