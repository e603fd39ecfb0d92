package media

import (
	"context"
	"sync"
)

// DeviceKind represents the type of media device.
type DeviceKind int

const (
	DeviceKindVideoInput  DeviceKind = iota // Camera
	DeviceKindAudioInput                    // Microphone
	DeviceKindAudioOutput                   // Speaker/headphones
)

func (k DeviceKind) String() string {
	switch k {
	case DeviceKindVideoInput:
		return "videoinput"
	case DeviceKindAudioInput:
		return "audioinput"
	case DeviceKindAudioOutput:
		return "audiooutput"
	default:
		return "unknown"
	}
}

// DeviceInfo describes a media device (like browser's MediaDeviceInfo).
// It is an immutable snapshot; refreshes replace the whole list rather
// than mutating entries in place.
type DeviceInfo struct {
	DeviceID string     // Unique identifier for the device
	GroupID  string     // Group identifier (devices with same groupID belong together)
	Kind     DeviceKind // Device type
	Label    string     // Human-readable device name (empty until permission granted)
}

// UserMediaOptions configures a capture request. A nil constraint means
// the corresponding kind is not requested at all.
type UserMediaOptions struct {
	Video *VideoConstraints // nil = no video
	Audio *AudioConstraints // nil = no audio
}

// VideoConstraints for a capture request's video half.
type VideoConstraints struct {
	DeviceID string // Exact device to open (empty = default camera)
}

// AudioConstraints for a capture request's audio half.
type AudioConstraints struct {
	DeviceID string // Exact device to open (empty = default microphone)
}

// DeviceEnumerator lists media devices and reports topology changes
// (devices attached, detached, or reconfigured).
type DeviceEnumerator interface {
	// EnumerateDevices returns a snapshot of available media devices.
	EnumerateDevices(ctx context.Context) ([]DeviceInfo, error)

	// OnDeviceChange registers a topology-change listener and returns a
	// function that removes it again.
	OnDeviceChange(listener func()) (remove func())
}

// PermissionChecker answers capture permission queries.
type PermissionChecker interface {
	// QueryPermission reports the current grant state for a permission
	// kind without prompting the user.
	QueryPermission(ctx context.Context, kind PermissionKind) (PermissionStatus, error)
}

// CaptureProvider opens capture streams from hardware.
type CaptureProvider interface {
	// GetUserMedia prompts for permission if needed and returns a
	// MediaStream holding the requested audio and/or video tracks.
	GetUserMedia(ctx context.Context, opts UserMediaOptions) (MediaStream, error)
}

// Platform bundles the three services a DeviceFacade drives. Backends
// implement it per operating system or host runtime.
type Platform interface {
	DeviceEnumerator
	PermissionChecker
	CaptureProvider
}

// platformRegistry holds the registered process-default platform.
type platformRegistry struct {
	platform Platform
	mu       sync.RWMutex
}

var globalPlatformRegistry = &platformRegistry{}

// RegisterPlatform registers the process-default platform backend.
func RegisterPlatform(p Platform) {
	globalPlatformRegistry.mu.Lock()
	defer globalPlatformRegistry.mu.Unlock()
	globalPlatformRegistry.platform = p
}

// DefaultPlatform returns the registered platform backend, or nil when
// none has been registered.
func DefaultPlatform() Platform {
	globalPlatformRegistry.mu.RLock()
	defer globalPlatformRegistry.mu.RUnlock()
	return globalPlatformRegistry.platform
}
