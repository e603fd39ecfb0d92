// Package media exposes browser-style media capture primitives in Go:
// device enumeration, capture permissions, and a single active capture
// stream, all behind a small stateful facade.
//
// Key pieces include:
//   - DeviceFacade: mirrors the platform device list, answers permission
//     queries, and toggles microphone/camera capture
//   - MediaStream/Track (getUserMedia-style stream and track surfaces)
//   - Platform: the pluggable enumeration/permission/capture backend
//   - OutboundTrack: bridges a captured track into a pion PeerConnection
//
// # Architecture
//
//	UI code -> DeviceFacade -> Platform (enumerate / query / acquire)
//	                        -> mirrored DeviceList + active CaptureStream
//	                        -> observers (device topology changes)
//
// A facade owns at most one active capture stream. Toggling a kind that
// already has a live track mutes/unmutes it in place; toggling a kind
// with no track yet acquires a fresh stream and migrates surviving
// tracks into it. Closing the facade stops every track and detaches the
// topology listener.
//
// # Platforms
//
// The package ships no hardware backend. Platform implementations
// register themselves via RegisterPlatform (typically from an init in a
// platform-specific package), or are handed directly to NewDeviceFacade.
package media
