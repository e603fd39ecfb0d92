package media

import "errors"

var (
	// ErrPlatformUnavailable is returned when no platform backend is
	// registered or a platform service cannot be reached.
	ErrPlatformUnavailable = errors.New("media platform unavailable")

	// ErrPermissionDenied is returned when a capture request or
	// permission query is rejected by the user or policy.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDeviceNotFound is returned when an exact-device constraint
	// cannot be satisfied.
	ErrDeviceNotFound = errors.New("device not found")
)
