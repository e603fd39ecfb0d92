package media

import (
	"testing"
)

func TestDeviceKind_String(t *testing.T) {
	tests := []struct {
		kind DeviceKind
		want string
	}{
		{DeviceKindVideoInput, "videoinput"},
		{DeviceKindAudioInput, "audioinput"},
		{DeviceKindAudioOutput, "audiooutput"},
		{DeviceKind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("DeviceKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlatformRegistry(t *testing.T) {
	prev := DefaultPlatform()
	defer RegisterPlatform(prev)

	platform := newFakePlatform(testDevices()...)
	RegisterPlatform(platform)

	if got := DefaultPlatform(); got != Platform(platform) {
		t.Fatalf("DefaultPlatform() = %v, want the registered fake", got)
	}
}
