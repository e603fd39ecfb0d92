package media

// PermissionKind names a queryable capture permission.
type PermissionKind int

const (
	PermissionCamera     PermissionKind = iota // Camera capture
	PermissionMicrophone                       // Microphone capture
)

func (k PermissionKind) String() string {
	switch k {
	case PermissionCamera:
		return "camera"
	case PermissionMicrophone:
		return "microphone"
	default:
		return "unknown"
	}
}

// PermissionStatus is the platform's answer to a permission query.
type PermissionStatus int

const (
	PermissionPrompt  PermissionStatus = iota // Not decided yet; platform will prompt
	PermissionGranted                         // Granted by user or policy
	PermissionDenied                          // Denied by user or policy
)

func (s PermissionStatus) String() string {
	switch s {
	case PermissionPrompt:
		return "prompt"
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// Granted reports whether the status is an actual grant.
func (s PermissionStatus) Granted() bool { return s == PermissionGranted }

// Scope selects which permission kinds an operation covers.
type Scope int

const (
	ScopeAll        Scope = iota // Camera and microphone
	ScopeCamera                  // Camera only
	ScopeMicrophone              // Microphone only
	ScopeSpeaker                 // Playback devices (no queryable permission kind)
)

func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeCamera:
		return "camera"
	case ScopeMicrophone:
		return "microphone"
	case ScopeSpeaker:
		return "speaker"
	default:
		return "unknown"
	}
}

// kinds expands a scope into the permission kinds it implies. Speaker
// expands to nothing: platforms expose no speaker permission, so it is
// silently skipped. Unrecognized scopes behave like ScopeAll.
func (s Scope) kinds() []PermissionKind {
	switch s {
	case ScopeCamera:
		return []PermissionKind{PermissionCamera}
	case ScopeMicrophone:
		return []PermissionKind{PermissionMicrophone}
	case ScopeSpeaker:
		return nil
	default:
		return []PermissionKind{PermissionCamera, PermissionMicrophone}
	}
}
