package surface

// Capabilities is the platform quirk table: resolved once per surface and
// consulted by name at each decision point, instead of ad hoc platform checks
// scattered through the binding.
type Capabilities struct {
	// SupportsBeforeInput is true when the host delivers low-level,
	// pre-mutation input events. Without it the binding falls back to key
	// chord normalization.
	SupportsBeforeInput bool

	// FocusFollowsSelection is true when assigning a native range also moves
	// focus to the surface root. When false the binding refocuses explicitly
	// after a selection push.
	FocusFollowsSelection bool

	// ReliableCompositionInsert is true when the host delivers a usable
	// insertFromComposition event after a composition ends. When false the
	// binding inserts the committed text itself on composition end.
	ReliableCompositionInsert bool
}

// Platform names recognized by ResolveCapabilities.
const (
	PlatformModern  = "modern"
	PlatformLegacy  = "legacy"
	PlatformMacTerm = "mac-term"
)

// ResolveCapabilities maps a platform name to its capability flags. Unknown
// names resolve to the modern profile.
func ResolveCapabilities(platform string) Capabilities {
	switch platform {
	case PlatformLegacy:
		return Capabilities{
			SupportsBeforeInput:       false,
			FocusFollowsSelection:     false,
			ReliableCompositionInsert: false,
		}
	case PlatformMacTerm:
		return Capabilities{
			SupportsBeforeInput:       true,
			FocusFollowsSelection:     true,
			ReliableCompositionInsert: false,
		}
	default:
		return Capabilities{
			SupportsBeforeInput:       true,
			FocusFollowsSelection:     true,
			ReliableCompositionInsert: true,
		}
	}
}
