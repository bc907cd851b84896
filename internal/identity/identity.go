package identity

// ActorKind is the single tagged variant replacing the old ad hoc
// role/user_type pair. An account is exactly one kind at a time; elevated
// administrative privilege is tracked separately on the account.
type ActorKind string

const (
	KindAdministrator ActorKind = "ADMIN"
	KindRegularUser   ActorKind = "REGULAR"
	KindStaffTenant   ActorKind = "STAFF"
	KindClientDevice  ActorKind = "CLIENT"
)

// Capability represents a permitted operation.
type Capability string

const (
	CapVideoView      Capability = "video:view"
	CapVideoUpload    Capability = "video:upload"
	CapVideoDelete    Capability = "video:delete"
	CapVideoAssign    Capability = "video:assign"
	CapPlaylistView   Capability = "playlist:view"
	CapCodeGenerate   Capability = "code:generate"
	CapCodeDeactivate Capability = "code:deactivate"
	CapDeletionReview Capability = "deletion:review"
	CapAuditView      Capability = "audit:view"
	CapAccountManage  Capability = "account:manage"
)

// Registry maps actor kinds to their capability sets.
type Registry struct {
	kindCapabilities map[ActorKind][]Capability
}

func NewRegistry() *Registry {
	r := &Registry{
		kindCapabilities: make(map[ActorKind][]Capability),
	}
	r.initializeKindCapabilities()
	return r
}

func (r *Registry) initializeKindCapabilities() {
	r.kindCapabilities[KindAdministrator] = []Capability{
		CapVideoView,
		CapVideoUpload,
		CapVideoDelete,
		CapVideoAssign,
		CapPlaylistView,
		CapCodeGenerate,
		CapCodeDeactivate,
		CapDeletionReview,
		CapAuditView,
		CapAccountManage,
	}

	r.kindCapabilities[KindRegularUser] = []Capability{
		CapVideoView,
		CapVideoUpload,
		CapVideoDelete,
		CapAccountManage,
	}

	r.kindCapabilities[KindStaffTenant] = []Capability{
		CapVideoView,
		CapVideoUpload,
		CapVideoDelete,
		CapVideoAssign,
		CapCodeGenerate,
		CapCodeDeactivate,
		CapAccountManage,
	}

	// Client devices are playback-only endpoints.
	r.kindCapabilities[KindClientDevice] = []Capability{
		CapPlaylistView,
	}
}

// Has reports whether the kind carries the capability. Elevated accounts
// get the administrator set regardless of their kind.
func (r *Registry) Has(kind ActorKind, elevated bool, capability Capability) bool {
	if elevated {
		kind = KindAdministrator
	}
	capabilities, exists := r.kindCapabilities[kind]
	if !exists {
		return false
	}
	for _, c := range capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

// Capabilities returns a copy of the capability set for the kind.
func (r *Registry) Capabilities(kind ActorKind) []Capability {
	capabilities, exists := r.kindCapabilities[kind]
	if !exists {
		return []Capability{}
	}
	result := make([]Capability, len(capabilities))
	copy(result, capabilities)
	return result
}

// IsValidKind reports whether the kind is known.
func (r *Registry) IsValidKind(kind ActorKind) bool {
	_, exists := r.kindCapabilities[kind]
	return exists
}

// AllKinds returns every actor kind.
func (r *Registry) AllKinds() []ActorKind {
	return []ActorKind{KindAdministrator, KindRegularUser, KindStaffTenant, KindClientDevice}
}
