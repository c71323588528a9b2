package constants

// PortalRole distinguishes the two halves of a portal pair.
type PortalRole uint8

const (
	PortalEntrance PortalRole = iota
	PortalExit
)

// String returns role name for logs.
func (r PortalRole) String() string {
	switch r {
	case PortalEntrance:
		return "entrance"
	case PortalExit:
		return "exit"
	default:
		return "unknown"
	}
}

// portalTemplates — NPC template per role. Policy, not data.
var portalTemplates = [...]uint32{
	PortalEntrance: 3891, // green
	PortalExit:     6949, // yellow
}

// PortalTemplateID returns NPC template ID spawned for the given role.
// Returns 0 for unknown roles.
func PortalTemplateID(role PortalRole) uint32 {
	if int(role) >= len(portalTemplates) {
		return 0
	}
	return portalTemplates[role]
}

// Nominal HP/MP of a spawned portal. Template MaxHP/MaxMP are not applied to
// portal units; clients expect these values.
const (
	PortalNominalHP int32 = 862
	PortalNominalMP int32 = 290
)

// BookKindPublic marks the public portal book in book/delete requests.
// Any other value addresses the private book.
const BookKindPublic byte = 1

// IsPrivateBook reports whether a request's book kind addresses the private book.
func IsPrivateBook(kind byte) bool {
	return kind != BookKindPublic
}

// FakeSkillTransferTelescope — fake skill ID that opens the transfer telescope view.
const FakeSkillTransferTelescope uint32 = 20580

// TransferTelescopeRange — view range sent with the telescope toggle.
const TransferTelescopeRange float32 = 1000

// ItemTaskSkillReagents — item task type for reagents consumed by a skill.
const ItemTaskSkillReagents byte = 20
