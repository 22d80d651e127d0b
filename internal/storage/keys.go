// Package storage defines where the portal's state lives in the key-value
// store and how it is encoded there.
package storage

const (
	// SessionFlagKey holds "true" while a session is active.
	SessionFlagKey = "portal_auth"
	// CurrentIdentityKey holds the redacted identity of the session owner.
	CurrentIdentityKey = "portal_user"
	// DirectoryKey holds every registered account, credentials included.
	DirectoryKey = "portal_users"

	positionsKeyPrefix  = "portal_positions_"
	candidatesKeyPrefix = "portal_candidates_"

	SessionFlagValue = "true"
)

// PositionsKey is the owner-scoped key of a position collection.
func PositionsKey(ownerID string) string {
	return positionsKeyPrefix + ownerID
}

// CandidatesKey is the owner-scoped key of a candidate collection.
func CandidatesKey(ownerID string) string {
	return candidatesKeyPrefix + ownerID
}
