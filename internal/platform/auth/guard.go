package auth

// Owns reports whether the authenticated caller owns a resource
// belonging to ownerID. Patients can only act on their own rows.
func Owns(callerID, ownerID int64) bool {
	return callerID == ownerID
}
