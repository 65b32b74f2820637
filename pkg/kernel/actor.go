package kernel

// Actor is the authenticated caller of a write operation
type Actor struct {
	UserID     UserID
	ExternalID ExternalIdentity
	Admin      bool
}

// Owns reports whether the actor is the given user, or an admin
func (a Actor) Owns(userID UserID) bool {
	return a.Admin || (!a.UserID.IsEmpty() && a.UserID == userID)
}

// IsExternal reports whether the actor holds the given external identity, or is an admin
func (a Actor) IsExternal(ext ExternalIdentity) bool {
	return a.Admin || (!a.ExternalID.IsEmpty() && a.ExternalID == ext)
}
