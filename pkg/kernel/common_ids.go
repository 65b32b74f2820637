package kernel

import "github.com/google/uuid"

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

// ExternalIdentity is the subject issued by the identity provider for a user.
// It is a join key into users.external_id and never a UserID.
type ExternalIdentity string

func NewExternalIdentity(subject string) ExternalIdentity { return ExternalIdentity(subject) }
func (e ExternalIdentity) String() string                 { return string(e) }
func (e ExternalIdentity) IsEmpty() bool                  { return string(e) == "" }

// NewID returns a fresh random identifier for any entity
func NewID() string {
	return uuid.NewString()
}
