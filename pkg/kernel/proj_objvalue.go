package kernel

import "strings"

type Email string

// Normalize lowercases and trims the address; uniqueness is checked on the normalized form
func (e Email) Normalize() Email { return Email(strings.ToLower(strings.TrimSpace(string(e)))) }
func (e Email) String() string   { return string(e) }
func (e Email) IsValid() bool {
	s := string(e)
	at := strings.IndexByte(s, '@')
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}

type Phone string

type FirstName string

type LastName string

// BucketURL is a URL or key pointing into object storage
type BucketURL string

// StorageKey is the object key of an uploaded file inside the bucket
type StorageKey string

func (k StorageKey) String() string { return string(k) }
func (k StorageKey) IsEmpty() bool  { return string(k) == "" }

// SocialLinks groups optional profile links
type SocialLinks struct {
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Facebook string `json:"facebook,omitempty"`
}

// IsEmpty reports whether no link is set
func (s SocialLinks) IsEmpty() bool {
	return s.LinkedIn == "" && s.Twitter == "" && s.Facebook == ""
}
