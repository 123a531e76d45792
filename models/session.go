package models

// Session is the currently authenticated principal. The zero value means
// "no session" (signed out); a non-empty UID means signed in, anonymously
// or otherwise. Token carries the bearer credential for backends that need
// one re-installed after a restart; Firebase sessions leave it empty.
type Session struct {
	UID       string `json:"uid"`
	Email     string `json:"email,omitempty"`
	Anonymous bool   `json:"anonymous,omitempty"`
	Token     string `json:"token,omitempty"`
}

// SignedIn reports whether the session identifies a principal.
func (s Session) SignedIn() bool {
	return s.UID != ""
}
