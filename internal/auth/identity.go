package auth

// Identity describes who is making a request. It is passed explicitly into
// the endorsement and visibility logic instead of being read from ambient
// request state.
//
// UserID is empty for anonymous visitors. SessionKey is the anonymous
// browser-session key used to deduplicate endorsements without a login.
type Identity struct {
	UserID     string
	Role       string
	SessionKey string
}

func (i Identity) IsAuthenticated() bool {
	return i.UserID != ""
}

func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}
