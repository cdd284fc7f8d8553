package model

// SessionResponse is returned after a session cookie is set or cleared
type SessionResponse struct {
	Success bool `json:"success"`
}

// IdentityUserInfo is the part of the identity provider userinfo response used to resolve a principal
type IdentityUserInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
	Name          string `json:"name"`
}
