package dto

// StaffLoginRequest carries the staff credential.
type StaffLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StaffLoginResponse returns the opaque session token. The same token is
// also set as a cookie for browser clients.
type StaffLoginResponse struct {
	Token string `json:"token"`
}
