package dto

type AuthStatusRequest struct {
	Token string `json:"token"`
}

type AuthStatusResponse struct {
	Authenticated bool  `json:"authenticated"`
	ExpiresAt     int64 `json:"expires_at,omitempty"`
}
