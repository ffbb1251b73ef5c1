package models

// AuthRequest is the shared body for registration and login.
type AuthRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	FileName       string `json:"file_name"`
	ProfilePicture string `json:"profile_picture"`
}

// ConfirmRequest is the POST /confirm body.
type ConfirmRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// AuthTokens holds the token set returned by the identity provider.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// LoginResponse is the POST /login body.
type LoginResponse struct {
	Email        string `json:"email"`
	IsConfirmed  bool   `json:"isConfirmed"`
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// MessageResponse is the generic success body used by write endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
