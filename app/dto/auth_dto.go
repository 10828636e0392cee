package dto

// SignupRequest represents the request payload for account registration
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=60"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// LoginRequest represents the request payload for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// TokenPairDTO carries the issued JWT pair
type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// CustomerDTO represents account information returned by auth endpoints
type CustomerDTO struct {
	ID        uint   `json:"id"`
	UUID      string `json:"uuid"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	Customer CustomerDTO  `json:"customer"`
	Tokens   TokenPairDTO `json:"tokens"`
}

// ProfileResponse is returned by the authenticated profile endpoint
type ProfileResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	LinkCount int64  `json:"link_count"`
}
