package dto

// EmailRequestDTO is the body of POST /v1/auth/mail
type EmailRequestDTO struct {
	Email string `json:"email" binding:"required,email"`
}

// ConfirmationRequestDTO is the body of POST /v1/auth/token
type ConfirmationRequestDTO struct {
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// RefreshRequestDTO is the body of POST /v1/auth/refresh
type RefreshRequestDTO struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse carries the issued credentials
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
