package dtos

// RegisterRequest creates a user. Students must also send full_name and
// branch; those are validated in the handler since they depend on role.
type RegisterRequest struct {
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Role     string   `json:"role" binding:"omitempty,oneof=STUDENT ADMIN"`
	FullName string   `json:"full_name"`
	Branch   string   `json:"branch"`
	CGPA     *float64 `json:"cgpa" binding:"omitempty,gte=0,lte=10"`
	Phone    string   `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
