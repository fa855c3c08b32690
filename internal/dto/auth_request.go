package dto

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangeCredentialsRequest struct {
	OldEmail    string  `json:"old_email" binding:"required"`
	OldPassword string  `json:"old_password" binding:"required"`
	NewEmail    *string `json:"new_email"`
	NewPassword *string `json:"new_password"`
}

type DeleteUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
