package dto

// LoginRequest is the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest is the token refresh request body
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest is the password change request body
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// RegisterOrganizationRequest registers an organization together with its
// first user account.
type RegisterOrganizationRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=200"`
	ContactEmail string `json:"contact_email" binding:"required,email"`
	IsBuyer      bool   `json:"is_buyer"`
	IsOperator   bool   `json:"is_operator"`

	AdminEmail       string `json:"admin_email" binding:"required,email"`
	AdminPassword    string `json:"admin_password" binding:"required,min=8,max=128"`
	AdminDisplayName string `json:"admin_display_name" binding:"required,min=1,max=100"`
}

// UpdateOrganizationRequest updates mutable organization fields. Nil fields
// stay unchanged.
type UpdateOrganizationRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=200"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
}

// NotificationListRequest narrows the notification feed query
type NotificationListRequest struct {
	Page       int  `form:"page" binding:"omitempty,min=1"`
	PageSize   int  `form:"page_size" binding:"omitempty,min=1,max=100"`
	UnreadOnly bool `form:"unread_only"`
}
