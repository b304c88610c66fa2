package models

import "time"

// Admin is an administrative account. Passwords are stored as bcrypt hashes;
// the hash never leaves the service layer.
type Admin struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Info returns the account with credential material stripped.
func (a Admin) Info() AdminInfo {
	return AdminInfo{
		ID:       a.ID,
		Name:     a.Name,
		Email:    a.Email,
		Phone:    a.Phone,
		Username: a.Username,
		Role:     a.Role,
	}
}

// AdminInfo is the sanitized account shape returned to clients.
type AdminInfo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Audit actions recorded for administrative operations.
const (
	AuditActionLogin         = "LOGIN"
	AuditActionCreateAdmin   = "CREATE_ADMIN"
	AuditActionUpdateProfile = "UPDATE_PROFILE"
)

// AuditLog records an administrative action. Writes are best effort.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	Actor      string    `db:"actor" json:"actor"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
