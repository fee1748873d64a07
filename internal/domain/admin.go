package domain

import "time"

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Admin is a platform administrator allowed to manage questions
type Admin struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

type AdminTable struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    string
}

func GetAdminTable() AdminTable {
	return AdminTable{
		ID:           "id",
		Name:         "name",
		Email:        "email",
		PasswordHash: "password_hash",
		Role:         "role",
		CreatedAt:    "created_at",
	}
}

func (t AdminTable) GetTableName() string {
	return "admins"
}

// AdminProfile is the public view of an admin
type AdminProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

func (a *Admin) Profile() AdminProfile {
	return AdminProfile{
		ID:    a.ID,
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
	}
}
