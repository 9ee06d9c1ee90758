package user

import (
	"encoding/json"
	"fmt"

	"folharh/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Roles the application distinguishes when rendering permissions.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleOperator = "operator"
)

// User is the typed view of one application user record.
type User struct {
	ID                string         `json:"id"`
	Username          string         `json:"username"`
	FullName          string         `json:"fullName"`
	Email             string         `json:"email"`
	PasswordHash      string         `json:"passwordHash"`
	Role              string         `json:"role"`
	BranchID          string         `json:"branchId"`
	CustomPermissions map[string]any `json:"customPermissions,omitempty"`
	IsActive          bool           `json:"isActive"`
	LastLoginAt       string         `json:"lastLoginAt"`
}

// New creates a user with a fresh id and a bcrypt hash of the password.
func New(username, fullName, role, password string) (User, error) {
	if username == "" {
		return User{}, fmt.Errorf("o nome de utilizador não pode ser vazio")
	}
	if len(password) < 8 {
		return User{}, fmt.Errorf("a palavra-passe deve ter pelo menos 8 caracteres")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("erro ao gerar o hash da palavra-passe: %w", err)
	}

	return User{
		ID:           uuid.New().String(),
		Username:     username,
		FullName:     fullName,
		Role:         role,
		PasswordHash: string(hash),
		IsActive:     true,
	}, nil
}

// CheckPassword reports whether the password matches the stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// FromEnvelope decodes the users array out of a collection envelope. The
// auxiliary session fields in the state (current user, auth flag) are
// ignored here.
func FromEnvelope(env *storage.Envelope) ([]User, error) {
	raw, ok := env.State["users"]
	if !ok || len(raw) == 0 {
		return nil, nil
	}

	var users []User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("estado de utilizadores inválido: %w", err)
	}
	return users, nil
}
