package dto

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/handiism/modplan/internal/model"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// FlexibleID accepts an identifier encoded either as a JSON string or a
// JSON number.
type FlexibleID string

// UnmarshalJSON parses "42", 42 and null.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if n == "" {
		*id = ""
		return nil
	}
	if i, err := n.Int64(); err == nil {
		*id = FlexibleID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = FlexibleID(n.String())
	return nil
}

// AuthResponse is returned by every auth endpoint.
type AuthResponse struct {
	Success bool       `json:"success"`
	ID      FlexibleID `json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Message string     `json:"message"`
}

// ToUser converts the response to a model.User.
//
// A missing name falls back to the local part of the e-mail address.
func (r *AuthResponse) ToUser(guest bool) model.User {
	name := r.Name
	if name == "" {
		name, _, _ = strings.Cut(r.Email, "@")
	}
	return model.User{
		ID:      string(r.ID),
		Name:    name,
		Email:   r.Email,
		IsGuest: guest,
	}
}
