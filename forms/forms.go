package forms

import "strings"

// LoginForm holds the login view inputs
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,password"`
}

// Validate checks the form without touching the network
func (f LoginForm) Validate() error {
	return validateStruct(f.normalised())
}

func (f LoginForm) normalised() LoginForm {
	f.Email = strings.TrimSpace(f.Email)
	return f
}

// RegisterForm holds the register view inputs
type RegisterForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,password"`
}

// Validate checks the form without touching the network
func (f RegisterForm) Validate() error {
	return validateStruct(f.normalised())
}

func (f RegisterForm) normalised() RegisterForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	return f
}
