package auth

import (
	"burnshop_server/api/middleware"
	"net/http"

	"github.com/MonkyMars/gecho"
)

type formField struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Required  bool   `json:"required"`
	MinLength int    `json:"min_length,omitempty"`
	MaxLength int    `json:"max_length,omitempty"`
}

// Mirrors the validate tags of structs.RegisterRequest and structs.LoginRequest
var (
	registerFields = []formField{
		{Name: "username", Type: "text", Required: true, MinLength: 2, MaxLength: 150},
		{Name: "email", Type: "email", Required: true},
		{Name: "password", Type: "password", Required: true, MinLength: 8, MaxLength: 100},
		{Name: "password_confirm", Type: "password", Required: true},
	}
	loginFields = []formField{
		{Name: "username", Type: "text", Required: true},
		{Name: "password", Type: "password", Required: true},
	}
)

func sendForm(w http.ResponseWriter, r *http.Request, fields []formField) {
	data := map[string]any{
		"fields":    fields,
		"signed_in": false,
	}
	if claims, ok := middleware.GetClaimsFromContext(r.Context()); ok {
		data["signed_in"] = true
		data["username"] = claims.Username
	}

	gecho.Success(w,
		gecho.WithData(data),
		gecho.Send(),
	)
}

// RegisterForm describes the registration form
func (ar *AuthRoutesManager) RegisterForm(w http.ResponseWriter, r *http.Request) {
	sendForm(w, r, registerFields)
}

// LoginForm describes the login form
func (ar *AuthRoutesManager) LoginForm(w http.ResponseWriter, r *http.Request) {
	sendForm(w, r, loginFields)
}

// LogoutForm tells the client whether there is a session to end; the logout itself is a POST
func (ar *AuthRoutesManager) LogoutForm(w http.ResponseWriter, r *http.Request) {
	sendForm(w, r, []formField{})
}
