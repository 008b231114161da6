// --- models/models.go ---
package models

import "github.com/golang-jwt/jwt/v5"

// Task represents one calendar entry. The JSON field names match the
// collections already on disk (materia, profesor, hora), so existing
// tasks.json files load unchanged.
type Task struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Materia     string `json:"materia,omitempty"`
	Profesor    string `json:"profesor,omitempty"`
	Date        string `json:"date"` // YYYY-MM-DD
	Hora        string `json:"hora,omitempty"`
	Status      string `json:"status"`
	Owner       string `json:"owner"`
}

// TaskPatch carries the fields a PUT may change. Pointers distinguish
// "field absent" from "field set to empty". The id and owner are never
// patchable.
type TaskPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Materia     *string `json:"materia"`
	Profesor    *string `json:"profesor"`
	Date        *string `json:"date"`
	Hora        *string `json:"hora"`
	Status      *string `json:"status"`
}

// Apply merges the provided fields into t, leaving absent ones untouched.
func (p TaskPatch) Apply(t *Task) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Materia != nil {
		t.Materia = *p.Materia
	}
	if p.Profesor != nil {
		t.Profesor = *p.Profesor
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Hora != nil {
		t.Hora = *p.Hora
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

// User represents a stored account. The hash is kept under "password" for
// compatibility with existing users.json files; the API never returns User
// records, only {success:true}.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
}

// Credentials defines the structure for user login and registration requests.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Claims defines the information stored in the JWT.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
