package entity

import "time"

// Lead contacto comercial del CRM de propietarios. Borrado lógico vía DeletedAt.
type Lead struct {
	ID        string
	Nombre    string
	Empresa   string
	Email     string
	Telefono  string
	Ciudad    string
	Sector    string
	Interes   string
	Origen    string
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InTrash indica si el lead está en la papelera.
func (l *Lead) InTrash() bool {
	return l.DeletedAt != nil
}
