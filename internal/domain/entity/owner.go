package entity

import "time"

// Tipos de contacto admitidos para un propietario.
const (
	OwnerPersona  = "persona"
	OwnerEmpresa  = "empresa"
	OwnerAgencia  = "agencia"
	OwnerGobierno = "gobierno"
)

// Owner perfil de propietario de soportes, uno por usuario.
type Owner struct {
	ID             string
	UserID         string
	TipoContacto   string
	NombreContacto string
	Empresa        string
	Email          string
	Telefono       string
	Pais           string
	Ciudad         string
	Direccion      string
	NIT            string
	SitioWeb       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
