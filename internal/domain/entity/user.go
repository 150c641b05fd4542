package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleVet    = "vet"
	RoleStaff  = "staff"
	RoleClient = "client"
)

// Capacidades evaluadas por request (RBAC plano, sin herencia entre roles).
const (
	CapInventoryRead  = "inventory:read"
	CapInventoryMove  = "inventory:move"
	CapInventoryWrite = "inventory:write"
	CapInventoryAdmin = "inventory:admin"
	CapPricingQuote   = "pricing:quote"
	CapReportsExport  = "reports:export"
)

var roleCapabilities = map[string][]string{
	RoleAdmin:  {CapInventoryRead, CapInventoryMove, CapInventoryWrite, CapInventoryAdmin, CapPricingQuote, CapReportsExport},
	RoleStaff:  {CapInventoryRead, CapInventoryMove, CapInventoryWrite, CapPricingQuote, CapReportsExport},
	RoleVet:    {CapInventoryRead, CapInventoryMove, CapPricingQuote},
	RoleClient: {CapPricingQuote},
}

// ValidRole informa si r es uno de los cuatro roles.
func ValidRole(r string) bool {
	_, ok := roleCapabilities[r]
	return ok
}

// RoleCan informa si el rol tiene la capacidad.
func RoleCan(role, capability string) bool {
	for _, c := range roleCapabilities[role] {
		if c == capability {
			return true
		}
	}
	return false
}

// User representa un usuario de la clínica.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, vet, staff, client
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
