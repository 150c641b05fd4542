package entity

import "time"

// Supplier proveedor de reposición; referenciado por artículos y órdenes de compra.
type Supplier struct {
	ID            string
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
	IsActive      bool
	CreatedAt     time.Time
}
