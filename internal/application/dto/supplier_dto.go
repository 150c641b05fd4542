package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor.
type UpdateSupplierRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	IsActive      *bool   `json:"is_active"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
