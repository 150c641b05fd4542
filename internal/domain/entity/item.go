package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxQuantity tope de cantidades y deltas: las columnas de stock son INTEGER.
const MaxQuantity = math.MaxInt32

// Categorías de inventario.
const (
	CategoryMedicine  = "MEDICINE"
	CategorySupply    = "SUPPLY"
	CategoryEquipment = "EQUIPMENT"
	CategoryFood      = "FOOD"
	CategoryOther     = "OTHER"
)

// Categories en el orden usado por reportes.
var Categories = []string{CategoryMedicine, CategorySupply, CategoryEquipment, CategoryFood, CategoryOther}

// Unidades de medida.
const (
	UnitPieces    = "PIECES"
	UnitBoxes     = "BOXES"
	UnitBottles   = "BOTTLES"
	UnitKilograms = "KILOGRAMS"
	UnitLiters    = "LITERS"
	UnitPacks     = "PACKS"
)

var units = map[string]bool{
	UnitPieces: true, UnitBoxes: true, UnitBottles: true,
	UnitKilograms: true, UnitLiters: true, UnitPacks: true,
}

// ValidCategory informa si c pertenece a la enumeración fija.
func ValidCategory(c string) bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// ValidUnit informa si u pertenece a la enumeración fija.
func ValidUnit(u string) bool { return units[u] }

// InventoryItem representa un artículo del inventario de la clínica (medicamento, insumo, equipo, alimento).
// Quantity es la fuente de verdad del stock actual y solo cambia vía movimientos (StockMovement).
// Los artículos se desactivan (IsActive=false) en lugar de borrarse para conservar el historial.
type InventoryItem struct {
	ID               string
	SKU              string
	Name             string
	Description      string
	Category         string
	Unit             string
	Quantity         int
	ReorderThreshold int
	UnitPrice        decimal.Decimal
	ExpiryDate       *time.Time // solo fecha; nil = no perecedero
	SupplierID       string     // vacío si no tiene proveedor
	LastRestockedAt  *time.Time
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StockValue devuelve UnitPrice * Quantity.
func (i *InventoryItem) StockValue() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
