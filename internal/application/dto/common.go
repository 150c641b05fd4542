package dto

// MaxPageLimit tope de filas por página.
const MaxPageLimit = 100

// DateLayout formato de fechas sin hora (vencimiento, filtros).
const DateLayout = "2006-01-02"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero y recorta a MaxPageLimit.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InsufficientStockResponse cuerpo 409 con cantidades solicitada y disponible.
type InsufficientStockResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	ItemID    string `json:"item_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}
