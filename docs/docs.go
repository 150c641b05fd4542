// Package docs registra la especificación OpenAPI de la API para swag y el Swagger UI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/api/auth/register": {"post": {"tags": ["auth"], "summary": "Registrar usuario (rol client)", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}},
        "/api/auth/login": {"post": {"tags": ["auth"], "summary": "Iniciar sesión", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/auth/me": {"get": {"tags": ["auth"], "security": [{"Bearer": []}], "summary": "Usuario autenticado", "responses": {"200": {"description": "OK"}}}},
        "/api/users": {
            "get": {"tags": ["users"], "security": [{"Bearer": []}], "summary": "Listar usuarios (admin)", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["users"], "security": [{"Bearer": []}], "summary": "Crear usuario con cualquier rol (admin)", "responses": {"201": {"description": "Created"}}}
        },
        "/api/users/{id}/status": {"patch": {"tags": ["users"], "security": [{"Bearer": []}], "summary": "Activar o desactivar una cuenta", "responses": {"200": {"description": "OK"}}}},
        "/api/items": {
            "get": {"tags": ["items"], "security": [{"Bearer": []}], "summary": "Listar artículos", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["items"], "security": [{"Bearer": []}], "summary": "Crear artículo", "responses": {"201": {"description": "Created"}, "409": {"description": "SKU duplicado"}}}
        },
        "/api/items/{id}": {
            "get": {"tags": ["items"], "security": [{"Bearer": []}], "summary": "Obtener artículo", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["items"], "security": [{"Bearer": []}], "summary": "Actualizar artículo", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["items"], "security": [{"Bearer": []}], "summary": "Desactivar artículo", "responses": {"204": {"description": "No Content"}}}
        },
        "/api/inventory/movements": {
            "get": {"tags": ["inventory"], "security": [{"Bearer": []}], "summary": "Reporte de movimientos", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["inventory"], "security": [{"Bearer": []}], "summary": "Registrar movimiento de stock", "responses": {"201": {"description": "Created"}, "409": {"description": "Stock insuficiente o conflicto concurrente"}}}
        },
        "/api/inventory/movements/batch": {"post": {"tags": ["inventory"], "security": [{"Bearer": []}], "summary": "Registrar lote de movimientos", "responses": {"200": {"description": "Totales y resultado por línea"}, "400": {"description": "Lote vacío o mayor a 100 líneas"}}}},
        "/api/inventory/alerts": {"get": {"tags": ["inventory"], "security": [{"Bearer": []}], "summary": "Artículos que requieren atención", "responses": {"200": {"description": "OK"}}}},
        "/api/inventory/replenishment-list": {"get": {"tags": ["inventory"], "security": [{"Bearer": []}], "summary": "Lista de reposición", "responses": {"200": {"description": "OK"}}}},
        "/api/inventory/reconcile": {"get": {"tags": ["inventory"], "security": [{"Bearer": []}], "summary": "Reconciliación del ledger", "responses": {"200": {"description": "OK"}}}},
        "/api/inventory/items/{id}/history": {"get": {"tags": ["inventory"], "security": [{"Bearer": []}], "summary": "Historial de un artículo", "responses": {"200": {"description": "OK"}}}},
        "/api/inventory/items/{id}/status": {"get": {"tags": ["inventory"], "security": [{"Bearer": []}], "summary": "Estado derivado", "responses": {"200": {"description": "OK"}}}},
        "/api/inventory/items/{id}/reconcile": {"get": {"tags": ["inventory"], "security": [{"Bearer": []}], "summary": "Reconciliación de un artículo", "responses": {"200": {"description": "OK"}}}},
        "/api/suppliers": {
            "get": {"tags": ["suppliers"], "security": [{"Bearer": []}], "summary": "Listar proveedores", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["suppliers"], "security": [{"Bearer": []}], "summary": "Crear proveedor", "responses": {"201": {"description": "Created"}}}
        },
        "/api/suppliers/{id}": {
            "get": {"tags": ["suppliers"], "security": [{"Bearer": []}], "summary": "Obtener proveedor", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["suppliers"], "security": [{"Bearer": []}], "summary": "Actualizar proveedor", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["suppliers"], "security": [{"Bearer": []}], "summary": "Desactivar proveedor", "responses": {"204": {"description": "No Content"}}}
        },
        "/api/purchase-orders": {
            "get": {"tags": ["purchase-orders"], "security": [{"Bearer": []}], "summary": "Listar órdenes", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["purchase-orders"], "security": [{"Bearer": []}], "summary": "Crear orden (DRAFT)", "responses": {"201": {"description": "Created"}}}
        },
        "/api/purchase-orders/{id}": {"get": {"tags": ["purchase-orders"], "security": [{"Bearer": []}], "summary": "Obtener orden", "responses": {"200": {"description": "OK"}}}},
        "/api/purchase-orders/{id}/status": {"patch": {"tags": ["purchase-orders"], "security": [{"Bearer": []}], "summary": "Cambiar estado", "responses": {"200": {"description": "OK"}}}},
        "/api/purchase-orders/{id}/receive": {"post": {"tags": ["purchase-orders"], "security": [{"Bearer": []}], "summary": "Recibir mercadería", "responses": {"200": {"description": "OK"}}}},
        "/api/dashboard": {"get": {"tags": ["dashboard"], "security": [{"Bearer": []}], "summary": "Resumen según rol", "responses": {"200": {"description": "OK"}}}},
        "/api/dashboard/categories": {"get": {"tags": ["dashboard"], "security": [{"Bearer": []}], "summary": "Desglose por categoría", "responses": {"200": {"description": "OK"}}}},
        "/api/dashboard/suppliers": {"get": {"tags": ["dashboard"], "security": [{"Bearer": []}], "summary": "Artículos y valor por proveedor", "responses": {"200": {"description": "OK"}}}},
        "/api/export/items.csv": {"get": {"tags": ["export"], "security": [{"Bearer": []}], "produces": ["text/csv"], "summary": "Catálogo en CSV", "responses": {"200": {"description": "OK"}}}},
        "/api/export/movements.csv": {"get": {"tags": ["export"], "security": [{"Bearer": []}], "produces": ["text/csv"], "summary": "Movimientos en CSV", "responses": {"200": {"description": "OK"}}}},
        "/api/export/stock-report.pdf": {"get": {"tags": ["export"], "security": [{"Bearer": []}], "produces": ["application/pdf"], "summary": "Reporte de stock en PDF", "responses": {"200": {"description": "OK"}}}},
        "/api/pricing/quote": {"post": {"tags": ["pricing"], "security": [{"Bearer": []}], "summary": "Cotizar", "responses": {"200": {"description": "OK"}}}},
        "/api/pricing/policies": {"get": {"tags": ["pricing"], "security": [{"Bearer": []}], "summary": "Políticas de precio", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo metadatos editables en tiempo de ejecución.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pawsitive Care Inventory API",
	Description:      "Catálogo, ledger de movimientos de stock, alertas, precios y órdenes de compra de la clínica.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
