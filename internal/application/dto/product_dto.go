package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /productos/ (y cada ítem de /productos/bulk/).
// Stock es el saldo de apertura del producto.
type CreateProductRequest struct {
	Nombre      string          `json:"nombre" validate:"required,max=100"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int64           `json:"stock" validate:"gte=0"`
	IDCategoria int64           `json:"id_categoria" validate:"required,gt=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	IDProducto  int64           `json:"id_producto"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int64           `json:"stock"`
	IDCategoria int64           `json:"id_categoria"`
	CreadoEn    time.Time       `json:"creado_en"`
}

// ProductListItem producto con nombre de categoría y stock disponible (GET /productos/).
type ProductListItem struct {
	ProductResponse
	CategoriaNombre string `json:"categoria_nombre"`
	StockDisponible int64  `json:"stock_disponible"`
}

// ProductFilterRequest filtros de GET /productos/ (nil = sin filtro).
type ProductFilterRequest struct {
	StockMinimo  *int64
	CategoriaID  *int64
	PrecioMinimo *decimal.Decimal
	PrecioMaximo *decimal.Decimal
}

// BulkProductFailure ítem rechazado en la creación masiva.
type BulkProductFailure struct {
	Producto CreateProductRequest `json:"producto"`
	Error    string               `json:"error"`
}

// BulkProductResult resultado de POST /productos/bulk/.
type BulkProductResult struct {
	IDLote        string               `json:"id_lote"`
	Creados       []ProductResponse    `json:"creados"`
	Fallidos      []BulkProductFailure `json:"fallidos"`
	TotalCreados  int                  `json:"total_creados"`
	TotalFallidos int                  `json:"total_fallidos"`
}
