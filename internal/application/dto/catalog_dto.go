package dto

import "time"

// CreateCategoryRequest body para POST /categorias/.
type CreateCategoryRequest struct {
	Nombre string `json:"nombre" validate:"required,max=100"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	IDCategoria int64     `json:"id_categoria"`
	Nombre      string    `json:"nombre"`
	CreadoEn    time.Time `json:"creado_en"`
}

// CreateSupplierRequest body para POST /proveedores/.
type CreateSupplierRequest struct {
	Nombre    string `json:"nombre" validate:"required,max=100"`
	Telefono  string `json:"telefono" validate:"required,max=15"`
	Direccion string `json:"direccion" validate:"required,max=255"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	IDProveedor int64     `json:"id_proveedor"`
	Nombre      string    `json:"nombre"`
	Telefono    string    `json:"telefono"`
	Direccion   string    `json:"direccion"`
	CreadoEn    time.Time `json:"creado_en"`
}

// CreateCustomerRequest body para POST /clientes/.
type CreateCustomerRequest struct {
	Nombre   string `json:"nombre" validate:"required,max=100"`
	Correo   string `json:"correo" validate:"required,email,max=100"`
	Telefono string `json:"telefono" validate:"required,max=15"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	IDCliente int64     `json:"id_cliente"`
	Nombre    string    `json:"nombre"`
	Correo    string    `json:"correo"`
	Telefono  string    `json:"telefono"`
	CreadoEn  time.Time `json:"creado_en"`
}
