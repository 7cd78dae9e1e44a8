package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
	"github.com/jhoicas/tienda-inventario-api/internal/application/usecase"
	"github.com/jhoicas/tienda-inventario-api/internal/domain"
)

// ProductHandler maneja las peticiones HTTP de productos.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Description  stock es el saldo de apertura del producto.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/productos/ [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// BulkCreate godoc
// @Summary      Crear productos en lote
// @Description  Cada ítem se procesa de forma independiente; los fallidos se reportan sin abortar el lote.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body  body      []dto.CreateProductRequest  true  "Productos"
// @Success      201   {object}  dto.BulkProductResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/productos/bulk/ [post]
func (h *ProductHandler) BulkCreate(c *fiber.Ctx) error {
	var items []dto.CreateProductRequest
	if err := c.BodyParser(&items); err != nil {
		return writeError(c, domain.NewValidation("", "cuerpo inválido: se espera una lista de productos"))
	}
	out, err := h.uc.BulkCreate(c.UserContext(), items)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         productos
// @Produce      json
// @Param        id   path      int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/productos/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Param        stock_minimo   query  int     false  "Stock mínimo"
// @Param        categoria_id   query  int     false  "Categoría"
// @Param        precio_minimo  query  number  false  "Precio mínimo"
// @Param        precio_maximo  query  number  false  "Precio máximo"
// @Success      200  {array}   dto.ProductListItem
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/productos/ [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var (
		f   dto.ProductFilterRequest
		err error
	)
	if f.StockMinimo, err = queryInt64(c, "stock_minimo"); err != nil {
		return writeError(c, err)
	}
	if f.CategoriaID, err = queryInt64(c, "categoria_id"); err != nil {
		return writeError(c, err)
	}
	if f.PrecioMinimo, err = queryDecimal(c, "precio_minimo"); err != nil {
		return writeError(c, err)
	}
	if f.PrecioMaximo, err = queryDecimal(c, "precio_maximo"); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
