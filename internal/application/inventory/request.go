package inventory

import (
	"context"

	"github.com/jhoicas/tienda-inventario-api/internal/application/dto"
	"github.com/jhoicas/tienda-inventario-api/internal/domain/entity"
)

// RecordInboundFromRequest adapta el request HTTP al caso de uso RecordInbound.
func (uc *RegisterMovementUseCase) RecordInboundFromRequest(ctx context.Context, in dto.RegisterInboundRequest) (*dto.InboundResponse, error) {
	input := InboundInput{
		ProductID:  in.IDProducto,
		Quantity:   in.Cantidad,
		UnitPrice:  in.PrecioUnitario,
		SupplierID: in.IDProveedor,
	}
	if in.Fecha != nil {
		input.Date = *in.Fecha
	}
	mov, err := uc.RecordInbound(ctx, input)
	if err != nil {
		return nil, err
	}
	return &dto.InboundResponse{
		IDEntrada:      mov.ID,
		IDTransaccion:  mov.TransactionID,
		Fecha:          mov.Date,
		IDProducto:     mov.ProductID,
		Cantidad:       mov.Quantity,
		PrecioUnitario: mov.UnitPrice,
		IDProveedor:    mov.SupplierID,
	}, nil
}

// RecordOutboundFromRequest adapta el request HTTP al caso de uso RecordOutbound.
func (uc *RegisterMovementUseCase) RecordOutboundFromRequest(ctx context.Context, in dto.RegisterOutboundRequest) (*dto.OutboundResponse, error) {
	input := OutboundInput{
		ProductID:  in.IDProducto,
		Quantity:   in.Cantidad,
		UnitPrice:  in.PrecioUnitario,
		CustomerID: in.IDCliente,
	}
	if in.Fecha != nil {
		input.Date = *in.Fecha
	}
	mov, err := uc.RecordOutbound(ctx, input)
	if err != nil {
		return nil, err
	}
	return &dto.OutboundResponse{
		IDSalida:       mov.ID,
		IDTransaccion:  mov.TransactionID,
		Fecha:          mov.Date,
		IDProducto:     mov.ProductID,
		Cantidad:       mov.Quantity,
		PrecioUnitario: mov.UnitPrice,
		IDCliente:      mov.CustomerID,
	}, nil
}

// ListMovementsFromRequest interpreta el rango de fechas del query y devuelve el historial.
func (uc *RegisterMovementUseCase) ListMovementsFromRequest(ctx context.Context, fechaInicio, fechaFin string) ([]dto.MovementResponse, error) {
	from, err := dto.ParseDate("fecha_inicio", fechaInicio, false)
	if err != nil {
		return nil, err
	}
	to, err := dto.ParseDate("fecha_fin", fechaFin, true)
	if err != nil {
		return nil, err
	}
	list, err := uc.ListMovements(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m entity.Movement) dto.MovementResponse {
	r := dto.MovementResponse{
		TipoMovimiento: m.Type,
		IDMovimiento:   m.ID,
		Fecha:          m.Date,
		IDProducto:     m.ProductID,
		NombreProducto: m.ProductName,
		Cantidad:       m.Quantity,
		PrecioUnitario: m.UnitPrice,
	}
	id, name := m.CounterpartyID, m.CounterpartyName
	if m.Type == entity.MovementTypeIN {
		r.IDProveedor, r.NombreProveedor = &id, &name
	} else {
		r.IDCliente, r.NombreCliente = &id, &name
	}
	return r
}
