package product

import (
	apperrors "github.com/xiebiao/tienda/pkg/errors"
)

// 商品领域错误定义
// 提示信息保持西班牙语,与前端界面一致
var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = apperrors.New(apperrors.ErrCodeProductNotFound, "Producto no encontrado")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "No hay suficiente cantidad disponible para la venta")

	// ErrInvalidQuantity 补货/销售数量必须为正数
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "La cantidad debe ser un número positivo")

	// ErrStockLimitExceeded 数量或补货后的库存超过MaxQuantity
	ErrStockLimitExceeded = apperrors.New(apperrors.ErrCodeStockLimit, "La cantidad supera el máximo permitido")

	// ErrNameRequired 商品名称为空
	ErrNameRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "El nombre del producto es obligatorio")

	// ErrInvalidPrice 价格为负数
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "El precio debe ser un número no negativo")

	// ErrInvalidInitialQuantity 初始库存为负数
	ErrInvalidInitialQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "La cantidad inicial no puede ser negativa")

	// ErrCreateFailed 商品写入失败
	ErrCreateFailed = apperrors.New(apperrors.ErrCodeProductCreate, "Error al agregar el producto")

	// ErrRestockFailed 补货写入失败
	ErrRestockFailed = apperrors.New(apperrors.ErrCodeRestock, "Error al actualizar la cantidad")

	// ErrLogFailed 库存日志写入失败(事务已回滚)
	ErrLogFailed = apperrors.New(apperrors.ErrCodeLogError, "Error al registrar la acción")
)
