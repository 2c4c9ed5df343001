package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/tienda/internal/application/inventory"
	"github.com/xiebiao/tienda/internal/application/report"
	"github.com/xiebiao/tienda/internal/domain/product"
	"github.com/xiebiao/tienda/internal/interface/http/dto"
	apperrors "github.com/xiebiao/tienda/pkg/errors"
	"github.com/xiebiao/tienda/pkg/response"
)

// 成功提示(与前端界面文案一致)
const (
	MsgProductCreated = "Producto agregado y registrado correctamente"
	MsgStockAdded     = "Cantidad sumada y registrada correctamente"
	MsgSaleRecorded   = "Venta registrada correctamente"
)

// ErrInvalidProductID 路径中的商品ID不是正整数
var ErrInvalidProductID = apperrors.New(apperrors.ErrCodeInvalidParams, "ID de producto inválido")

// ProductHandler 商品HTTP处理器
type ProductHandler struct {
	createProductUseCase *inventory.CreateProductUseCase
	restockUseCase       *inventory.RestockUseCase
	sellUseCase          *inventory.SellUseCase
	listProductsUseCase  *inventory.ListProductsUseCase
	stockHistoryUseCase  *report.StockHistoryUseCase
}

// NewProductHandler 创建商品处理器
func NewProductHandler(
	createProductUseCase *inventory.CreateProductUseCase,
	restockUseCase *inventory.RestockUseCase,
	sellUseCase *inventory.SellUseCase,
	listProductsUseCase *inventory.ListProductsUseCase,
	stockHistoryUseCase *report.StockHistoryUseCase,
) *ProductHandler {
	return &ProductHandler{
		createProductUseCase: createProductUseCase,
		restockUseCase:       restockUseCase,
		sellUseCase:          sellUseCase,
		listProductsUseCase:  listProductsUseCase,
		stockHistoryUseCase:  stockHistoryUseCase,
	}
}

// CreateProduct 新建商品
// @Summary      新建商品
// @Description  新建商品并写入一条"nuevo producto"库存日志(同一事务)
// @Tags         商品
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateProductRequest true "商品信息"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} response.ErrorBody "参数错误/写入失败"
// @Failure      500 {object} response.ErrorBody "日志写入失败"
// @Router       /api/productos [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	// 缺少必填字段
	switch {
	case req.Name == nil:
		response.Error(c, product.ErrNameRequired)
		return
	case req.Price == nil:
		response.Error(c, product.ErrInvalidPrice)
		return
	case req.Quantity == nil:
		response.Error(c, product.ErrInvalidInitialQuantity)
		return
	}

	result, err := h.createProductUseCase.Execute(c.Request.Context(), inventory.CreateProductRequest{
		Name:     *req.Name,
		Price:    *req.Price,
		Quantity: *req.Quantity,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.MessageResponse{Message: MsgProductCreated, ID: result.ID})
}

// ListProducts 商品列表
// @Summary      商品列表
// @Tags         商品
// @Produce      json
// @Success      200 {array} dto.ProductResponse
// @Failure      500 {object} response.ErrorBody
// @Router       /api/productos [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.listProductsUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToProductList(products))
}

// Restock 补货
// @Summary      补货
// @Description  库存增加quantity件并写入一条"cantidad agregada"库存日志
// @Tags         商品
// @Accept       json
// @Produce      json
// @Param        id path int true "商品ID"
// @Param        request body dto.QuantityRequest true "补货数量"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} response.ErrorBody "数量无效/写入失败"
// @Failure      404 {object} response.ErrorBody "商品不存在"
// @Failure      500 {object} response.ErrorBody "日志写入失败"
// @Router       /api/productos/{id} [put]
func (h *ProductHandler) Restock(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	quantity, ok := bindQuantity(c)
	if !ok {
		return
	}

	result, err := h.restockUseCase.Execute(c.Request.Context(), inventory.RestockRequest{
		ProductID: id,
		Quantity:  quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.MessageResponse{Message: MsgStockAdded, ID: result.ID})
}

// Sell 销售
// @Summary      销售
// @Description  按当前单价卖出quantity件,库存不足时不做任何修改。可选Idempotency-Key头防止重复下单
// @Tags         商品
// @Accept       json
// @Produce      json
// @Param        id path int true "商品ID"
// @Param        Idempotency-Key header string false "幂等键"
// @Param        request body dto.QuantityRequest true "销售数量"
// @Success      200 {object} dto.SellResponse
// @Failure      400 {object} response.ErrorBody "数量无效/库存不足"
// @Failure      404 {object} response.ErrorBody "商品不存在"
// @Failure      409 {object} response.ErrorBody "同一幂等键的请求正在处理"
// @Router       /api/productos/{id}/vender [post]
func (h *ProductHandler) Sell(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}
	quantity, ok := bindQuantity(c)
	if !ok {
		return
	}

	result, err := h.sellUseCase.Execute(c.Request.Context(), inventory.SellRequest{
		ProductID: id,
		Quantity:  quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.SellResponse{
		Message:           MsgSaleRecorded,
		TotalCharged:      result.TotalCharged,
		RemainingQuantity: result.RemainingQuantity,
	})
}

// StockHistory 库存变动历史
// @Summary      库存变动历史
// @Tags         商品
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} dto.StockHistoryResponse
// @Failure      400 {object} response.ErrorBody "ID无效"
// @Failure      404 {object} response.ErrorBody "商品不存在"
// @Router       /api/productos/{id}/registro [get]
func (h *ProductHandler) StockHistory(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	entries, err := h.stockHistoryUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToStockHistoryResponse(entries))
}

// productID 解析路径参数:id,失败时已写入错误响应
func productID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, ErrInvalidProductID)
		return 0, false
	}
	return uint(id), true
}

// bindQuantity 解析{"quantity": n},缺少quantity视为数量无效
func bindQuantity(c *gin.Context) (int, bool) {
	var req dto.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return 0, false
	}
	if req.Quantity == nil {
		response.Error(c, product.ErrInvalidQuantity)
		return 0, false
	}
	return *req.Quantity, true
}
