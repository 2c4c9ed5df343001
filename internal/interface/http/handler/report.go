package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/tienda/internal/application/report"
	"github.com/xiebiao/tienda/internal/interface/http/dto"
	"github.com/xiebiao/tienda/pkg/response"
)

// ReportHandler 报表HTTP处理器(销售额、订单)
type ReportHandler struct {
	revenueUseCase *report.RevenueUseCase
	ordersUseCase  *report.OrdersUseCase
}

// NewReportHandler 创建报表处理器
func NewReportHandler(revenueUseCase *report.RevenueUseCase, ordersUseCase *report.OrdersUseCase) *ReportHandler {
	return &ReportHandler{
		revenueUseCase: revenueUseCase,
		ordersUseCase:  ordersUseCase,
	}
}

// MonthlyRevenue 月销售额
// @Summary      月销售额
// @Tags         报表
// @Produce      json
// @Param        month query string true "月份(YYYY-MM),也可用mes"
// @Success      200 {object} dto.RevenueResponse
// @Failure      400 {object} response.ErrorBody "月份缺失或格式错误"
// @Router       /api/ganancias [get]
func (h *ReportHandler) MonthlyRevenue(c *gin.Context) {
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.revenueUseCase.Monthly(c.Request.Context(), q.Value())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.RevenueResponse{TotalRevenue: result.TotalRevenue})
}

// DailyRevenue 日销售额
// @Summary      日销售额
// @Tags         报表
// @Produce      json
// @Param        day query string true "日期(YYYY-MM-DD),也可用dia"
// @Success      200 {object} dto.RevenueResponse
// @Failure      400 {object} response.ErrorBody "日期缺失或格式错误"
// @Router       /api/ganancias/dia [get]
func (h *ReportHandler) DailyRevenue(c *gin.Context) {
	var q dto.DayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.revenueUseCase.Daily(c.Request.Context(), q.Value())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.RevenueResponse{TotalRevenue: result.TotalRevenue})
}

// MonthlyOrders 月度订单
// @Summary      月度订单
// @Description  订单附带商品当前名称,最新的在前
// @Tags         报表
// @Produce      json
// @Param        month query string true "月份(YYYY-MM),也可用mes"
// @Success      200 {object} dto.MonthOrdersResponse
// @Failure      400 {object} response.ErrorBody
// @Router       /api/ordenes [get]
func (h *ReportHandler) MonthlyOrders(c *gin.Context) {
	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	views, err := h.ordersUseCase.ForMonth(c.Request.Context(), q.Value())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToMonthOrdersResponse(views))
}

// DailyOrders 当日订单
// @Summary      当日订单
// @Description  原始销售记录,按写入顺序;没有订单时返回warning和空数组
// @Tags         报表
// @Produce      json
// @Param        day query string true "日期(YYYY-MM-DD),也可用dia"
// @Success      200 {object} dto.DayOrdersResponse
// @Failure      400 {object} response.ErrorBody
// @Router       /api/ordenes/dia [get]
func (h *ReportHandler) DailyOrders(c *gin.Context) {
	var q dto.DayQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.ordersUseCase.ForDay(c.Request.Context(), q.Value())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToDayOrdersResponse(result.Orders, result.Warning))
}
