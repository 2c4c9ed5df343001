package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/tienda/pkg/errors"
	"github.com/xiebiao/tienda/pkg/logger"
)

// ErrorBody 统一错误响应结构
// 设计说明：
// 1. Error是用户友好的提示信息
// 2. Code是业务错误码，Kind是稳定的错误类别（客户端据此分支）
type ErrorBody struct {
	Error string         `json:"error" example:"No hay suficiente cantidad disponible para la venta"`
	Code  int            `json:"code" example:"40001"`
	Kind  apperrors.Kind `json:"kind" example:"insufficient_stock"`
}

// Success 成功响应（HTTP 200，直接返回业务数据）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	result, err := uc.Execute(...)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 记录详细错误到日志（包含内部错误）
	log := logger.FromContext(c.Request.Context())
	if appErr.Status >= http.StatusInternalServerError || appErr.Err != nil {
		log.Error("request failed",
			zap.Int("code", appErr.Code),
			zap.String("kind", string(appErr.Kind)),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Err),
		)
	} else {
		log.Debug("request rejected",
			zap.Int("code", appErr.Code),
			zap.String("kind", string(appErr.Kind)),
			zap.String("message", appErr.Message),
		)
	}
	_ = c.Error(err)

	c.JSON(appErr.Status, ErrorBody{
		Error: appErr.Message,
		Code:  appErr.Code,
		Kind:  appErr.Kind,
	})
}

// BindError 参数绑定失败
func BindError(c *gin.Context, err error) {
	Error(c, apperrors.New(apperrors.ErrCodeBindError, "Parámetros inválidos: "+err.Error()))
}
