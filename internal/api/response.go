package api

import (
	"errors"
	"net/http"

	"CricketCatalog/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// 响应 message
const (
	msgSuccessful   = "Successful"
	msgCreated      = "Created successfully"
	msgUpdated      = "Updated successfully"
	msgDeleted      = "Deleted successfully"
	msgNotFound     = "Not found"
	msgAlreadyExist = "Already exist"
	msgInvalidData  = "Invalid data"
	msgInternal     = "Internal server error"
)

// Response 统一响应体 {code, data, message}；引用冲突时附带 conflictKey
type Response struct {
	Code        int         `json:"code"`
	Data        interface{} `json:"data,omitempty"`
	Message     string      `json:"message"`
	ConflictKey string      `json:"conflictKey,omitempty"`
}

func respond(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, Response{Code: code, Data: data, Message: message})
}

// respondError 按错误类型映射状态码：引用冲突 409，未找到 404，其余 500（内部错误不回显细节）
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var conflict *model.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, Response{
			Code: http.StatusConflict,
			Data: []gin.H{{
				"body,references": "Reference with same source and key already exist",
			}},
			Message:     msgAlreadyExist,
			ConflictKey: conflict.ConflictID,
		})
	case errors.Is(err, model.ErrNotFound):
		respond(c, http.StatusNotFound, nil, msgNotFound)
	default:
		logger.WithError(err).WithField("path", c.FullPath()).Error("请求处理失败")
		respond(c, http.StatusInternalServerError, nil, msgInternal)
	}
}

// respondInvalid 参数校验失败
func respondInvalid(c *gin.Context, err error) {
	respond(c, http.StatusBadRequest, err.Error(), msgInvalidData)
}
