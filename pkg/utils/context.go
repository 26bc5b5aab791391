package utils

import "github.com/gin-gonic/gin"

// GetUserID 从上下文获取已认证用户ID，第二个返回值表示是否已认证
func GetUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}
