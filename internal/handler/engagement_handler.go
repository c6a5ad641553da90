package handler

import (
	"net/http"

	"github.com/Anamiiikka/fundhive/internal/logic"
	"github.com/gin-gonic/gin"
)

// EngagementHandler 点赞与评论处理器
type EngagementHandler struct {
	engagementLogic *logic.EngagementLogic
}

// NewEngagementHandler 创建互动处理器
func NewEngagementHandler(engagementLogic *logic.EngagementLogic) *EngagementHandler {
	return &EngagementHandler{engagementLogic: engagementLogic}
}

// Like 点赞开关
func (h *EngagementHandler) Like(c *gin.Context) {
	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	project, liked, err := h.engagementLogic.ToggleLike(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		HandleError(c, err)
		return
	}

	message := "Unliked"
	if liked {
		message = "Liked"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "project": project})
}

// Comment 追加评论
func (h *EngagementHandler) Comment(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	project, err := h.engagementLogic.AddComment(c.Request.Context(), c.Param("id"), req.UserID, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment added", "project": project})
}
