package handler

import (
	"net/http"
	"strconv"

	"github.com/Anamiiikka/fundhive/internal/logic"
	"github.com/Anamiiikka/fundhive/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// 调用者身份由外部身份提供方通过请求头传入
const (
	HeaderUserID         = "X-User-ID"
	HeaderUserPicture    = "X-User-Picture"
	HeaderIdempotencyKey = "Idempotency-Key"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	projectLogic *logic.ProjectLogic
	uploader     storage.Uploader
	maxUpload    int64 // 字节
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(projectLogic *logic.ProjectLogic, uploader storage.Uploader, maxUploadMB int64) *ProjectHandler {
	return &ProjectHandler{
		projectLogic: projectLogic,
		uploader:     uploader,
		maxUpload:    maxUploadMB << 20,
	}
}

// CreateProject 创建项目，multipart 表单，可附带媒体文件
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID := c.GetHeader(HeaderUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	category := c.PostForm("category")
	fundingGoalStr := c.PostForm("fundingGoal")
	equityStr := c.PostForm("equityOffered")
	durationStr := c.PostForm("duration")
	if title == "" || description == "" || category == "" ||
		fundingGoalStr == "" || equityStr == "" || durationStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All project fields are required"})
		return
	}

	fundingGoal, err := decimal.NewFromString(fundingGoalStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Funding goal must be a number"})
		return
	}
	equity, err := strconv.ParseFloat(equityStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Equity offered must be a number"})
		return
	}
	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Duration must be a number"})
		return
	}

	var mediaURL string
	if file, err := c.FormFile("media"); err == nil {
		if h.maxUpload > 0 && file.Size > h.maxUpload {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Media file is too large"})
			return
		}
		src, err := file.Open()
		if err != nil {
			HandleError(c, err)
			return
		}
		defer src.Close()
		mediaURL, err = h.uploader.Upload(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src)
		if err != nil {
			HandleError(c, err)
			return
		}
	}

	project, err := h.projectLogic.CreateProject(c.Request.Context(), logic.CreateProjectInput{
		OwnerID:       userID,
		OwnerName:     c.PostForm("name"),
		OwnerEmail:    c.PostForm("email"),
		OwnerAvatar:   c.GetHeader(HeaderUserPicture),
		Title:         title,
		Description:   description,
		Category:      category,
		FundingGoal:   fundingGoal,
		EquityOffered: equity,
		Duration:      duration,
		MediaURL:      mediaURL,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Project created", "project": project})
}

// GetProjects 获取项目列表，支持 category 和 search 过滤
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projectLogic.ListProjects(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject 获取单个项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectLogic.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject 删除项目，仅限所有者且未收到任何资金
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID := c.GetHeader(HeaderUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User ID required"})
		return
	}

	if err := h.projectLogic.DeleteProject(c.Request.Context(), c.Param("id"), userID); err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}
