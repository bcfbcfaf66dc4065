package controller

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"studyquest_backend/internal/service"
	"studyquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MaterialController struct {
	MaterialService *service.MaterialService
}

func NewMaterialController(materialService *service.MaterialService) *MaterialController {
	return &MaterialController{MaterialService: materialService}
}

// ListMaterials godoc
// @Summary 素材列表
// @Description 当前用户的学习素材，按创建顺序升序
// @Tags 素材
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.StudyMaterial}
// @Router /api/study-materials [get]
func (c *MaterialController) ListMaterials(ctx *gin.Context) {
	util.Success(ctx, c.MaterialService.ListByUser(util.CurrentUserID(ctx)))
}

// CreateMaterialRequest 手工录入素材
// swagger:model CreateMaterialRequest
type CreateMaterialRequest struct {
	Title    string `json:"title" binding:"required"`
	Subject  string `json:"subject" binding:"required"`
	FileType string `json:"fileType"`
	Content  string `json:"content" binding:"required"`
}

// CreateMaterial godoc
// @Summary 手工创建素材
// @Description 直接提交正文，不经过文件提取，生成环节与上传一致
// @Tags 素材
// @Accept  json
// @Produce  json
// @Param   body body CreateMaterialRequest true "素材内容"
// @Success 201 {object} util.Response{data=service.UploadResult}
// @Failure 400 {object} util.Response "参数错误"
// @Router /api/study-materials [post]
func (c *MaterialController) CreateMaterial(ctx *gin.Context) {
	var req CreateMaterialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.MaterialService.CreateManual(ctx.Request.Context(), util.CurrentUserID(ctx), req.Title, req.Subject, req.FileType, req.Content)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, result)
}

// DeleteMaterial godoc
// @Summary 删除素材
// @Tags 素材
// @Produce  json
// @Param   id path int true "素材ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "素材不存在或不属于当前用户"
// @Router /api/study-materials/{id} [delete]
func (c *MaterialController) DeleteMaterial(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid material id")
		return
	}

	if err := c.MaterialService.Delete(util.CurrentUserID(ctx), id); err != nil {
		util.NotFound(ctx, "study material not found")
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// UploadMaterial godoc
// @Summary 上传素材文件
// @Description 提取正文、推断标题学科并入库，随后尽力生成题目。
// @Description 生成失败不影响素材创建，结果里带生成结局。
// @Tags 素材
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "PDF/文本/CSV/图片，最大50MB"
// @Param   title formData string false "标题，缺省按文件名合成"
// @Param   subject formData string false "学科，缺省自动推断"
// @Param   content formData string false "正文，图片等无法提取时使用"
// @Success 201 {object} util.Response{data=service.UploadResult}
// @Failure 400 {object} util.Response "文件缺失、类型不支持或提取失败"
// @Router /api/study-materials/upload [post]
func (c *MaterialController) UploadMaterial(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "no file uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	result, err := c.MaterialService.Upload(
		ctx.Request.Context(),
		util.CurrentUserID(ctx),
		data,
		mimeType,
		fileHeader.Filename,
		strings.TrimSpace(ctx.PostForm("title")),
		strings.TrimSpace(ctx.PostForm("subject")),
		ctx.PostForm("content"),
	)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrFileTooLarge),
			errors.Is(err, util.ErrUnsupportedFileType),
			errors.Is(err, util.ErrNoExtractableText),
			errors.Is(err, util.ErrMissingMaterialFields):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, result)
}
