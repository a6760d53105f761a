package handlers

import (
	"net/http"

	"github.com/Limkon/Netnope-sub000/internal/middleware"
	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/multipart"
	"github.com/Limkon/Netnope-sub000/internal/services"
	"github.com/Limkon/Netnope-sub000/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type NoteHandler struct {
	noteService *services.NoteService
	validator   *validator.Validate
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		validator:   validator.New(),
	}
}

func (h *NoteHandler) GetNotes(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	notes, err := h.noteService.GetNotes(sess)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{"notes": notes})
}

func (h *NoteHandler) GetNote(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	note, err := h.noteService.GetNote(c.Param("id"), sess)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.Success(c, note)
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	var req models.NoteCreateRequest
	var upload *multipart.File

	if isMultipart(c) {
		form, err := readMultipart(c)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "请求体解析失败")
			return
		}
		req.Title = form.Fields["title"]
		req.Content = form.Fields["content"]
		upload = form.Files[AttachmentField]
	} else if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	// 验证请求参数
	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	note, err := h.noteService.CreateNote(sess, &req, upload)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "创建成功", note)
}

func (h *NoteHandler) UpdateNote(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	var req models.NoteUpdateRequest
	var upload *multipart.File

	if isMultipart(c) {
		form, err := readMultipart(c)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "请求体解析失败")
			return
		}
		req.Title = form.Fields["title"]
		req.Content = form.Fields["content"]
		req.RemoveAttachment = form.Fields["remove_attachment"] == "true"
		upload = form.Files[AttachmentField]
	} else if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	note, err := h.noteService.UpdateNote(c.Param("id"), sess, &req, upload)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "更新成功", note)
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	sess := middleware.SessionFrom(c)

	if err := h.noteService.DeleteNote(c.Param("id"), sess); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}
