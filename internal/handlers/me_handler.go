package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/carwash-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/profile"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/imaging"
	"github.com/BruksfildServices01/carwash-scheduler/internal/middleware"
	ucProfile "github.com/BruksfildServices01/carwash-scheduler/internal/usecase/profile"
)

type MeHandler struct {
	getMe        *ucProfile.GetMe
	updateMe     *ucProfile.UpdateMe
	uploadAvatar *ucProfile.UploadAvatar
	getStamps    *ucProfile.GetStamps
}

func NewMeHandler(
	getMe *ucProfile.GetMe,
	updateMe *ucProfile.UpdateMe,
	uploadAvatar *ucProfile.UploadAvatar,
	getStamps *ucProfile.GetStamps,
) *MeHandler {
	return &MeHandler{
		getMe:        getMe,
		updateMe:     updateMe,
		uploadAvatar: uploadAvatar,
		getStamps:    getStamps,
	}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	view, err := h.getMe.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req domain.SelfUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	view, err := h.updateMe.Execute(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UploadAvatar expects a multipart form with a "file" part.
func (h *MeHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Selecciona una imagen.")
		return
	}
	if fh.Size > imaging.MaxUploadBytes {
		respondError(c, httperr.ErrBusiness("invalid_image"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, imaging.MaxUploadBytes+1))
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.uploadAvatar.Execute(c.Request.Context(), middleware.UserID(c), raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *MeHandler) Stamps(c *gin.Context) {
	card, err := h.getStamps.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// Navigation returns the sidebar for the caller's role. It drives the
// client UI only; routes are guarded by RequireRole.
func (h *MeHandler) Navigation(c *gin.Context) {
	role := middleware.Role(c)
	c.JSON(http.StatusOK, gin.H{
		"role":  role,
		"items": access.SidebarFor(role),
	})
}

func (h *MeHandler) Access(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		invalidRequest(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"path":    path,
		"allowed": access.CanAccess(middleware.Role(c), path),
	})
}
