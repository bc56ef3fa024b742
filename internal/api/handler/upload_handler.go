package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UploadImage handles POST /api/upload-image with a multipart "file" field.
//
// @Summary      Upload an image
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image"
// @Success      200   {object}  domain.UploadedFile
// @Failure      400   {object}  map[string]string
// @Router       /api/upload-image [post]
func (h *BackendHandler) UploadImage(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer f.Close()

	resp, err := h.client.Files.UploadImage(c.Request().Context(), fh.Filename, f)
	return relay(c, resp, err)
}
