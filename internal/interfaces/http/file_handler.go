package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-manager/internal/application/dto"
	"github.com/jhoicas/invoice-manager/internal/application/usecase"
	"github.com/jhoicas/invoice-manager/internal/domain"
	"github.com/jhoicas/invoice-manager/internal/domain/entity"
	"github.com/jhoicas/invoice-manager/pkg/logger"
)

// FormFieldPDF nombre de la parte multipart con el archivo.
const FormFieldPDF = "pdf"

// FileHandler maneja carga, descarga y borrado de PDFs.
type FileHandler struct {
	uc  *usecase.FileUseCase
	log *logger.Logger
}

// NewFileHandler construye el handler.
func NewFileHandler(uc *usecase.FileUseCase, log *logger.Logger) *FileHandler {
	return &FileHandler{uc: uc, log: log}
}

// Upload godoc
// @Summary      Subir un PDF
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        pdf  formData  file  true  "Archivo PDF (máx. 25 MiB)"
// @Success      200  {object}  dto.APIResponse{data=dto.UploadResponse}
// @Failure      400  {object}  dto.APIResponse
// @Failure      500  {object}  dto.APIResponse
// @Router       /api/files/upload [post]
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile(FormFieldPDF)
	if err != nil {
		return fail(c, h.log, domain.ErrMissingFile, msgFileNotFound, msgInternal)
	}

	f, err := fh.Open()
	if err != nil {
		return fail(c, h.log, fmt.Errorf("abrir parte multipart: %w", err), msgFileNotFound, "Failed to upload file")
	}
	defer f.Close()

	in := usecase.UploadInput{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}
	res, err := h.uc.Upload(c.UserContext(), in)
	if err != nil {
		return fail(c, h.log, err, msgFileNotFound, "Failed to upload file")
	}
	return c.JSON(dto.OK(res))
}

// Download godoc
// @Summary      Descargar (ver) un PDF
// @Tags         files
// @Produce      application/pdf
// @Param        fileId  path  string  true  "ID del archivo"
// @Success      200
// @Failure      404  {object}  dto.APIResponse
// @Failure      500  {object}  dto.APIResponse
// @Router       /api/files/{fileId} [get]
func (h *FileHandler) Download(c *fiber.Ctx) error {
	info, rc, err := h.uc.Download(c.UserContext(), c.Params("fileId"))
	if err != nil {
		return fail(c, h.log, err, msgFileNotFound, msgInternal)
	}

	c.Set(fiber.HeaderContentType, entity.PDFContentType)
	c.Set(fiber.HeaderContentLength, strconv.FormatInt(info.Length, 10))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, safeFilename(info.Name)))
	// fasthttp cierra el stream al terminar de enviarlo.
	return c.SendStream(rc, int(info.Length))
}

// Delete godoc
// @Summary      Borrar un PDF
// @Tags         files
// @Produce      json
// @Param        fileId  path  string  true  "ID del archivo"
// @Success      200  {object}  dto.APIResponse
// @Failure      500  {object}  dto.APIResponse
// @Router       /api/files/{fileId} [delete]
func (h *FileHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("fileId")); err != nil {
		// Cualquier fallo (incluido id inexistente) responde 500.
		h.log.Warn().Err(err).Str("req_id", RequestID(c)).Str("file_id", c.Params("fileId")).Msg("borrado de archivo fallido")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("Failed to delete file"))
	}
	return c.JSON(dto.Done("File deleted successfully"))
}

// safeFilename quita comillas y saltos de línea del nombre para el header.
func safeFilename(name string) string {
	r := strings.NewReplacer(`"`, "", "\r", "", "\n", "", `\`, "")
	if s := r.Replace(name); s != "" {
		return s
	}
	return "invoice.pdf"
}
