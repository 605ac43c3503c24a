package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"aquabio-be/internal/service"
)

type QRCodeController struct {
	biotaService service.BiotaService
	frontendURL  string
}

func NewQRCodeController(biotaService service.BiotaService, frontendURL string) *QRCodeController {
	return &QRCodeController{
		biotaService: biotaService,
		frontendURL:  frontendURL,
	}
}

// GenerateEntryQRCode handles GET /api/biota/:id/qrcode - returns a PNG
// QR code pointing at the entry's detail page, for sharing.
func (qc *QRCodeController) GenerateEntryQRCode(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	// 404 for entries that don't exist rather than encoding a dead link.
	if _, err := qc.biotaService.Get(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	detailURL := fmt.Sprintf("%s/biota/%d", qc.frontendURL, id)

	qrCode, err := qrcode.New(detailURL, qrcode.Medium)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate QR code",
		})
		return
	}

	pngData, err := qrCode.PNG(256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate QR code image",
		})
		return
	}

	c.Header("Content-Disposition", "inline; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
