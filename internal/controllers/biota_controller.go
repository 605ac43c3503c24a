package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"aquabio-be/internal/models"
	"aquabio-be/internal/service"
)

// Multipart bodies are capped well below this by the upload size limit;
// this only bounds the in-memory form buffer.
const maxMultipartMemory = 8 << 20

type BiotaController struct {
	biotaService service.BiotaService
}

func NewBiotaController(biotaService service.BiotaService) *BiotaController {
	return &BiotaController{
		biotaService: biotaService,
	}
}

// List handles GET /api/biota with optional search, category, and
// location query filters.
func (bc *BiotaController) List(c *gin.Context) {
	filters := models.BiotaFilters{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Location: c.Query("location"),
	}

	entries, err := bc.biotaService.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// Get handles GET /api/biota/:id
func (bc *BiotaController) Get(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	entry, err := bc.biotaService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Create handles POST /api/biota. The body is either multipart form
// data with an uploaded "image" file, or JSON/form fields with a direct
// image URL.
func (bc *BiotaController) Create(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}

	form, cleanup, err := parseEntryForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	defer cleanup()

	entry, err := bc.biotaService.Create(c.Request.Context(), userID, &models.CreateBiotaRequest{
		Name:        form.Name,
		Location:    form.Location,
		Category:    form.Category,
		Description: form.Description,
		ImageURL:    form.ImageURL,
		File:        form.File,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.BiotaResponse{
		Message: "biota created successfully",
		Biota:   entry,
	})
}

// Update handles PUT /api/biota/:id. Only the owner or an
// administrator may update an entry.
func (bc *BiotaController) Update(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := entryID(c)
	if !ok {
		return
	}

	form, cleanup, err := parseEntryForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	defer cleanup()

	entry, err := bc.biotaService.Update(c.Request.Context(), userID, id, &models.UpdateBiotaRequest{
		Name:        form.Name,
		Location:    form.Location,
		Category:    form.Category,
		Description: form.Description,
		ImageURL:    form.ImageURL,
		File:        form.File,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BiotaResponse{
		Message: "biota updated successfully",
		Biota:   entry,
	})
}

// Delete handles DELETE /api/biota/:id. Only the owner or an
// administrator may delete an entry.
func (bc *BiotaController) Delete(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := entryID(c)
	if !ok {
		return
	}

	if err := bc.biotaService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "biota deleted successfully",
	})
}

func entryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid biota id"})
		return 0, false
	}
	return id, true
}

// entryForm carries the catalog fields shared by create and update.
// Description distinguishes "absent" (nil) from "present but empty".
type entryForm struct {
	Name        string
	Location    string
	Category    string
	Description *string
	ImageURL    string
	File        *models.UploadedImage
}

type entryJSONBody struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
	Image       string  `json:"image"`
}

// parseEntryForm decodes either a multipart form (with an optional
// uploaded "image" file) or a JSON body (with an optional "image" URL).
// The returned cleanup closes any opened upload stream.
func parseEntryForm(c *gin.Context) (*entryForm, func(), error) {
	cleanup := func() {}

	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var body entryJSONBody
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, cleanup, err
		}
		return &entryForm{
			Name:        body.Name,
			Location:    body.Location,
			Category:    body.Category,
			Description: body.Description,
			ImageURL:    body.Image,
		}, cleanup, nil
	}

	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, cleanup, err
	}

	form := &entryForm{
		Name:     c.PostForm("name"),
		Location: c.PostForm("location"),
		Category: c.PostForm("category"),
		ImageURL: c.PostForm("image"),
	}
	if values, present := c.Request.MultipartForm.Value["description"]; present && len(values) > 0 {
		form.Description = &values[0]
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { file.Close() }
		form.File = &models.UploadedImage{
			Reader:   file,
			Filename: fileHeader.Filename,
			Size:     fileHeader.Size,
		}
		// An uploaded file wins over a stray image URL field.
		form.ImageURL = ""
	}

	return form, cleanup, nil
}
