package controllers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"learnify/backend/config"
	"learnify/backend/models"
	"learnify/backend/services"
	"learnify/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ResourcesController struct {
	DB         *gorm.DB
	Cfg        *config.Config
	Storage    services.ObjectStorage
	Handoff    services.HandoffStore
	Thumbnails *services.ThumbnailCache
	Log        *log.Logger
	Client     *http.Client
}

func NewResourcesController(db *gorm.DB, cfg *config.Config, storage services.ObjectStorage, handoff services.HandoffStore, thumbnails *services.ThumbnailCache, logger *log.Logger) *ResourcesController {
	return &ResourcesController{
		DB:         db,
		Cfg:        cfg,
		Storage:    storage,
		Handoff:    handoff,
		Thumbnails: thumbnails,
		Log:        logger,
		Client:     &http.Client{Timeout: time.Minute},
	}
}

func (rc *ResourcesController) GetResources(c *fiber.Ctx) error {
	var resources []models.Resource
	if err := rc.DB.Order("created_at DESC").Find(&resources).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(resources))
	for _, resource := range resources {
		result = append(result, fiber.Map{
			"id":            resource.ID,
			"name":          resource.Name,
			"description":   resource.Description,
			"file_url":      resource.FileURL,
			"thumbnail_url": resource.ThumbnailURL,
			"created_at":    resource.CreatedAt,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

// UploadResource accepts a PDF plus an optional image thumbnail. MIME types
// are gated before any storage call; the gate is a soft check on the
// declared type, not authoritative. The document path is prefixed with the
// upload's wall-clock milliseconds; the thumbnail path is fixed, so
// re-uploading the same thumbnail filename overwrites.
func (rc *ResourcesController) UploadResource(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	name := strings.TrimSpace(c.FormValue("name"))
	description := strings.TrimSpace(c.FormValue("description"))
	if name == "" || description == "" {
		return utils.BadRequest(c, "Name and description are required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "PDF file is required")
	}
	if !strings.Contains(fileHeader.Header.Get("Content-Type"), "pdf") {
		return utils.BadRequest(c, "Only PDF files are allowed")
	}

	thumbHeader, thumbErr := c.FormFile("thumbnail")
	if thumbErr == nil && !strings.Contains(thumbHeader.Header.Get("Content-Type"), "image") {
		return utils.BadRequest(c, "Only image files are allowed for thumbnails")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.InternalServerError(c, "Could not read uploaded file")
	}
	defer file.Close()

	docPath := fmt.Sprintf("%d/%d-%s", userID, time.Now().UnixMilli(), filepath.Base(fileHeader.Filename))
	if err := rc.Storage.Upload(c.UserContext(), docPath, "application/pdf", file); err != nil {
		rc.Log.Printf("resource upload failed: %v", err)
		return utils.InternalServerError(c, "Could not upload file")
	}
	fileURL := rc.Storage.PublicURL(docPath)

	// A failing thumbnail upload aborts the whole submission; there is no
	// resource-without-thumbnail fallback once one was provided.
	var thumbnailURL *string
	if thumbErr == nil {
		thumb, err := thumbHeader.Open()
		if err != nil {
			return utils.InternalServerError(c, "Could not read thumbnail")
		}
		defer thumb.Close()

		thumbPath := fmt.Sprintf("%d/thumbnails/%s", userID, filepath.Base(thumbHeader.Filename))
		if err := rc.Storage.Upload(c.UserContext(), thumbPath, thumbHeader.Header.Get("Content-Type"), thumb); err != nil {
			rc.Log.Printf("thumbnail upload failed: %v", err)
			return utils.InternalServerError(c, "Could not upload thumbnail")
		}
		url := rc.Storage.PublicURL(thumbPath)
		thumbnailURL = &url
	}

	resource := models.Resource{
		Name:         name,
		Description:  description,
		FileURL:      fileURL,
		ThumbnailURL: thumbnailURL,
		UserID:       userID,
	}
	if err := rc.DB.Create(&resource).Error; err != nil {
		return utils.InternalServerError(c, "Could not create resource")
	}

	return utils.Created(c, fiber.Map{
		"id":            resource.ID,
		"name":          resource.Name,
		"description":   resource.Description,
		"file_url":      resource.FileURL,
		"thumbnail_url": resource.ThumbnailURL,
	})
}

// GetThumbnail serves the stored thumbnail when one exists, otherwise a
// placeholder rendered once per resource id and cached.
func (rc *ResourcesController) GetThumbnail(c *fiber.Ctx) error {
	resourceID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid resource ID")
	}

	var resource models.Resource
	if err := rc.DB.First(&resource, resourceID).Error; err != nil {
		return utils.NotFound(c, "Resource not found")
	}

	if resource.ThumbnailURL != nil {
		return c.Redirect(*resource.ThumbnailURL, fiber.StatusFound)
	}

	png, err := rc.Thumbnails.Get(resource.ID, resource.Name)
	if err != nil {
		rc.Log.Printf("thumbnail rendering failed for resource %d: %v", resource.ID, err)
		return utils.InternalServerError(c, "Could not render thumbnail")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

type ResourceActionInput struct {
	Action string `json:"action"`
}

// ResourceAction backs the "chat with PDF" and "generate quiz" buttons:
// re-fetch the PDF from its public URL, extract its text, stash the payload
// in the handoff store and tell the client where to navigate. The
// destination page resolves the returned handoff id.
func (rc *ResourcesController) ResourceAction(c *fiber.Ctx) error {
	resourceID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid resource ID")
	}

	var input ResourceActionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Action != "chat" && input.Action != "quiz" {
		return utils.BadRequest(c, "Action must be chat or quiz")
	}

	var resource models.Resource
	if err := rc.DB.First(&resource, resourceID).Error; err != nil {
		return utils.NotFound(c, "Resource not found")
	}

	resp, err := rc.Client.Get(resource.FileURL)
	if err != nil {
		rc.Log.Printf("PDF fetch failed for resource %d: %v", resource.ID, err)
		return utils.BadGateway(c, "Could not fetch PDF")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return utils.BadGateway(c, "Could not fetch PDF")
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return utils.BadGateway(c, "Could not fetch PDF")
	}

	text, err := services.ExtractPDFText(data)
	if err != nil {
		rc.Log.Printf("PDF extraction failed for resource %d: %v", resource.ID, err)
		return utils.InternalServerError(c, "Could not process PDF")
	}

	handoffID, err := rc.Handoff.Put(c.UserContext(), services.HandoffPayload{
		Kind:    input.Action,
		Name:    resource.Name,
		URL:     resource.FileURL,
		Content: text,
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not store handoff entry")
	}

	redirect := "/pdf-chat"
	if input.Action == "quiz" {
		redirect = "/quiz"
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"handoff_id": handoffID,
		"redirect":   redirect,
	})
}

// GetHandoff is the destination page's read of a handoff entry.
func (rc *ResourcesController) GetHandoff(c *fiber.Ctx) error {
	payload, err := rc.Handoff.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, services.ErrHandoffNotFound) {
		return utils.NotFound(c, "Handoff entry not found or expired")
	}
	if err != nil {
		return utils.InternalServerError(c, "Could not read handoff entry")
	}

	return utils.Success(c, fiber.StatusOK, payload)
}
