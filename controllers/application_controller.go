package controllers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobbuddy/models"
	"jobbuddy/services"
	"jobbuddy/utils"
)

type ApplicationController struct {
	ApplicationModel  *models.ApplicationModel
	ListingModel      *models.JobListingModel
	UserModel         *models.UserModel
	Browser           *services.BrowserManager
	Hub               services.Notifier
	CoverLetterWriter *services.CoverLetterWriter
	Screenshots       *services.ScreenshotService
}

func NewApplicationController(db *sql.DB, browser *services.BrowserManager, hub services.Notifier, coverLetters *services.CoverLetterWriter, screenshots *services.ScreenshotService) *ApplicationController {
	return &ApplicationController{
		ApplicationModel:  models.NewApplicationModel(db),
		ListingModel:      models.NewJobListingModel(db),
		UserModel:         models.NewUserModel(db),
		Browser:           browser,
		Hub:               hub,
		CoverLetterWriter: coverLetters,
		Screenshots:       screenshots,
	}
}

func (c *ApplicationController) ListApplications(ctx *gin.Context) {
	userID := ctx.GetInt("user_id")
	apps, err := c.ApplicationModel.GetByUserID(userID, ctx.Query("status"))
	if err != nil {
		utils.InternalServerError(ctx, "Failed to list applications", err)
		return
	}
	utils.SuccessResponse(ctx, http.StatusOK, "Applications", gin.H{"applications": apps, "total": len(apps)})
}

func (c *ApplicationController) GetApplication(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		utils.BadRequestError(ctx, "Invalid application id", err)
		return
	}
	app, err := c.ApplicationModel.GetByID(id)
	if err != nil {
		utils.NotFoundError(ctx, "Application not found")
		return
	}
	utils.SuccessResponse(ctx, http.StatusOK, "Application", app)
}

type PrepareRequest struct {
	ResumePath      string `json:"resume_path" binding:"required"`
	CoverLetterText string `json:"cover_letter_text"`
}

// PrepareDocuments records the resume artifact and, when cover-letter text
// is supplied, renders it to a .docx the fill driver can upload.
func (c *ApplicationController) PrepareDocuments(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		utils.BadRequestError(ctx, "Invalid application id", err)
		return
	}

	var req PrepareRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(ctx, "Invalid request body", err)
		return
	}

	app, err := c.ApplicationModel.GetByID(id)
	if err != nil {
		utils.NotFoundError(ctx, "Application not found")
		return
	}

	coverLetterPath := ""
	if req.CoverLetterText != "" {
		coverLetterPath, err = c.CoverLetterWriter.Write(req.CoverLetterText, app.ID)
		if err != nil {
			utils.InternalServerError(ctx, "Failed to render cover letter", err)
			return
		}
	}

	if err := c.ApplicationModel.UpdateDocuments(app.ID, req.ResumePath, coverLetterPath); err != nil {
		utils.InternalServerError(ctx, "Failed to update application", err)
		return
	}

	utils.SuccessResponse(ctx, http.StatusOK, "Documents prepared", gin.H{
		"resume_path":       req.ResumePath,
		"cover_letter_path": coverLetterPath,
	})
}

// FillForm starts the form-fill attempt in the background. The outcome,
// including fields needing manual review and the submit-avoidance stop,
// is persisted and streamed to the user.
func (c *ApplicationController) FillForm(ctx *gin.Context) {
	userID := ctx.GetInt("user_id")
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		utils.BadRequestError(ctx, "Invalid application id", err)
		return
	}

	app, err := c.ApplicationModel.GetByID(id)
	if err != nil {
		utils.NotFoundError(ctx, "Application not found")
		return
	}
	if app.ResumePath == "" {
		utils.BadRequestError(ctx, "Documents not prepared yet. Call /prepare first.", nil)
		return
	}

	listing, err := c.ListingModel.GetByID(app.JobID)
	if err != nil {
		utils.NotFoundError(ctx, "Job listing not found")
		return
	}

	user, err := c.UserModel.GetByID(userID)
	if err != nil {
		utils.NotFoundError(ctx, "User not found")
		return
	}

	filler, err := services.GetFormFiller(listing.Source, c.Browser, c.Screenshots)
	if err != nil {
		utils.BadRequestError(ctx, "Unsupported platform", err)
		return
	}

	go c.runFill(userID, app, listing, user, filler)

	utils.SuccessResponse(ctx, http.StatusAccepted, "Form filling started", gin.H{"application_id": app.ID})
}

func (c *ApplicationController) runFill(userID int, app *models.Application, listing *models.JobListing, user *models.User, filler services.FormFiller) {
	c.Hub.Notify(userID, fmt.Sprintf("Filling application for %s at %s...", listing.Title, listing.Company))
	if err := c.ListingModel.UpdateStatus(listing.ID, models.ListingStatusApplying); err != nil {
		log.Printf("Failed to update listing %d status: %v", listing.ID, err)
	}

	candidate := &services.Candidate{
		FullName:    user.FullName,
		Email:       user.Email,
		Phone:       user.Phone,
		City:        user.City,
		State:       user.State,
		ZipCode:     user.ZipCode,
		Address:     user.Address,
		LinkedInURL: user.LinkedInURL,
	}

	outcome := filler.Fill(listing.SourceURL, candidate, app.ResumePath, app.CoverLetterPath)

	status := models.AppStatusFormFilled
	switch outcome.Status {
	case services.StatusAwaitingSubmission:
		status = models.AppStatusAwaitingReview
	case services.StatusError:
		status = models.AppStatusFailed
	}

	listingStatus := models.ListingStatusApplied
	if outcome.Status == services.StatusError {
		listingStatus = models.ListingStatusApproved
	}
	if err := c.ListingModel.UpdateStatus(listing.ID, listingStatus); err != nil {
		log.Printf("Failed to update listing %d status: %v", listing.ID, err)
	}

	formData, err := json.Marshal(outcome)
	if err != nil {
		log.Printf("Failed to marshal fill outcome: %v", err)
	}

	if err := c.ApplicationModel.UpdateOutcome(app.ID, status, string(formData), outcome.Error, outcome.PageURL, outcome.ScreenshotKey); err != nil {
		log.Printf("Failed to persist fill outcome for application %d: %v", app.ID, err)
	}

	c.Hub.ReportOutcome(userID, app.ID, outcome)
	switch outcome.Status {
	case services.StatusAwaitingSubmission:
		c.Hub.Notify(userID, "Form filled. A submit button was detected and NOT clicked. Review the open tab and submit when ready.")
	case services.StatusFilled:
		c.Hub.Notify(userID, fmt.Sprintf("Form filled: %d fields completed, %d need review.", len(outcome.FieldsFilled), len(outcome.NeedsReview)))
	case services.StatusError:
		c.Hub.Notify(userID, fmt.Sprintf("Form filling failed: %s", outcome.Error))
	}
}
