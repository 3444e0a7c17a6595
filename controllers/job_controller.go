package controllers

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobbuddy/config"
	"jobbuddy/models"
	"jobbuddy/services"
	"jobbuddy/utils"
)

type JobController struct {
	ListingModel     *models.JobListingModel
	ApplicationModel *models.ApplicationModel
	Searchers        []services.Searcher
	Hub              services.Notifier
	MaxSearchResults int
}

func NewJobController(db *sql.DB, browser *services.BrowserManager, hub services.Notifier, cfg config.AppConfig) *JobController {
	return &JobController{
		ListingModel:     models.NewJobListingModel(db),
		ApplicationModel: models.NewApplicationModel(db),
		Searchers: []services.Searcher{
			services.NewIndeedSearcher(browser),
			services.NewLinkedInSearcher(browser),
		},
		Hub:              hub,
		MaxSearchResults: cfg.MaxSearchResults,
	}
}

type SearchRequest struct {
	Query      string   `json:"query" binding:"required"`
	Location   string   `json:"location"`
	Remote     bool     `json:"remote"`
	Platforms  []string `json:"platforms"`
	MaxResults int      `json:"max_results"`
}

// Search runs every requested platform driver, deduplicates the union and
// persists new listings. The search itself runs in the background; results
// stream to the user over the events channel.
func (c *JobController) Search(ctx *gin.Context) {
	userID := ctx.GetInt("user_id")

	var req SearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(ctx, "Invalid request body", err)
		return
	}
	if req.MaxResults <= 0 || req.MaxResults > c.MaxSearchResults {
		req.MaxResults = c.MaxSearchResults
	}

	wanted := make(map[string]bool)
	for _, p := range req.Platforms {
		wanted[p] = true
	}

	go c.runSearch(userID, req, wanted)

	utils.SuccessResponse(ctx, http.StatusAccepted, "Job search started", gin.H{
		"query":     req.Query,
		"location":  req.Location,
		"platforms": req.Platforms,
	})
}

func (c *JobController) runSearch(userID int, req SearchRequest, wanted map[string]bool) {
	var all []services.Listing
	for _, searcher := range c.Searchers {
		if len(wanted) > 0 && !wanted[searcher.Platform()] {
			continue
		}
		c.Hub.Notify(userID, fmt.Sprintf("Searching %s for %q...", searcher.Platform(), req.Query))
		listings := searcher.Search(req.Query, req.Location, req.Remote, req.MaxResults)
		c.Hub.Notify(userID, fmt.Sprintf("%s returned %d listings", searcher.Platform(), len(listings)))
		all = append(all, listings...)
	}

	deduped := services.DedupListings(all)

	saved := 0
	for _, l := range deduped {
		_, err := c.ListingModel.Create(userID, l.Source, l.SourceURL, l.SourceJobID, l.Title, l.Company, l.Location, l.Description, l.SalaryInfo, l.IsEasyApply)
		if err != nil {
			log.Printf("Failed to save listing %q at %q: %v", l.Title, l.Company, err)
			continue
		}
		saved++
	}

	c.Hub.Notify(userID, fmt.Sprintf("Search complete: %d unique listings saved", saved))
}

func (c *JobController) ListJobs(ctx *gin.Context) {
	userID := ctx.GetInt("user_id")
	status := ctx.Query("status")
	source := ctx.Query("source")
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(ctx.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	listings, err := c.ListingModel.GetByUserID(userID, status, source, perPage, (page-1)*perPage)
	if err != nil {
		utils.InternalServerError(ctx, "Failed to list jobs", err)
		return
	}
	utils.SuccessResponse(ctx, http.StatusOK, "Jobs", gin.H{
		"jobs":     listings,
		"page":     page,
		"per_page": perPage,
	})
}

func (c *JobController) GetJob(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		utils.BadRequestError(ctx, "Invalid job id", err)
		return
	}

	listing, err := c.ListingModel.GetByID(id)
	if err != nil {
		utils.NotFoundError(ctx, "Job not found")
		return
	}
	utils.SuccessResponse(ctx, http.StatusOK, "Job", listing)
}

// ApproveJob marks a listing approved and opens a pending application.
func (c *JobController) ApproveJob(ctx *gin.Context) {
	userID := ctx.GetInt("user_id")
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		utils.BadRequestError(ctx, "Invalid job id", err)
		return
	}

	listing, err := c.ListingModel.GetByID(id)
	if err != nil {
		utils.NotFoundError(ctx, "Job not found")
		return
	}

	if err := c.ListingModel.UpdateStatus(listing.ID, models.ListingStatusApproved); err != nil {
		utils.InternalServerError(ctx, "Failed to approve job", err)
		return
	}

	app, err := c.ApplicationModel.Create(listing.ID, userID)
	if err != nil {
		utils.InternalServerError(ctx, "Failed to create application", err)
		return
	}

	utils.SuccessResponse(ctx, http.StatusOK, "Job approved", gin.H{"application_id": app.ID})
}
