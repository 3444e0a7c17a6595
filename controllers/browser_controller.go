package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobbuddy/services"
	"jobbuddy/utils"
)

type BrowserController struct {
	Browser *services.BrowserManager
}

func NewBrowserController(browser *services.BrowserManager) *BrowserController {
	return &BrowserController{Browser: browser}
}

// StartBrowser initializes the shared browser session. Idempotent.
func (c *BrowserController) StartBrowser(ctx *gin.Context) {
	if err := c.Browser.Start(); err != nil {
		utils.InternalServerError(ctx, "Failed to start browser", err)
		return
	}
	utils.SuccessResponse(ctx, http.StatusOK, "Browser started", c.Browser.Status())
}

// BrowserStatus reports session state and best-effort login state.
func (c *BrowserController) BrowserStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.Browser.Status())
}

// OpenLogin opens a platform login page for manual authentication.
func (c *BrowserController) OpenLogin(ctx *gin.Context) {
	platform := ctx.Param("platform")
	if platform != "linkedin" && platform != "indeed" {
		utils.BadRequestError(ctx, "Unknown platform", fmt.Errorf("unknown platform: %s", platform))
		return
	}

	if _, err := c.Browser.OpenLoginPage(platform); err != nil {
		utils.InternalServerError(ctx, "Failed to open login page", err)
		return
	}
	utils.SuccessResponse(ctx, http.StatusOK, fmt.Sprintf("Opened %s login page. Please log in manually.", platform), nil)
}

// CloseBrowser shuts the session down.
func (c *BrowserController) CloseBrowser(ctx *gin.Context) {
	if err := c.Browser.Close(); err != nil {
		utils.InternalServerError(ctx, "Failed to close browser", err)
		return
	}
	utils.SuccessResponse(ctx, http.StatusOK, "Browser closed", nil)
}
