package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"

	"bookgraph/internal/models/request_models"
	"bookgraph/internal/services"
	"bookgraph/pkg/utils"
)

type IngestController struct {
	scrapeService services.ScrapeServiceInterface
}

func NewIngestController(scrapeService services.ScrapeServiceInterface) *IngestController {
	return &IngestController{scrapeService: scrapeService}
}

// Ingest runs a full scrape of the given page synchronously and returns the
// run summary. Guarded by the JWT middleware.
func (i *IngestController) Ingest(c *gin.Context) {
	var req request_models.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "url and source are required")
		return
	}

	summary, err := i.scrapeService.ScrapeRecommendersPage(c.Request.Context(), req.URL, req.Source)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Scrape completed")
}
