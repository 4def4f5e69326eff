package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"

	"bookgraph/internal/services"
	"bookgraph/pkg/utils"
)

type PeopleController struct {
	personService services.PersonServiceInterface
	recService    services.RecommendationServiceInterface
}

func NewPeopleController(
	personService services.PersonServiceInterface,
	recService services.RecommendationServiceInterface,
) *PeopleController {
	return &PeopleController{
		personService: personService,
		recService:    recService,
	}
}

func (p *PeopleController) GetPersonById(c *gin.Context) {
	personID := c.Param("id")
	if personID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Person ID is required")
		return
	}

	person, err := p.personService.GetPersonByID(personID, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, person, "Person fetched successfully")
}

func (p *PeopleController) ListPeople(c *gin.Context) {
	page, pageSize, ok := parsePaging(c)
	if !ok {
		return
	}

	people, err := p.personService.ListPeople(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, people, "People fetched successfully")
}

func (p *PeopleController) GetPersonRecommendations(c *gin.Context) {
	personID := c.Param("id")
	if personID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Person ID is required")
		return
	}

	recs, err := p.recService.ListByPerson(c.Request.Context(), personID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, recs, "Recommendations fetched successfully")
}
