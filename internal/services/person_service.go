package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"bookgraph/internal/models/db_models"
	"bookgraph/internal/models/response_models"
	"bookgraph/internal/repositories"
	"bookgraph/pkg/utils"
)

const personNameMatchFloor = 0.55

type PersonServiceInterface interface {
	// ResolvePerson returns the id of the person with this full name, creating
	// the row (with an LLM-classified type) when nobody matches. A discovered
	// social URL backfills the stored one when that is still empty.
	ResolvePerson(ctx context.Context, fullName, discoveredSocialURL string) (uuid.UUID, error)
	GetPersonByID(id string, ctx context.Context) (response_models.Person, error)
	ListPeople(ctx context.Context, page, pageSize int) ([]response_models.Person, error)
}

type PersonService struct {
	personRepo repositories.PersonRepository
	enrichment EnrichmentServiceInterface
	weblookup  WebLookupServiceInterface
}

func NewPersonService(
	personRepo repositories.PersonRepository,
	enrichment EnrichmentServiceInterface,
	weblookup WebLookupServiceInterface,
) PersonServiceInterface {
	return &PersonService{
		personRepo: personRepo,
		enrichment: enrichment,
		weblookup:  weblookup,
	}
}

func (p *PersonService) ResolvePerson(ctx context.Context, fullName, discoveredSocialURL string) (uuid.UUID, error) {
	fullName = utils.CleanAuthorName(fullName)
	if fullName == "" {
		return uuid.Nil, fmt.Errorf("empty person name after cleanup")
	}
	discoveredSocialURL = utils.CanonicalSocialURL(discoveredSocialURL)

	// Tier 1: exact full-name match.
	existing, err := p.personRepo.GetByFullName(ctx, fullName)
	if err != nil {
		log.Printf("Error looking up person %q: %v", fullName, err)
		return uuid.Nil, utils.ErrDatabaseError
	}
	if existing != nil {
		if existing.SocialURL == "" && discoveredSocialURL != "" {
			if err := p.personRepo.UpdateSocialURL(ctx, existing.ID, discoveredSocialURL); err != nil {
				log.Printf("Error backfilling social URL for %q: %v", fullName, err)
			}
		}
		return existing.ID, nil
	}

	// Tier 2: trigram similarity over the full name, so spelling variants of
	// someone already catalogued do not fork a duplicate row.
	matches, err := p.personRepo.SearchByName(ctx, fullName)
	if err != nil {
		log.Printf("Error in name search for %q: %v", fullName, err)
		return uuid.Nil, utils.ErrDatabaseError
	}
	if len(matches) > 0 && matches[0].Similarity >= personNameMatchFloor {
		return matches[0].ID, nil
	}

	personType, err := p.enrichment.ClassifyPerson(ctx, fullName)
	if err != nil {
		return uuid.Nil, err
	}

	socialURL := discoveredSocialURL
	if socialURL == "" {
		socialURL, err = p.weblookup.FindSocialURL(ctx, fullName)
		if err != nil {
			// A missing social profile should not block cataloguing the person.
			log.Printf("Social URL lookup failed for %q: %v", fullName, err)
			socialURL = ""
		}
	}

	person := &db_models.Person{
		FullName:  fullName,
		Type:      personType,
		SocialURL: socialURL,
	}

	id, err := p.personRepo.Create(ctx, person)
	if err != nil {
		log.Printf("Error creating person %q: %v", fullName, err)
		return uuid.Nil, utils.ErrDatabaseError
	}
	return id, nil
}

func (p *PersonService) GetPersonByID(id string, ctx context.Context) (response_models.Person, error) {
	person, err := p.personRepo.GetByID(ctx, id)
	if err != nil {
		return response_models.Person{}, utils.ErrDatabaseError
	}
	if person == nil {
		return response_models.Person{}, utils.ErrPersonNotFound
	}
	return toPersonResponse(person), nil
}

func (p *PersonService) ListPeople(ctx context.Context, page, pageSize int) ([]response_models.Person, error) {
	people, err := p.personRepo.List(ctx, page, pageSize)
	if err != nil {
		log.Printf("Error listing people: %v", err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.Person, 0, len(people))
	for i := range people {
		responses = append(responses, toPersonResponse(&people[i]))
	}
	return responses, nil
}

func toPersonResponse(person *db_models.Person) response_models.Person {
	return response_models.Person{
		ID:          person.ID.String(),
		FullName:    person.FullName,
		Type:        person.Type,
		Description: person.Description,
		SocialURL:   person.SocialURL,
		CreatedAt:   utils.FormatRFC3339(person.CreatedAt),
	}
}
