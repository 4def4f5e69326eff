package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"bookgraph/internal/browser"
	"bookgraph/internal/models/db_models"
	"bookgraph/internal/repositories"
	"bookgraph/pkg/utils"
)

type fakeBookRepo struct {
	books            map[string]*db_models.Book
	trigramMatches   []repositories.BookMatch
	embeddingMatches []repositories.BookMatch
	created          []*db_models.Book

	missingEmbedding []db_models.Book
	missingCover     []db_models.Book

	exactCalls     int
	trigramCalls   int
	embeddingCalls int

	mu           sync.Mutex
	embedUpdates []uuid.UUID
	coverUpdates map[uuid.UUID]string
	percentiles  map[uuid.UUID]float64
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{
		books:        make(map[string]*db_models.Book),
		coverUpdates: make(map[uuid.UUID]string),
		percentiles:  make(map[uuid.UUID]float64),
	}
}

func (f *fakeBookRepo) key(title, author string) string { return title + "|" + author }

func (f *fakeBookRepo) add(title, author string) uuid.UUID {
	book := &db_models.Book{Title: title, Author: author}
	book.ID = uuid.New()
	f.books[f.key(title, author)] = book
	return book.ID
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id string) (*db_models.Book, error) {
	for _, b := range f.books {
		if b.ID.String() == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookRepo) GetByTitleAuthor(ctx context.Context, title, author string) (*db_models.Book, error) {
	f.exactCalls++
	return f.books[f.key(title, author)], nil
}

func (f *fakeBookRepo) SearchByTrigram(ctx context.Context, basicTitle, author string) ([]repositories.BookMatch, error) {
	f.trigramCalls++
	return f.trigramMatches, nil
}

func (f *fakeBookRepo) SearchByEmbedding(ctx context.Context, titleVec, authorVec pgvector.Vector) ([]repositories.BookMatch, error) {
	f.embeddingCalls++
	return f.embeddingMatches, nil
}

func (f *fakeBookRepo) Create(ctx context.Context, book *db_models.Book) (uuid.UUID, error) {
	if existing, ok := f.books[f.key(book.Title, book.Author)]; ok {
		return existing.ID, nil
	}
	book.ID = uuid.New()
	f.books[f.key(book.Title, book.Author)] = book
	f.created = append(f.created, book)
	return book.ID, nil
}

func (f *fakeBookRepo) List(ctx context.Context, page, pageSize int) ([]db_models.Book, error) {
	var out []db_models.Book
	for _, b := range f.books {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookRepo) ListMissingDescriptionEmbedding(ctx context.Context, limit int) ([]db_models.Book, error) {
	return f.missingEmbedding, nil
}

func (f *fakeBookRepo) ListMissingCover(ctx context.Context, limit int) ([]db_models.Book, error) {
	return f.missingCover, nil
}

func (f *fakeBookRepo) UpdateEmbeddings(ctx context.Context, id uuid.UUID, title, author, description pgvector.Vector) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embedUpdates = append(f.embedUpdates, id)
	return nil
}

func (f *fakeBookRepo) UpdateCoverURL(ctx context.Context, id uuid.UUID, coverURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coverUpdates[id] = coverURL
	return nil
}

func (f *fakeBookRepo) UpdatePercentile(ctx context.Context, id uuid.UUID, count int, percentile float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.percentiles[id] = percentile
	return nil
}

type fakePersonRepo struct {
	people      map[string]*db_models.Person
	nameMatches []repositories.PersonMatch
	created     []*db_models.Person
	socialSets  map[uuid.UUID]string

	searchCalls int
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{
		people:     make(map[string]*db_models.Person),
		socialSets: make(map[uuid.UUID]string),
	}
}

func (f *fakePersonRepo) add(fullName, socialURL string) uuid.UUID {
	person := &db_models.Person{FullName: fullName, SocialURL: socialURL}
	person.ID = uuid.New()
	f.people[fullName] = person
	return person.ID
}

func (f *fakePersonRepo) GetByID(ctx context.Context, id string) (*db_models.Person, error) {
	for _, p := range f.people {
		if p.ID.String() == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePersonRepo) GetByFullName(ctx context.Context, fullName string) (*db_models.Person, error) {
	return f.people[fullName], nil
}

func (f *fakePersonRepo) SearchByName(ctx context.Context, fullName string) ([]repositories.PersonMatch, error) {
	f.searchCalls++
	return f.nameMatches, nil
}

func (f *fakePersonRepo) Create(ctx context.Context, person *db_models.Person) (uuid.UUID, error) {
	if existing, ok := f.people[person.FullName]; ok {
		return existing.ID, nil
	}
	person.ID = uuid.New()
	f.people[person.FullName] = person
	f.created = append(f.created, person)
	return person.ID, nil
}

func (f *fakePersonRepo) UpdateSocialURL(ctx context.Context, id uuid.UUID, socialURL string) error {
	f.socialSets[id] = socialURL
	for _, p := range f.people {
		if p.ID == id {
			p.SocialURL = socialURL
		}
	}
	return nil
}

func (f *fakePersonRepo) List(ctx context.Context, page, pageSize int) ([]db_models.Person, error) {
	var out []db_models.Person
	for _, p := range f.people {
		out = append(out, *p)
	}
	return out, nil
}

type fakeRecRepo struct {
	recs []*db_models.Recommendation
}

func (f *fakeRecRepo) edgeKey(bookID, personID uuid.UUID, source string) string {
	return bookID.String() + "|" + personID.String() + "|" + source
}

func (f *fakeRecRepo) Exists(ctx context.Context, bookID, personID uuid.UUID, source string) (bool, error) {
	for _, r := range f.recs {
		if f.edgeKey(r.BookID, r.PersonID, r.Source) == f.edgeKey(bookID, personID, source) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRecRepo) Create(ctx context.Context, rec *db_models.Recommendation) (bool, error) {
	for _, r := range f.recs {
		if f.edgeKey(r.BookID, r.PersonID, r.Source) == f.edgeKey(rec.BookID, rec.PersonID, rec.Source) {
			return false, nil
		}
	}
	rec.ID = uuid.New()
	f.recs = append(f.recs, rec)
	return true, nil
}

func (f *fakeRecRepo) ListByBook(ctx context.Context, bookID string) ([]db_models.Recommendation, error) {
	return nil, nil
}

func (f *fakeRecRepo) ListByPerson(ctx context.Context, personID string) ([]db_models.Recommendation, error) {
	return nil, nil
}

func (f *fakeRecRepo) CountsByBook(ctx context.Context) ([]repositories.BookRecommendationCount, error) {
	counts := make(map[uuid.UUID]int)
	for _, r := range f.recs {
		counts[r.BookID]++
	}
	var out []repositories.BookRecommendationCount
	for id, c := range counts {
		out = append(out, repositories.BookRecommendationCount{BookID: id, Count: c})
	}
	return out, nil
}

type fakeEnrichment struct {
	enrichment  *utils.BookEnrichment
	personType  string
	enrichCalls int
	enrichErr   error
}

func (f *fakeEnrichment) EnrichBook(ctx context.Context, title, author string) (*utils.BookEnrichment, error) {
	f.enrichCalls++
	if f.enrichErr != nil {
		return nil, f.enrichErr
	}
	if f.enrichment != nil {
		return f.enrichment, nil
	}
	return &utils.BookEnrichment{
		Genres:      []string{"Fiction"},
		Description: "A fine book.",
	}, nil
}

func (f *fakeEnrichment) ClassifyPerson(ctx context.Context, fullName string) (string, error) {
	if f.personType == "" {
		return "Author", nil
	}
	return f.personType, nil
}

func (f *fakeEnrichment) SanitizeTitle(ctx context.Context, rawTitle string) (string, error) {
	return rawTitle, nil
}

type fakeEmbeddings struct {
	calls atomic.Int64
	err   error
}

func (f *fakeEmbeddings) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	f.calls.Add(1)
	if f.err != nil {
		return pgvector.Vector{}, f.err
	}
	return pgvector.NewVector([]float32{0.1, 0.2, 0.3}), nil
}

type fakeWebLookup struct {
	purchaseLink string
	socialURL    string
	coverURL     string
	socialErr    error
}

func (f *fakeWebLookup) FindPurchaseLink(ctx context.Context, title, author string) (string, error) {
	return f.purchaseLink, nil
}

func (f *fakeWebLookup) FindSocialURL(ctx context.Context, fullName string) (string, error) {
	if f.socialErr != nil {
		return "", f.socialErr
	}
	return f.socialURL, nil
}

func (f *fakeWebLookup) FindCoverImage(ctx context.Context, title, author string) (string, error) {
	return f.coverURL, nil
}

// fakeBrowser answers Extract calls from a FIFO queue of canned values.
type fakeBrowser struct {
	navigated []string
	extracts  []interface{}
}

func (f *fakeBrowser) Navigate(ctx context.Context, url string) error {
	f.navigated = append(f.navigated, url)
	return nil
}

func (f *fakeBrowser) Extract(ctx context.Context, instruction string, out interface{}) error {
	if len(f.extracts) == 0 {
		return errors.New("no canned extract left")
	}
	next := f.extracts[0]
	f.extracts = f.extracts[1:]

	data, err := json.Marshal(next)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("canned extract shape mismatch: %w", err)
	}
	return nil
}

func (f *fakeBrowser) Act(ctx context.Context, instruction string) error { return nil }

func (f *fakeBrowser) Observe(ctx context.Context, instruction string) ([]browser.Element, error) {
	return nil, nil
}
