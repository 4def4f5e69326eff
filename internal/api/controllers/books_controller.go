package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"strconv"

	"bookgraph/internal/services"
	"bookgraph/pkg/utils"
)

type BooksController struct {
	bookService services.BookServiceInterface
	recService  services.RecommendationServiceInterface
}

func NewBooksController(
	bookService services.BookServiceInterface,
	recService services.RecommendationServiceInterface,
) *BooksController {
	return &BooksController{
		bookService: bookService,
		recService:  recService,
	}
}

func (b *BooksController) GetBookById(c *gin.Context) {
	bookID := c.Param("id")
	if bookID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Book ID is required")
		return
	}

	book, err := b.bookService.GetBookByID(bookID, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, book, "Book fetched successfully")
}

func (b *BooksController) ListBooks(c *gin.Context) {
	page, pageSize, ok := parsePaging(c)
	if !ok {
		return
	}

	books, err := b.bookService.ListBooks(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, books, "Books fetched successfully")
}

func (b *BooksController) GetBookRecommendations(c *gin.Context) {
	bookID := c.Param("id")
	if bookID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Book ID is required")
		return
	}

	recs, err := b.recService.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, recs, "Recommendations fetched successfully")
}

func parsePaging(c *gin.Context) (int, int, bool) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "20")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return 0, 0, false
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return 0, 0, false
	}

	return page, pageSize, true
}
