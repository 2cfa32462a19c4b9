package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebook/internal/app"
)

// QuoteHandler serves the quote and comment endpoints.
type QuoteHandler struct {
	service *app.Service
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.Service) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// ListQuotes handles GET /api/v1/quotes.
//
// @Summary List all quotes
// @Tags quotes
// @Produce json
// @Success 200 {array} dto.QuoteDisplay
// @Failure 404 {object} dto.ErrorResponse "EMPTY_RESULT when no quote exists"
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.service.GetAllQuotes(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteDisplays(quotes))
}

// CreateQuote handles POST /api/v1/quotes.
//
// @Summary Create a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param body body dto.NewQuoteRequest true "Quote"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "UNKNOWN_AUTHOR"
// @Router /api/v1/quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.NewQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	quote, err := h.service.NewQuote(c.Request.Context(), app.NewQuoteInput{
		AuthorID: req.AuthorID,
		Quote:    req.Quote,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(quote))
}

// DeleteQuote handles DELETE /api/v1/quotes/:quoteId?authorId=.
// The quote's comments are removed with it.
//
// @Summary Delete a quote
// @Tags quotes
// @Produce json
// @Param quoteId path string true "Quote ID"
// @Param authorId query string true "Owner ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{quoteId} [delete]
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	var req dto.DeleteQuoteRequest
	if err := dto.BindRequestAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	quote, err := h.service.DeleteQuote(c.Request.Context(), req.QuoteID, req.AuthorID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// ListComments handles GET /api/v1/quotes/:quoteId/comments.
//
// @Summary List the comments on a quote
// @Tags comments
// @Produce json
// @Param quoteId path string true "Quote ID"
// @Success 200 {array} dto.CommentDisplay
// @Failure 404 {object} dto.ErrorResponse "UNKNOWN_QUOTE or NO_COMMENTS"
// @Router /api/v1/quotes/{quoteId}/comments [get]
func (h *QuoteHandler) ListComments(c *gin.Context) {
	comments, err := h.service.GetQuoteComments(c.Request.Context(), c.Param("quoteId"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCommentDisplays(comments))
}

// AddComment handles POST /api/v1/quotes/:quoteId/comments.
//
// @Summary Comment on a quote
// @Tags comments
// @Accept json
// @Produce json
// @Param quoteId path string true "Quote ID"
// @Param body body dto.NewCommentRequest true "Comment"
// @Success 201 {object} dto.CommentResponse
// @Failure 404 {object} dto.ErrorResponse "UNKNOWN_QUOTE"
// @Failure 422 {object} dto.ErrorResponse "UNKNOWN_AUTHOR"
// @Router /api/v1/quotes/{quoteId}/comments [post]
func (h *QuoteHandler) AddComment(c *gin.Context) {
	var req dto.NewCommentRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), app.AddCommentInput{
		AuthorID: req.AuthorID,
		QuoteID:  c.Param("quoteId"),
		Comment:  req.Comment,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewCommentResponse(comment))
}

// DeleteComment handles DELETE /api/v1/quotes/:quoteId/comments/:commentId?authorId=.
//
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Param quoteId path string true "Quote ID"
// @Param commentId path string true "Comment ID"
// @Param authorId query string true "Comment author ID"
// @Success 200 {object} dto.CommentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "MISMATCH"
// @Router /api/v1/quotes/{quoteId}/comments/{commentId} [delete]
func (h *QuoteHandler) DeleteComment(c *gin.Context) {
	var req dto.DeleteCommentRequest
	if err := dto.BindRequestAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	comment, err := h.service.DeleteComment(c.Request.Context(), req.QuoteID, req.CommentID, req.AuthorID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCommentResponse(comment))
}

// RegisterRoutes mounts the quote and comment routes on rg.
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.POST("", h.CreateQuote)
	quotes.DELETE("/:quoteId", h.DeleteQuote)
	quotes.GET("/:quoteId/comments", h.ListComments)
	quotes.POST("/:quoteId/comments", h.AddComment)
	quotes.DELETE("/:quoteId/comments/:commentId", h.DeleteComment)
}
