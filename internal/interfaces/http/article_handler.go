package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestockhq/gestock-api/internal/application/dto"
	"github.com/gestockhq/gestock-api/internal/application/usecase"
)

// ArticleHandler CRUD de artículos del inventario.
type ArticleHandler struct {
	uc *usecase.ArticleUseCase
}

// NewArticleHandler construye el handler de artículos.
func NewArticleHandler(uc *usecase.ArticleUseCase) *ArticleHandler {
	return &ArticleHandler{uc: uc}
}

// List lista los artículos del usuario con sus campos derivados.
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	articles, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Articles récupérés.", articles)
}

// Get devuelve un artículo por ID.
func (h *ArticleHandler) Get(c *fiber.Ctx) error {
	article, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Article récupéré.", article)
}

// Create da de alta un artículo simple o variable.
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateArticleRequest
	if !parseBody(c, &in) {
		return nil
	}
	article, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return created(c, "Article créé avec succès.", article)
}

// Update modifica un artículo. El tipo es inmutable.
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateArticleRequest
	if !parseBody(c, &in) {
		return nil
	}
	article, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, "Article mis à jour.", article)
}

// Delete elimina un artículo y sus variaciones.
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return ok(c, "Article supprimé.", nil)
}
