package controllers

import (
	"github.com/akil18/cop-shop-server-side/app/repositories"
	"github.com/akil18/cop-shop-server-side/pkg/ctx"
)

type CategoryController struct {
	categories *repositories.CategoryRepository
}

func NewCategoryController(categories *repositories.CategoryRepository) *CategoryController {
	return &CategoryController{categories: categories}
}

// Index handles GET /categories.
func (cc *CategoryController) Index(c *ctx.Context) {
	all, err := cc.categories.All(c.Context())
	respond(c, all, err)
}

// Show handles GET /categories/{id}. An unknown id renders null.
func (cc *CategoryController) Show(c *ctx.Context) {
	id, ok := pathID(c, "category")
	if !ok {
		return
	}
	category, err := cc.categories.Find(c.Context(), id)
	respond(c, category, err)
}
