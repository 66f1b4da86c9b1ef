package controllers

import (
	"github.com/akil18/cop-shop-server-side/app/models"
	"github.com/akil18/cop-shop-server-side/app/repositories"
	"github.com/akil18/cop-shop-server-side/pkg/ctx"
)

type ProductController struct {
	products *repositories.ProductRepository
}

func NewProductController(products *repositories.ProductRepository) *ProductController {
	return &ProductController{products: products}
}

// ByCategory handles GET /products/{category}.
func (pc *ProductController) ByCategory(c *ctx.Context) {
	products, err := pc.products.ByCategory(c.Context(), c.Param("category"))
	respond(c, products, err)
}

// Advertised handles GET /advertisedproducts.
func (pc *ProductController) Advertised(c *ctx.Context) {
	products, err := pc.products.Advertised(c.Context())
	respond(c, products, err)
}

// BySeller handles GET /products?email=. Without the parameter it lists
// products that carry no email.
func (pc *ProductController) BySeller(c *ctx.Context) {
	var email *string
	if c.HasQuery("email") {
		e := c.Query("email")
		email = &e
	}
	products, err := pc.products.BySeller(c.Context(), email)
	respond(c, products, err)
}

// Store handles POST /products.
func (pc *ProductController) Store(c *ctx.Context) {
	var p models.Product
	if !c.BindJSON(&p) {
		return
	}
	res, err := pc.products.Create(c.Context(), p)
	respond(c, res, err)
}

// Advertise handles PUT /products/{id}.
func (pc *ProductController) Advertise(c *ctx.Context) {
	id, ok := pathID(c, "product")
	if !ok {
		return
	}
	res, err := pc.products.Advertise(c.Context(), id)
	respond(c, res, err)
}

// Report handles PUT /reportItem/{id}.
func (pc *ProductController) Report(c *ctx.Context) {
	id, ok := pathID(c, "product")
	if !ok {
		return
	}
	res, err := pc.products.Report(c.Context(), id)
	respond(c, res, err)
}

// Reported handles GET /reportedItems.
func (pc *ProductController) Reported(c *ctx.Context) {
	products, err := pc.products.Reported(c.Context())
	respond(c, products, err)
}

// Destroy handles DELETE /reportedItems/{id}.
func (pc *ProductController) Destroy(c *ctx.Context) {
	id, ok := pathID(c, "product")
	if !ok {
		return
	}
	res, err := pc.products.Delete(c.Context(), id)
	respond(c, res, err)
}
