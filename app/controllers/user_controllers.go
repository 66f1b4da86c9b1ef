package controllers

import (
	"github.com/akil18/cop-shop-server-side/app/models"
	"github.com/akil18/cop-shop-server-side/app/repositories"
	"github.com/akil18/cop-shop-server-side/pkg/ctx"
)

type UserController struct {
	users *repositories.UserRepository
}

func NewUserController(users *repositories.UserRepository) *UserController {
	return &UserController{users: users}
}

// roleCheck answers GET /users/{role}/{email} with {key: bool}.
func (uc *UserController) roleCheck(role, key string) ctx.HandlerFunc {
	return func(c *ctx.Context) {
		user, err := uc.users.FindByEmail(c.Context(), c.Param("email"))
		respond(c, map[string]bool{key: user.HasRole(role)}, err)
	}
}

func (uc *UserController) IsAdmin() ctx.HandlerFunc  { return uc.roleCheck(models.RoleAdmin, "isAdmin") }
func (uc *UserController) IsSeller() ctx.HandlerFunc { return uc.roleCheck(models.RoleSeller, "isSeller") }
func (uc *UserController) IsBuyer() ctx.HandlerFunc  { return uc.roleCheck(models.RoleBuyer, "isBuyer") }

// Buyers handles GET /buyers.
func (uc *UserController) Buyers(c *ctx.Context) {
	users, err := uc.users.ByRole(c.Context(), models.RoleBuyer)
	respond(c, users, err)
}

// Sellers handles GET /sellers.
func (uc *UserController) Sellers(c *ctx.Context) {
	users, err := uc.users.ByRole(c.Context(), models.RoleSeller)
	respond(c, users, err)
}

// Store handles POST /users.
func (uc *UserController) Store(c *ctx.Context) {
	var u models.User
	if !c.BindJSON(&u) {
		return
	}
	res, err := uc.users.Create(c.Context(), u)
	respond(c, res, err)
}

// Show handles GET /users/{email}. An unknown email renders null.
func (uc *UserController) Show(c *ctx.Context) {
	user, err := uc.users.FindByEmail(c.Context(), c.Param("email"))
	respond(c, user, err)
}

// Verify handles PUT /admin/users/{id}.
func (uc *UserController) Verify(c *ctx.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}
	res, err := uc.users.Verify(c.Context(), id)
	respond(c, res, err)
}

// Destroy handles DELETE /admin/users/{id}.
func (uc *UserController) Destroy(c *ctx.Context) {
	id, ok := pathID(c, "user")
	if !ok {
		return
	}
	res, err := uc.users.Delete(c.Context(), id)
	respond(c, res, err)
}
