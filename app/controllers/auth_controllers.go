package controllers

import (
	"net/http"

	"github.com/akil18/cop-shop-server-side/app/services"
	"github.com/akil18/cop-shop-server-side/pkg/apperr"
	"github.com/akil18/cop-shop-server-side/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Token handles GET /jwt?email=. Unknown users get 403 with an empty token.
func (ac *AuthController) Token(c *ctx.Context) {
	token, err := ac.service.IssueToken(c.Context(), c.Query("email"))
	if apperr.IsKind(err, apperr.KindForbidden) {
		c.JSON(http.StatusForbidden, tokenResponse{})
		return
	}
	respond(c, tokenResponse{AccessToken: token}, err)
}
