package controllers

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/akil18/cop-shop-server-side/app/models"
	"github.com/akil18/cop-shop-server-side/app/services"
	"github.com/akil18/cop-shop-server-side/pkg/apperr"
	"github.com/akil18/cop-shop-server-side/pkg/ctx"
)

type PaymentController struct {
	checkout *services.CheckoutService
}

func NewPaymentController(checkout *services.CheckoutService) *PaymentController {
	return &PaymentController{checkout: checkout}
}

// intentRequest is the order the storefront posts to start checkout. Only
// price is read; it arrives as a number or a numeric string. "NaN" and
// "Inf" strings parse as floats but are not prices.
type intentRequest struct {
	Price json.RawMessage `json:"price"`
}

func (r intentRequest) price() (float64, bool) {
	raw := bytes.TrimSpace(r.Price)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		raw = []byte(strings.TrimSpace(s))
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CreateIntent handles POST /create-payment-intent.
func (pc *PaymentController) CreateIntent(c *ctx.Context) {
	var req intentRequest
	if !c.BindJSON(&req) {
		return
	}
	price, ok := req.price()
	if !ok {
		c.Fail(apperr.BadRequest("price is required"))
		return
	}

	secret, err := pc.checkout.CreateIntent(c.Context(), price)
	respond(c, map[string]string{"clientSecret": secret}, err)
}

// Store handles POST /payments.
func (pc *PaymentController) Store(c *ctx.Context) {
	var p models.Payment
	if !c.BindJSON(&p) {
		return
	}
	res, err := pc.checkout.Settle(c.Context(), p)
	respond(c, res, err)
}
