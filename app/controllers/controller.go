// Package controllers maps HTTP requests onto repositories and services.
// Every handler writes the raw store result on success and an error
// envelope on failure.
package controllers

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akil18/cop-shop-server-side/pkg/apperr"
	"github.com/akil18/cop-shop-server-side/pkg/ctx"
	"github.com/akil18/cop-shop-server-side/pkg/store"
)

// pathID parses the {id} path parameter. It writes a 400 and returns false
// when the value is not an ObjectID.
func pathID(c *ctx.Context, what string) (primitive.ObjectID, bool) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		c.Fail(apperr.BadRequest("invalid " + what + " id"))
		return primitive.NilObjectID, false
	}
	return id, true
}

// respond writes v with 200, or the error's status.
func respond(c *ctx.Context, v any, err error) {
	if err != nil {
		c.Fail(err)
		return
	}
	c.OK(v)
}
