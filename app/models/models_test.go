package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/akil18/cop-shop-server-side/app/models"
)

func TestUnknownFieldsSurviveJSON(t *testing.T) {
	in := `{"title":"Pixel 6","category":"phones","email":"s@shop.test","price":120,"resalePrice":"99.5","images":["a.png"],"seller":{"phone":"017"}}`

	var p models.Product
	require.NoError(t, json.Unmarshal([]byte(in), &p))

	assert.Equal(t, "Pixel 6", p.Title)
	assert.Equal(t, "phones", p.Category)
	assert.Equal(t, int64(120), p.Attributes["price"])
	assert.Equal(t, "99.5", p.Attributes["resalePrice"])
	assert.NotContains(t, p.Attributes, "title")

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out), "unset _id and false flags are omitted")
}

func TestUnknownFieldsSurviveBSON(t *testing.T) {
	id := primitive.NewObjectID()
	o := models.Order{
		ID:         id,
		BuyerEmail: "b@shop.test",
		Title:      "Pixel 6",
		Attributes: models.Attributes{"price": int64(120), "meetLocation": "Dhaka"},
	}

	raw, err := bson.Marshal(o)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "Dhaka", doc["meetLocation"], "attributes are stored inline")
	assert.NotContains(t, doc, "paid")

	var back models.Order
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, o.ID, back.ID)
	assert.Equal(t, "Dhaka", back.Attributes["meetLocation"])
	assert.Equal(t, int64(120), back.Attributes["price"])
}

func TestIDRendersAsHex(t *testing.T) {
	id := primitive.NewObjectID()
	out, err := json.Marshal(models.Category{ID: id, Name: "Phones"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"_id":"`+id.Hex()+`","name":"Phones"}`, string(out))

	var c models.Category
	require.NoError(t, json.Unmarshal(out, &c))
	assert.Equal(t, id, c.ID)
	assert.Nil(t, c.Attributes)
}

func TestListEncodesEachDocument(t *testing.T) {
	users := []models.User{
		{Email: "a@shop.test", Role: models.RoleBuyer},
		{Email: "b@shop.test", Role: models.RoleSeller, Attributes: models.Attributes{"name": "B"}},
	}
	out, err := json.Marshal(users)
	require.NoError(t, err)

	assert.JSONEq(t, `[{"email":"a@shop.test","role":"buyer"},{"email":"b@shop.test","role":"seller","name":"B"}]`, string(out))
}

func TestHasRole(t *testing.T) {
	var nobody *models.User
	assert.False(t, nobody.HasRole(models.RoleAdmin))
	assert.True(t, (&models.User{Role: models.RoleAdmin}).HasRole(models.RoleAdmin))
}

func TestBadIDRejected(t *testing.T) {
	var p models.Payment
	assert.Error(t, json.Unmarshal([]byte(`{"_id":"nope"}`), &p))
}

func TestCaseVariantKeyIsNotAnAttribute(t *testing.T) {
	var p models.Product
	require.NoError(t, json.Unmarshal([]byte(`{"Title":"Pixel 6","category":"phones","condition":"good"}`), &p))
	assert.Equal(t, "Pixel 6", p.Title)
	assert.NotContains(t, p.Attributes, "Title")
	assert.Equal(t, "good", p.Attributes["condition"])

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Pixel 6","category":"phones","condition":"good"}`, string(out))
}
