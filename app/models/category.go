package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category groups products. Categories are seeded, not created over HTTP.
type Category struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"  json:"_id"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	Attributes Attributes         `bson:",inline"        json:"-"`
}

func (c Category) MarshalJSON() ([]byte, error) {
	type plain Category
	return marshalDocument(plain(c), c.Attributes)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	type plain Category
	var v plain
	attrs, err := unmarshalDocument(data, &v)
	if err != nil {
		return err
	}
	v.Attributes = attrs
	*c = Category(v)
	return nil
}
