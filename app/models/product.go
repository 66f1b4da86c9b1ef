package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is a listing. Email is the seller's.
type Product struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"       json:"_id"`
	Title      string             `bson:"title,omitempty"     json:"title,omitempty"`
	Category   string             `bson:"category,omitempty"  json:"category,omitempty"`
	Email      string             `bson:"email,omitempty"     json:"email,omitempty"`
	Advertise  bool               `bson:"advertise,omitempty" json:"advertise,omitempty"`
	Sold       bool               `bson:"sold,omitempty"      json:"sold,omitempty"`
	Report     bool               `bson:"report,omitempty"    json:"report,omitempty"`
	Attributes Attributes         `bson:",inline"             json:"-"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return marshalDocument(plain(p), p.Attributes)
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var v plain
	attrs, err := unmarshalDocument(data, &v)
	if err != nil {
		return err
	}
	v.Attributes = attrs
	*p = Product(v)
	return nil
}
