package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Order is a buyer's claim on a product, paid for through a Payment.
type Order struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"        json:"_id"`
	BuyerEmail string             `bson:"buyerEmail,omitempty" json:"buyerEmail,omitempty"`
	Title      string             `bson:"title,omitempty"      json:"title,omitempty"`
	ProductID  string             `bson:"productId,omitempty"  json:"productId,omitempty"`
	Paid       bool               `bson:"paid,omitempty"       json:"paid,omitempty"`
	PaymentID  string             `bson:"paymentId,omitempty"  json:"paymentId,omitempty"`
	Attributes Attributes         `bson:",inline"              json:"-"`
}

func (o Order) MarshalJSON() ([]byte, error) {
	type plain Order
	return marshalDocument(plain(o), o.Attributes)
}

func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	var v plain
	attrs, err := unmarshalDocument(data, &v)
	if err != nil {
		return err
	}
	v.Attributes = attrs
	*o = Order(v)
	return nil
}
