package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Payment records a completed charge. OrderID and ProductID hold the hex
// ids of the order and product it settles.
type Payment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"       json:"_id"`
	OrderID    string             `bson:"orderId,omitempty"   json:"orderId,omitempty"`
	ProductID  string             `bson:"productId,omitempty" json:"productId,omitempty"`
	PaymentID  string             `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Attributes Attributes         `bson:",inline"             json:"-"`
}

func (p Payment) MarshalJSON() ([]byte, error) {
	type plain Payment
	return marshalDocument(plain(p), p.Attributes)
}

func (p *Payment) UnmarshalJSON(data []byte) error {
	type plain Payment
	var v plain
	attrs, err := unmarshalDocument(data, &v)
	if err != nil {
		return err
	}
	v.Attributes = attrs
	*p = Payment(v)
	return nil
}
