package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Address struct {
	Id            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserId        primitive.ObjectID `bson:"userId" json:"userId"`
	FullName      string             `bson:"fullName" json:"fullName" validate:"required"`
	Phone         string             `bson:"phone" json:"phone" validate:"required"`
	StreetAddress string             `bson:"streetAddress" json:"streetAddress" validate:"required"`
	City          string             `bson:"city" json:"city" validate:"required"`
	State         string             `bson:"state" json:"state" validate:"required"`
	ZipCode       string             `bson:"zipCode" json:"zipCode" validate:"required"`
	IsDefault     bool               `bson:"isDefault" json:"isDefault"`
}

// AddressSnapshot is a full copy embedded in an order, so later edits to
// the address book never alter historical orders.
type AddressSnapshot struct {
	FullName      string `bson:"fullName" json:"fullName"`
	Phone         string `bson:"phone" json:"phone"`
	StreetAddress string `bson:"streetAddress" json:"streetAddress"`
	City          string `bson:"city" json:"city"`
	State         string `bson:"state" json:"state"`
	ZipCode       string `bson:"zipCode" json:"zipCode"`
}

// Snapshot strips the identifying fields and keeps the plain copy.
func (a Address) Snapshot() AddressSnapshot {
	return AddressSnapshot{
		FullName:      a.FullName,
		Phone:         a.Phone,
		StreetAddress: a.StreetAddress,
		City:          a.City,
		State:         a.State,
		ZipCode:       a.ZipCode,
	}
}
