package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Car references its manufacturer and owners by id only; nothing cascades.
type Car struct {
	ID                    primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	ManufacturerID        primitive.ObjectID   `bson:"manufacturerId,omitempty" json:"manufacturerId"`
	Price                 float64              `bson:"price" json:"price"`
	FirstRegistrationDate time.Time            `bson:"firstRegistrationDate" json:"firstRegistrationDate"`
	Owners                []primitive.ObjectID `bson:"owners,omitempty" json:"owners"`
}

type Manufacturer struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Phone string             `bson:"phone" json:"phone"`
	Siret int64              `bson:"siret" json:"siret"`
}

// Owner's PurchaseDate is the aging clock for the cleanup workflow.
type Owner struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	PurchaseDate time.Time          `bson:"purchaseDate" json:"purchaseDate"`
}

// CarPatch carries a partial update; only non-nil fields enter the $set
// document.
type CarPatch struct {
	ManufacturerID        *primitive.ObjectID
	Price                 *float64
	FirstRegistrationDate *time.Time
	Owners                *[]primitive.ObjectID
}

func (p CarPatch) SetDocument() bson.M {
	set := bson.M{}
	if p.ManufacturerID != nil {
		set["manufacturerId"] = *p.ManufacturerID
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.FirstRegistrationDate != nil {
		set["firstRegistrationDate"] = *p.FirstRegistrationDate
	}
	if p.Owners != nil {
		set["owners"] = *p.Owners
	}
	return set
}

type ManufacturerPatch struct {
	Name  *string
	Phone *string
	Siret *int64
}

func (p ManufacturerPatch) SetDocument() bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Phone != nil {
		set["phone"] = *p.Phone
	}
	if p.Siret != nil {
		set["siret"] = *p.Siret
	}
	return set
}

type OwnerPatch struct {
	Name         *string
	PurchaseDate *time.Time
}

func (p OwnerPatch) SetDocument() bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.PurchaseDate != nil {
		set["purchaseDate"] = *p.PurchaseDate
	}
	return set
}
