package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Phone     string             `json:"phone" bson:"phone"`
	Street    string             `json:"street" bson:"street"`
	City      string             `json:"city" bson:"city"`
	State     string             `json:"state" bson:"state"`
	Pincode   string             `json:"pincode" bson:"pincode"`
	IsDefault bool               `json:"isDefault" bson:"isDefault"`
}

type User struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	Phone         string             `json:"phone" bson:"phone"`
	Password      string             `json:"password,omitempty" bson:"password"`
	ProfileImage  string             `json:"profile_image,omitempty" bson:"profile_image,omitempty"`
	IsBlocked     bool               `json:"is_blocked" bson:"is_blocked"`
	WalletBalance float64            `json:"wallet_balance" bson:"wallet_balance"`
	ReferralCode  string             `json:"referral_code" bson:"referral_code"`
	ReferredBy    string             `json:"referred_by,omitempty" bson:"referred_by,omitempty"`
	Addresses     []Address          `json:"addresses" bson:"addresses"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// AddressByID returns the user's address with the given id, or nil.
func (u *User) AddressByID(id primitive.ObjectID) *Address {
	for i := range u.Addresses {
		if u.Addresses[i].ID == id {
			return &u.Addresses[i]
		}
	}
	return nil
}

// DefaultAddress returns the user's default address, or nil when none is set.
func (u *User) DefaultAddress() *Address {
	for i := range u.Addresses {
		if u.Addresses[i].IsDefault {
			return &u.Addresses[i]
		}
	}
	return nil
}
