package models

import "time"

type AddressRequest struct {
	Street     string `json:"street" binding:"required,max=200"`
	Number     string `json:"number" binding:"required,max=20"`
	City       string `json:"city" binding:"required,max=100"`
	PostalCode string `json:"postalCode" binding:"required,len=8,numeric"`
	Country    string `json:"country" binding:"omitempty,max=100"`
}

type CreatePropertyRequest struct {
	PropertyType   string         `json:"propertyType" binding:"required,oneof=APARTMENT HOUSE"`
	SalesType      string         `json:"salesType" binding:"required,oneof=RENT SALE"`
	PropertySize   float64        `json:"propertySize" binding:"required,gt=0"`
	PropertyValue  float64        `json:"propertyValue" binding:"required,gt=0"`
	Description    string         `json:"description" binding:"required,min=10,max=1000"`
	CondominiumFee *float64       `json:"condominiumFee" binding:"omitempty,gte=0"`
	CommonArea     bool           `json:"commonArea"`
	Floor          *int           `json:"floor" binding:"omitempty,gte=-10,lte=200"`
	IsPetAllowed   bool           `json:"isPetAllowed"`
	LandPrice      *float64       `json:"landPrice" binding:"omitempty,gt=0"`
	IsSingleHouse  *bool          `json:"isSingleHouse"`
	Address        AddressRequest `json:"address" binding:"required"`
}

// full update; the same field rules as creation apply.
type UpdatePropertyRequest = CreatePropertyRequest

type CreateVisitRequest struct {
	PropertyID string    `json:"propertyId" binding:"required,uuid"`
	VisitDate  time.Time `json:"visitDate" binding:"required"`
	Notes      string    `json:"notes" binding:"omitempty,max=500"`
}

type UpdateVisitRequest struct {
	VisitDate *time.Time `json:"visitDate"`
	Notes     *string    `json:"notes" binding:"omitempty,max=500"`
}

type CancelVisitRequest struct {
	CancellationReason string `json:"cancellationReason" binding:"omitempty,max=200"`
}

type CreateProposalRequest struct {
	PropertyID    string  `json:"propertyId" binding:"required,uuid"`
	ProposalValue float64 `json:"proposalValue" binding:"required,gt=0"`
	Message       string  `json:"message" binding:"omitempty,max=1000"`
}

type RespondProposalRequest struct {
	ResponseMessage string `json:"responseMessage" binding:"omitempty,max=500"`
}
