package transformers

import (
	"time"

	"casavista-listings/internal/models"
)

type propertyTransformer struct {
	address AddressTransformer
}

func NewPropertyTransformer(address AddressTransformer) PropertyTransformer {
	return &propertyTransformer{address: address}
}

func (t *propertyTransformer) ToEntity(req *models.CreatePropertyRequest, ownerID string) *models.Property {
	property := &models.Property{
		OwnerID:       ownerID,
		Address:       t.address.ToEntity(&req.Address),
		PropertyType:  req.PropertyType,
		SalesType:     req.SalesType,
		PropertySize:  req.PropertySize,
		PropertyValue: req.PropertyValue,
		Description:   req.Description,
		PublishDate:   time.Now().UTC(),
		CommonArea:    req.CommonArea,
		Floor:         req.Floor,
		IsPetAllowed:  req.IsPetAllowed,
		LandPrice:     req.LandPrice,
		IsSingleHouse: req.IsSingleHouse,
		IsActive:      true,
	}
	if req.CondominiumFee != nil {
		property.CondominiumFee = *req.CondominiumFee
	}
	return property
}

// ApplyUpdate overwrites the mutable fields in place. Identity, ownership
// and lifecycle fields stay as they are.
func (t *propertyTransformer) ApplyUpdate(property *models.Property, req *models.UpdatePropertyRequest) {
	addr := t.address.ToEntity(&req.Address)
	addr.ID = property.Address.ID
	property.Address = addr

	property.PropertyType = req.PropertyType
	property.SalesType = req.SalesType
	property.PropertySize = req.PropertySize
	property.PropertyValue = req.PropertyValue
	property.Description = req.Description
	property.CommonArea = req.CommonArea
	property.Floor = req.Floor
	property.IsPetAllowed = req.IsPetAllowed
	property.LandPrice = req.LandPrice
	property.IsSingleHouse = req.IsSingleHouse

	property.CondominiumFee = 0
	if req.CondominiumFee != nil {
		property.CondominiumFee = *req.CondominiumFee
	}
}
