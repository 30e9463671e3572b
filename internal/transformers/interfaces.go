package transformers

import (
	"casavista-listings/internal/models"
)

type PropertyTransformer interface {
	ToEntity(req *models.CreatePropertyRequest, ownerID string) *models.Property
	ApplyUpdate(property *models.Property, req *models.UpdatePropertyRequest)
}

type AddressTransformer interface {
	NormalizeCity(input string) string
	NormalizePostalCode(input string) string
	ToEntity(req *models.AddressRequest) models.Address
}
