package service

import "github.com/google/uuid"

// QRCodeService defines the interface for generating share QR codes.
type QRCodeService interface {
	// GenerateItemShareQR renders a QR code PNG pointing at the public item page.
	GenerateItemShareQR(itemID uuid.UUID) ([]byte, error)
}
