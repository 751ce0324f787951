package qrcode

import (
	"testing"

	"opencycle/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		errorCorrectionLevel string
	}{
		{"Low error correction", "L"},
		{"Medium error correction", "M"},
		{"High error correction", "Q"},
		{"Highest error correction", "H"},
		{"Default error correction", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{QRCode: &config.QRCodeConfig{
				Size:                 256,
				ErrorCorrectionLevel: tt.errorCorrectionLevel,
			}}
			service := NewQRCodeService(cfg)
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateItemShareQR(t *testing.T) {
	cfg := &config.Config{QRCode: &config.QRCodeConfig{
		Size:                 256,
		ErrorCorrectionLevel: "M",
		BaseURL:              "https://opencycle.example.com",
	}}
	service := NewQRCodeService(cfg)
	itemID := uuid.New()

	qrBytes, err := service.GenerateItemShareQR(itemID)
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_GenerateItemShareQR_DifferentSizes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"Small QR", 128},
		{"Medium QR", 256},
		{"Large QR", 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{QRCode: &config.QRCodeConfig{
				Size:                 tt.size,
				ErrorCorrectionLevel: "M",
			}}
			service := NewQRCodeService(cfg)

			qrBytes, err := service.GenerateItemShareQR(uuid.New())
			require.NoError(t, err)
			assert.NotEmpty(t, qrBytes)
		})
	}
}

func TestQRCodeService_DefaultsWhenUnconfigured(t *testing.T) {
	service := NewQRCodeService(&config.Config{})

	qrBytes, err := service.GenerateItemShareQR(uuid.New())
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)
}
