package utils

import (
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// RedemptionCodePrefix namespaces redemption codes to orders
const RedemptionCodePrefix = "ORDER-"

// NewRedemptionCode returns a random, unguessable order redemption code
func NewRedemptionCode() string {
	return RedemptionCodePrefix + uuid.NewString()
}

// QRCodePNG renders code as a PNG QR image of the given pixel size
func QRCodePNG(code string, size int) ([]byte, error) {
	return qrcode.Encode(code, qrcode.Medium, size)
}
