// Package qrpass issues the confirmation tokens that vendors present
// at the fair entrance, and renders them as QR images.
package qrpass

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const tokenPrefix = "BSFAIR-"

// GenerateToken returns a globally-unique opaque confirmation token,
// e.g. "BSFAIR-3F2A9C81D4E7".
func GenerateToken() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")

	return tokenPrefix + strings.ToUpper(raw[:12])
}

// RenderPNG renders the token as a QR code PNG.
func RenderPNG(token string) ([]byte, error) {
	png, err := qrcode.Encode(token, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("qrcode.Encode -> %w", err)
	}

	return png, nil
}

// RenderBase64 renders the token as a base64-encoded QR code PNG,
// suitable for embedding in JSON payloads and data URIs.
func RenderBase64(token string) (string, error) {
	png, err := RenderPNG(token)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
