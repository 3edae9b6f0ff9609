package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const pngSize = 320 // mobile-friendly size

// JoinURL builds the canonical join address embedded in the QR code.
func JoinURL(baseURL, code string) string {
	return fmt.Sprintf("%s/chat/%s", baseURL, code)
}

// DataURL encodes the given URL as a PNG QR code wrapped in a data URI,
// ready to be used as an image source.
func DataURL(url string) (string, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, pngSize)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
