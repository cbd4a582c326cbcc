package upload

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := imaging.New(w, h, color.White)
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	data := pngBytes(t, 10, 10)

	if err := ValidateImage("photo.png", int64(len(data)), bytes.NewReader(data)); err != nil {
		t.Errorf("valid png rejected: %v", err)
	}

	err := ValidateImage("photo.gif", int64(len(data)), bytes.NewReader(data))
	if err == nil || !IsValidationError(err) {
		t.Errorf("gif extension should be rejected with a validation error, got %v", err)
	}

	tooBig := int64(ImageRules.MaxFileSizeMB)*1024*1024 + 1
	err = ValidateImage("photo.png", tooBig, bytes.NewReader(data))
	if err == nil || !IsValidationError(err) {
		t.Errorf("oversize should be rejected, got %v", err)
	}

	err = ValidateImage("photo.png", 12, strings.NewReader("not an image"))
	if err == nil || !IsValidationError(err) {
		t.Errorf("undecodable content should be rejected, got %v", err)
	}
}

func TestValidateImageDimensions(t *testing.T) {
	wide := pngBytes(t, ImageRules.MaxWidth+1, 1)
	err := ValidateImage("wide.png", int64(len(wide)), bytes.NewReader(wide))
	if err == nil || !IsValidationError(err) {
		t.Errorf("oversize dimensions should be rejected, got %v", err)
	}
}

func TestValidatePDFBytes(t *testing.T) {
	err := ValidatePDFBytes([]byte("plain text, no header"))
	if err == nil || !IsValidationError(err) {
		t.Errorf("missing %%PDF- header should be rejected, got %v", err)
	}

	err = ValidatePDFBytes([]byte("%PDF-1.4 truncated garbage"))
	if err == nil || !IsValidationError(err) {
		t.Errorf("unparseable pdf should be rejected, got %v", err)
	}
}

func TestSanitizePDF(t *testing.T) {
	content := []byte("%PDF-1.4\nbody\n%%EOF\njunk after the marker")
	cleaned := sanitizePDF(content)
	if !bytes.HasSuffix(cleaned, []byte("%%EOF\n")) {
		t.Errorf("trailing junk should be stripped, got %q", cleaned)
	}

	noEOF := []byte("%PDF-1.4\nbody")
	if !bytes.Equal(sanitizePDF(noEOF), noEOF) {
		t.Error("content without the EOF marker should pass through unchanged")
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"a.jpg":  "image/jpeg",
		"a.JPEG": "image/jpeg",
		"a.png":  "image/png",
		"a.webp": "image/webp",
		"a.pdf":  "application/pdf",
		"a.bin":  "application/octet-stream",
	}
	for filename, want := range tests {
		if got := ContentType(filename); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", filename, got, want)
		}
	}
}
