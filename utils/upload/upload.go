package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/ledongthuc/pdf"
)

// ImageLimits bounds uploaded pictures (logos, avatars, post images).
type ImageLimits struct {
	MaxFileSizeMB int
	MaxWidth      int
	MaxHeight     int
}

// DocumentLimits bounds uploaded PDF attachments.
type DocumentLimits struct {
	MaxFileSizeMB int
	MaxPages      int
}

var (
	// ImageRules applies to every image field across the portal.
	ImageRules = ImageLimits{
		MaxFileSizeMB: 5,
		MaxWidth:      4000,
		MaxHeight:     4000,
	}

	// DocumentRules applies to every document field across the portal.
	DocumentRules = DocumentLimits{
		MaxFileSizeMB: 10,
		MaxPages:      200,
	}
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ValidationError is returned for rejected uploads; the message is safe
// to surface to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a client-facing rejection
// rather than an internal failure.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// ValidateImageFile checks an uploaded picture: extension, byte size,
// decodability, and pixel dimensions.
func ValidateImageFile(file *multipart.FileHeader) error {
	f, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return ValidateImage(file.Filename, file.Size, f)
}

// ValidateImage is the reader-based core of ValidateImageFile.
func ValidateImage(filename string, size int64, r io.Reader) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !imageExtensions[ext] {
		return invalid("Unsupported image type %q. Allowed: jpg, jpeg, png, webp", ext)
	}

	maxSize := int64(ImageRules.MaxFileSizeMB) * 1024 * 1024
	if size > maxSize {
		return invalid("Image exceeds maximum allowed size of %dMB", ImageRules.MaxFileSizeMB)
	}

	img, err := imaging.Decode(r)
	if err != nil {
		return invalid("File is not a readable image")
	}

	bounds := img.Bounds()
	if bounds.Dx() > ImageRules.MaxWidth || bounds.Dy() > ImageRules.MaxHeight {
		return invalid("Image dimensions %dx%d exceed the maximum of %dx%d",
			bounds.Dx(), bounds.Dy(), ImageRules.MaxWidth, ImageRules.MaxHeight)
	}

	return nil
}

// ValidatePDFFile checks an uploaded document: extension, byte size and
// that the content actually parses as a PDF with at least one page.
func ValidatePDFFile(file *multipart.FileHeader) error {
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".pdf") {
		return invalid("Only PDF files are supported")
	}

	maxSize := int64(DocumentRules.MaxFileSizeMB) * 1024 * 1024
	if file.Size > maxSize {
		return invalid("Document exceeds maximum allowed size of %dMB", DocumentRules.MaxFileSizeMB)
	}

	f, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	return ValidatePDFBytes(content)
}

// ValidatePDFBytes validates raw PDF content.
func ValidatePDFBytes(content []byte) error {
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return invalid("Invalid PDF file: missing PDF header")
	}

	pageCount, err := pdfPageCount(content)
	if err != nil {
		return invalid("Failed to read PDF: %v", err)
	}
	if pageCount == 0 {
		return invalid("PDF has no pages")
	}
	if pageCount > DocumentRules.MaxPages {
		return invalid("PDF has %d pages, which exceeds the maximum of %d",
			pageCount, DocumentRules.MaxPages)
	}

	return nil
}

// ContentType maps a filename to the Content-Type stored with the
// object. Unknown extensions fall back to octet-stream.
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// sanitizePDF removes trailing garbage data after the last %%EOF.
func sanitizePDF(content []byte) []byte {
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return content
	}

	eofMarker := []byte("%%EOF")
	lastEOF := bytes.LastIndex(content, eofMarker)
	if lastEOF == -1 {
		return content
	}

	pdfEnd := lastEOF + len(eofMarker)
	for pdfEnd < len(content) && (content[pdfEnd] == '\n' || content[pdfEnd] == '\r') {
		pdfEnd++
	}
	if pdfEnd < len(content) {
		return content[:pdfEnd]
	}
	return content
}

func pdfPageCount(content []byte) (int, error) {
	content = sanitizePDF(content)
	reader := bytes.NewReader(content)

	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return 0, fmt.Errorf("failed to parse PDF: %w", err)
	}

	return pdfReader.NumPage(), nil
}
