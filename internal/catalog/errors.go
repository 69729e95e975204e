package catalog

// Error codes mirror domain error codes to avoid circular imports.
// The service layer translates these into domain errors.
const codeNotFound = "not_found"

// CatalogError represents a catalog-specific error with a code and message.
type CatalogError struct {
	Code    string
	Message string
}

func (e *CatalogError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for translation at higher layers.
func (e *CatalogError) ErrorCode() string {
	return e.Code
}

// ErrVariantNotFound is returned when the catalog has no such variant.
var ErrVariantNotFound = &CatalogError{Code: codeNotFound, Message: "Variant not found"}
