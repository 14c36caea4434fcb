// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess       = "success"
	KeyInternalError = "internal_error"
	KeyRateLimited   = "rate_limited"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthEmailTaken         = "auth.email_taken"
	KeyAuthPasswordMismatch   = "auth.password_mismatch"
	KeyAuthOldPasswordInvalid = "auth.old_password_invalid"
	KeyAuthLoginSuccess       = "auth.login_success"

	// Users
	KeyUserNotFound = "user.not_found"

	// Catalog
	KeyProductNotFound  = "product.not_found"
	KeyBrandNotFound    = "brand.not_found"
	KeyGroupNotFound    = "group.not_found"
	KeyCatalogBadPage   = "catalog.invalid_page"
	KeyCatalogSlugTaken = "catalog.slug_taken"

	// Favorites
	KeyFavoriteNotFound       = "favorite.not_found"
	KeyFavoriteExists         = "favorite.exists"
	KeyFavoriteUnknownProduct = "favorite.unknown_product"

	// Orders
	KeyOrderNotFound         = "order.not_found"
	KeyOrderUnknownProduct   = "order.unknown_product"
	KeyOrderEmptyItems       = "order.empty_items"
	KeyOrderDuplicateItems   = "order.duplicate_items"
	KeyOrderAlreadyCompleted = "order.already_completed"
	KeyOrderEmailSubject     = "order.email_subject"
	KeyOrderEmailPrice       = "order.email_price"

	// Payments
	KeyPaymentDisabled = "payment.disabled"
	KeyPaymentFailed   = "payment.failed"

	// Storage
	KeyStorageInvalidFile  = "storage.invalid_file"
	KeyStorageUploadFailed = "storage.upload_failed"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRequired = "validation.required"
)
