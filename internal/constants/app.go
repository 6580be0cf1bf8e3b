package constants

const (
	APP_MAIN_JOURNEY    = "main journey"
	APP_CART_SERVICE    = "cart-service"
	APP_CATALOG_SERVICE = "catalog-service"
	AUDIENCE_USER       = "audience-user"
	ISSUER_AUTH         = "auth-provider"
)
