package constants

const (
	KEY_APP_NAME         = "app"
	KEY_BODY             = "body"
	KEY_CACHE_KEY        = "cacheKey"
	KEY_CART             = "cart"
	KEY_CART_ITEM        = "cartItem"
	KEY_CART_ITEM_ID     = "cartItemId"
	KEY_CART_ITEMS_COUNT = "cartItemsCount"
	KEY_CART_OUTCOME     = "cartOutcome"
	KEY_CART_TOTAL       = "cartTotal"
	KEY_CATALOG_CHANGE   = "catalogChange"
	KEY_CATALOG_KIND     = "catalogKind"
	KEY_CONFIG           = "config"
	KEY_DB_URL           = "dbUrl"
	KEY_ENTITY_ID        = "entityId"
	KEY_HEADER           = "header"
	KEY_PROCESS          = "process"
	KEY_REQUEST          = "request"
	KEY_REQUEST_BODY     = "requestBody"
	KEY_REQUEST_HOST     = "host"
	KEY_REQUEST_ID       = "requestId"
	KEY_REQUEST_IP       = "requesterIp"
	KEY_REQUEST_METHOD   = "requestMethod"
	KEY_REQUEST_URI      = "requestUri"
	KEY_REQUEST_URL      = "requestUrl"
	KEY_ROLE             = "role"
	KEY_SESSION_ID       = "sessionId"
	KEY_SPAN_ID          = "spanId"
	KEY_TAG              = "tag"
	KEY_TOKEN            = "token"
	KEY_TRACE_ID         = "traceId"
	KEY_USER_ID          = "userId"
)
