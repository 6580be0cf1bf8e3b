package cache

const (
	KEY_EXPERIENCES    = "catalog:experiences:"
	KEY_ACCOMMODATIONS = "catalog:accommodations:"
	KEY_MENU_ITEMS     = "catalog:menu-items:"
)
