package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info

	IconConfig   = "\ue615" // config
	IconDatabase = "\uf1c0" // database
	IconTrash    = "\uf1f8" // trash

	IconAnchor       = "\uf13d" // anchor (slots)
	IconSessionStack = "\uf24d" // clone/stack
	IconClock        = "\uf017" // clock
	IconOpen         = "\uf04b" // play (tab open)
	IconClosed       = "\uf04d" // stop (tab closed)
)
