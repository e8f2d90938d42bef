package menu

// Standard menu locations
const (
	LocationCommandPalette  LocationID = "command-palette"
	LocationEditorContext   LocationID = "editor-context"
	LocationExplorerContext LocationID = "explorer-context"
	LocationTitleBar        LocationID = "title-bar"
	LocationStatusBar       LocationID = "status-bar"
	LocationViewItemContext LocationID = "view-item-context"
)

// GroupNavigation is the reserved group name that always sorts first and
// orders its items strictly by their numeric order hint.
const GroupNavigation = "navigation"
