package constants

// Board capacity and geometry. Positions are terminal cell coordinates
// local to the board region.
const (
	// BoardCapacity is the maximum number of items resting on the board.
	// Inserting beyond it evicts the oldest surviving item first.
	BoardCapacity = 24

	// ItemBoxWidth is the rendered footprint of a placed item in cells
	ItemBoxWidth = 18

	// ItemBoxHeight is the rendered footprint of a placed item in cells
	ItemBoxHeight = 5

	// BoardMargin keeps item boxes off the board edges
	BoardMargin = 1

	// CombineSpawnOffsetX places a combination result near its target
	CombineSpawnOffsetX = 8

	// CombineSpawnOffsetY places a combination result near its target
	CombineSpawnOffsetY = 3
)

// Sidebar layout
const (
	// SidebarWidth is the fixed width of the catalog palette in cells
	SidebarWidth = 26

	// SidebarHeaderRows is the title plus filter line above the entry list
	SidebarHeaderRows = 2

	// TopBarHeight is the height of the title bar
	TopBarHeight = 1

	// StatusBarHeight is the height of the bottom hint bar
	StatusBarHeight = 1
)
