package app

// DebugState holds debug flags. They live on the App and survive level loads.
type DebugState struct {
	ShowRegions bool // Outline the merged terrain collision regions
	ShowStats   bool // Print frame and particle counters

	// ToggleProfile is set for the frame F2 was pressed
	ToggleProfile bool
}
