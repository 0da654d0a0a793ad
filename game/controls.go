package game

// Actions is one frame of player intent, collected by the host from its
// input devices
type Actions struct {
	// Dig is set while the pointer is held over the field
	Dig        bool
	DigX, DigY float64

	// TogglePause is the player pause key
	TogglePause bool

	// ToggleSilentPause opens or closes a panel that freezes the game
	// without the pause overlay
	ToggleSilentPause bool

	// Confirm moves on from a win screen
	Confirm bool

	// Reload replays the current level
	Reload bool
}

// Apply feeds one frame of actions into the game. Actions that make no
// sense in the current state are ignored.
func (g *Game) Apply(a Actions) error {
	if a.Reload && g.state != StateLoading {
		return g.ReloadLevel()
	}

	if a.Confirm {
		switch g.state {
		case StateLevelWon:
			return g.Advance()
		case StateFinalWon:
			return g.Restart()
		}
	}

	if a.ToggleSilentPause {
		switch {
		case g.state == StatePlaying:
			g.Pause(PauseSilent)
		case g.state == StatePaused && g.pauseMode == PauseSilent:
			g.Resume()
		}
	}

	// The overlay key does nothing while a panel holds a silent pause
	if a.TogglePause && g.pauseMode != PauseSilent {
		g.TogglePause()
	}

	if a.Dig {
		g.DigAt(a.DigX, a.DigY)
	}
	return nil
}
