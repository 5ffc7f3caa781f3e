/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

// PreferenceStrength orders how strongly a player is due a color.
type PreferenceStrength int

const (
	StrengthNone PreferenceStrength = iota
	StrengthMild
	StrengthStrong
	StrengthAbsolute
)

func (s PreferenceStrength) String() string {
	switch s {
	case StrengthMild:
		return "mild"
	case StrengthStrong:
		return "strong"
	case StrengthAbsolute:
		return "absolute"
	default:
		return "none"
	}
}

// ColorPreference is the due color of a player together with its strength.
type ColorPreference struct {
	Color    Color
	Strength PreferenceStrength
}

// Short renders the preference as used in checklists: "W!" absolute,
// "W" strong, "w" mild, "-" none.
func (cp ColorPreference) Short() string {
	if cp.Color == ColorNone {
		return "-"
	}
	s := cp.Color.Letter()
	if cp.Strength >= StrengthStrong {
		if cp.Color == ColorWhite {
			s = "W"
		} else {
			s = "B"
		}
	}
	if cp.Strength == StrengthAbsolute {
		s += "!"
	}

	return s
}

// Player is one tournament participant. Matches is append-only: one entry
// per completed round.
type Player struct {
	ID            PlayerIndex `json:"id"`
	Name          string      `json:"name"`
	Rating        int         `json:"rating"`
	Matches       []Match     `json:"matches"`
	Accelerations []Points    `json:"accelerations,omitempty"`
	Withdrawn     bool        `json:"withdrawn,omitempty"`
	// RequestedBye excludes the player from the next round's pairing.
	RequestedBye bool `json:"requestedBye,omitempty"`
}

// PlayedColors returns the colors of the games actually played, oldest first.
func (p *Player) PlayedColors() []Color {
	colors := make([]Color, 0, len(p.Matches))
	for _, m := range p.Matches {
		if m.Result.GameWasPlayed() && m.Color != ColorNone {
			colors = append(colors, m.Color)
		}
	}

	return colors
}

// ColorImbalance is the number of whites minus the number of blacks.
func (p *Player) ColorImbalance() int {
	imbalance := 0
	for _, c := range p.PlayedColors() {
		if c == ColorWhite {
			imbalance++
		} else {
			imbalance--
		}
	}

	return imbalance
}

// ColorPreference derives the due color from the played-game history.
func (p *Player) ColorPreference() ColorPreference {
	colors := p.PlayedColors()
	if len(colors) == 0 {
		return ColorPreference{}
	}
	imbalance := p.ColorImbalance()
	last := colors[len(colors)-1]

	switch {
	case imbalance > 1:
		return ColorPreference{Color: ColorBlack, Strength: StrengthAbsolute}
	case imbalance < -1:
		return ColorPreference{Color: ColorWhite, Strength: StrengthAbsolute}
	case len(colors) >= 2 && colors[len(colors)-2] == last:
		return ColorPreference{Color: last.Invert(), Strength: StrengthAbsolute}
	case imbalance == 1:
		return ColorPreference{Color: ColorBlack, Strength: StrengthStrong}
	case imbalance == -1:
		return ColorPreference{Color: ColorWhite, Strength: StrengthStrong}
	}

	return ColorPreference{Color: last.Invert(), Strength: StrengthMild}
}

// AbsoluteColorPreference is the due color when it is absolute, ColorNone
// otherwise. Two players with the same absolute preference may not meet.
func (p *Player) AbsoluteColorPreference() Color {
	cp := p.ColorPreference()
	if cp.Strength == StrengthAbsolute {
		return cp.Color
	}
	return ColorNone
}

// ByeCount counts full-point pairing byes already received.
func (p *Player) ByeCount() int {
	n := 0
	for _, m := range p.Matches {
		if m.Result == ResultPairingBye {
			n++
		}
	}

	return n
}

// HasPlayed reports whether a game over the board against opp took place.
func (p *Player) HasPlayed(opp PlayerIndex) bool {
	for _, m := range p.Matches {
		if m.Opponent == opp && m.Result.GameWasPlayed() {
			return true
		}
	}

	return false
}

// IsActive reports whether the player takes part in the next round's pairing.
func (p *Player) IsActive() bool {
	return !p.Withdrawn && !p.RequestedBye
}
