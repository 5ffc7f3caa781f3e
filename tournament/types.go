/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// PlayerIndex is the dense, stable handle of a player within a Tournament. It
// is always the player's position in Tournament.Players.
type PlayerIndex int

// NoPlayer marks the absence of an opponent (byes).
const NoPlayer PlayerIndex = -1

// PairingNumber is the 1-based number shown to humans.
func (i PlayerIndex) PairingNumber() int {
	return int(i) + 1
}

type Color int8

const (
	// ColorNone means no preference has been established and is compatible
	// with either concrete color.
	ColorNone Color = iota
	ColorWhite
	ColorBlack
)

func (c Color) Invert() Color {
	switch c {
	case ColorWhite:
		return ColorBlack
	case ColorBlack:
		return ColorWhite
	default:
		return ColorNone
	}
}

func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorBlack:
		return "black"
	default:
		return "none"
	}
}

// Letter returns the single letter used in crosstables and checklists.
func (c Color) Letter() string {
	switch c {
	case ColorWhite:
		return "w"
	case ColorBlack:
		return "b"
	default:
		return "-"
	}
}

func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "white":
		return ColorWhite, nil
	case "b", "black":
		return ColorBlack, nil
	case "", "-", "none":
		return ColorNone, nil
	}

	return ColorNone, fmt.Errorf("unknown color %q", s)
}

func (c Color) MarshalJSON() ([]byte, error) {
	switch c {
	case ColorWhite:
		return []byte(`"w"`), nil
	case ColorBlack:
		return []byte(`"b"`), nil
	default:
		return []byte(`""`), nil
	}
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("color must be a string: %w", err)
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}

// Points counts score in tenths of a point so half points stay integral.
type Points int

const PointsPerUnit Points = 10

// PointsFromFloat converts 1.5 into 15.
func PointsFromFloat(f float64) Points {
	return Points(math.Round(f * float64(PointsPerUnit)))
}

func (p Points) Float() float64 {
	return float64(p) / float64(PointsPerUnit)
}

func (p Points) String() string {
	sign := ""
	if p < 0 {
		sign = "-"
		p = -p
	}
	return fmt.Sprintf("%s%d.%d", sign, p/PointsPerUnit, p%PointsPerUnit)
}

// Result is the outcome of one round for one player.
type Result int

const (
	ResultWin Result = iota
	ResultDraw
	ResultLoss
	ResultForfeitWin
	ResultForfeitLoss
	// ResultPairingBye is the full point given to the odd player out.
	ResultPairingBye
	ResultHalfBye
	ResultZeroBye
)

var resultCodes = map[Result]string{
	ResultWin:         "1",
	ResultDraw:        "=",
	ResultLoss:        "0",
	ResultForfeitWin:  "+",
	ResultForfeitLoss: "-",
	ResultPairingBye:  "U",
	ResultHalfBye:     "H",
	ResultZeroBye:     "Z",
}

// Code returns the TRF-style single character result code.
func (r Result) Code() string {
	if c, ok := resultCodes[r]; ok {
		return c
	}
	return "?"
}

func ParseResult(code string) (Result, error) {
	for r, c := range resultCodes {
		if c == code {
			return r, nil
		}
	}
	return ResultZeroBye, fmt.Errorf("unknown result code %q", code)
}

func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Code())
}

func (r *Result) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("result must be a string: %w", err)
	}
	parsed, err := ParseResult(s)
	if err != nil {
		return err
	}
	*r = parsed

	return nil
}

// GameWasPlayed reports whether the result came from a game over the board.
// Only played games count toward color history and repeat-pairing checks.
func (r Result) GameWasPlayed() bool {
	return r == ResultWin || r == ResultDraw || r == ResultLoss
}

// IsBye reports whether the round had no opponent at all.
func (r Result) IsBye() bool {
	return r == ResultPairingBye || r == ResultHalfBye || r == ResultZeroBye
}

// Opposite returns the result the opponent recorded.
func (r Result) Opposite() Result {
	switch r {
	case ResultWin:
		return ResultLoss
	case ResultLoss:
		return ResultWin
	case ResultForfeitWin:
		return ResultForfeitLoss
	case ResultForfeitLoss:
		return ResultForfeitWin
	default:
		return r
	}
}

// Match is one round of one player's history.
type Match struct {
	Opponent PlayerIndex `json:"opponent"`
	Color    Color       `json:"color"`
	Result   Result      `json:"result"`
}

// PointSystem maps results to points.
type PointSystem struct {
	Win         Points `json:"win"`
	Draw        Points `json:"draw"`
	Loss        Points `json:"loss"`
	ForfeitWin  Points `json:"forfeitWin"`
	ForfeitLoss Points `json:"forfeitLoss"`
	PairingBye  Points `json:"pairingBye"`
	HalfBye     Points `json:"halfBye"`
	ZeroBye     Points `json:"zeroBye"`
}

func DefaultPointSystem() PointSystem {
	return PointSystem{
		Win:         10,
		Draw:        5,
		Loss:        0,
		ForfeitWin:  10,
		ForfeitLoss: 0,
		PairingBye:  10,
		HalfBye:     5,
		ZeroBye:     0,
	}
}

func (ps PointSystem) PointsFor(r Result) Points {
	switch r {
	case ResultWin:
		return ps.Win
	case ResultDraw:
		return ps.Draw
	case ResultLoss:
		return ps.Loss
	case ResultForfeitWin:
		return ps.ForfeitWin
	case ResultForfeitLoss:
		return ps.ForfeitLoss
	case ResultPairingBye:
		return ps.PairingBye
	case ResultHalfBye:
		return ps.HalfBye
	default:
		return ps.ZeroBye
	}
}

// IsStandard reports whether the point system is the classic 1/½/0 one.
func (ps PointSystem) IsStandard() bool {
	return ps == DefaultPointSystem()
}
