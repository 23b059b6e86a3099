package cards

import (
	"encoding/json"
	"fmt"
)

// CardType is one of the thirteen elemental card types. The set is closed:
// anything else is rejected at the boundary.
type CardType string

const (
	arms      CardType = "arms"
	dark      CardType = "dark"
	earth     CardType = "earth"
	fire      CardType = "fire"
	frost     CardType = "frost"
	light     CardType = "light"
	lightning CardType = "lightning"
	magic     CardType = "magic"
	ore       CardType = "ore"
	poison    CardType = "poison"
	water     CardType = "water"
	wind      CardType = "wind"
	plant     CardType = "plant"
)

// CardTypes lists every valid card type.
var CardTypes = []CardType{
	arms, dark, earth, fire, frost, light, lightning,
	magic, ore, poison, water, wind, plant,
}

// ParseCardType parses a card type, rejecting anything outside the closed set.
func ParseCardType(s string) (CardType, error) {
	for _, t := range CardTypes {
		if CardType(s) == t {
			return t, nil
		}
	}
	return "", validation("invalid card type: %q", s)
}

// UnmarshalJSON decodes a card type strictly.
func (t *CardType) UnmarshalJSON(bs []byte) error {
	var s string
	if err := json.Unmarshal(bs, &s); err != nil {
		return validation("card type must be a string: %v", err)
	}

	parsed, err := ParseCardType(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// TeamType is one of the three teams, or neutral. Unlike CardType, an
// unrecognized or absent team coerces to neutral rather than failing.
type TeamType string

const (
	bull      TeamType = "bull"
	owl       TeamType = "owl"
	swordfish TeamType = "swordfish"
	neutral   TeamType = "neutral"
)

// TeamTypes lists every team, neutral included.
var TeamTypes = []TeamType{bull, owl, swordfish, neutral}

// ParseTeamType parses a team, mapping anything unrecognized to neutral.
func ParseTeamType(s string) TeamType {
	for _, t := range TeamTypes {
		if TeamType(s) == t {
			return t
		}
	}
	return neutral
}

// UnmarshalJSON decodes a team, coercing invalid and null values to neutral.
func (t *TeamType) UnmarshalJSON(bs []byte) error {
	var s string
	if err := json.Unmarshal(bs, &s); err != nil {
		*t = neutral
		return nil
	}

	*t = ParseTeamType(s)
	return nil
}

// DisplayVariant identifies one of the fixed card display templates.
type DisplayVariant string

const (
	normal    DisplayVariant = "normal"
	sunlight  DisplayVariant = "sunlight"
	moonlight DisplayVariant = "moonlight"
	twilight  DisplayVariant = "twilight"
)

// DisplayVariants lists every display variant.
var DisplayVariants = []DisplayVariant{normal, sunlight, moonlight, twilight}

// ParseDisplayVariant parses a display variant name.
func ParseDisplayVariant(s string) (DisplayVariant, error) {
	for _, v := range DisplayVariants {
		if DisplayVariant(s) == v {
			return v, nil
		}
	}
	return "", fmt.Errorf("no such display variant: %q", s)
}
