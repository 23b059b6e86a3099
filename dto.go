package cards

// Card describes a monster card.
type Card struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   *string  `json:"description,omitempty"`
	PrimaryType   CardType `json:"primary_type"`
	SecondaryType CardType `json:"secondary_type"`
	Health        int      `json:"health"`
	Attack        int      `json:"attack"`
	Defense       int      `json:"defense"`
	Speed         int      `json:"speed"`
}

// CardList lists monster cards.
type CardList struct {
	Cards []*Card `json:"cards"`
}

// CardCreate is a request to create a monster card. The stats are pointers so
// that an absent field can be told apart from an explicit zero.
type CardCreate struct {
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	PrimaryType   CardType  `json:"primary_type"`
	SecondaryType *CardType `json:"secondary_type"`
	Health        *int      `json:"health"`
	Attack        *int      `json:"attack"`
	Defense       *int      `json:"defense"`
	Speed         *int      `json:"speed"`
}

// CardUpdate is a partial update to a monster card; nil fields are left
// untouched. Unrecognized keys in the request body are silently dropped by
// the JSON decoder.
type CardUpdate struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	PrimaryType   *CardType `json:"primary_type"`
	SecondaryType *CardType `json:"secondary_type"`
	Health        *int      `json:"health"`
	Attack        *int      `json:"attack"`
	Defense       *int      `json:"defense"`
	Speed         *int      `json:"speed"`
}

// CardQuery filters and pages a card listing. Filters are AND-combined.
type CardQuery struct {
	Limit         int
	Offset        int
	PrimaryType   *CardType
	SecondaryType *CardType
	NameSearch    string
}

// Player describes a team member, optionally linked to a monster card.
type Player struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Team          TeamType `json:"team"`
	MonsterCardID *int64   `json:"monster_card_id,omitempty"`
}

// PlayerList lists players.
type PlayerList struct {
	Players []*Player `json:"players"`
}

// PlayerCreate is a request to create a player. An absent or unrecognized
// team becomes neutral.
type PlayerCreate struct {
	Name          string   `json:"name"`
	Team          TeamType `json:"team"`
	MonsterCardID *int64   `json:"monster_card_id"`
}

// PlayerUpdate is a partial update to a player; nil fields are left untouched.
type PlayerUpdate struct {
	Name          *string   `json:"name"`
	Team          *TeamType `json:"team"`
	MonsterCardID *int64    `json:"monster_card_id"`
}

// PlayerQuery filters and pages a player listing.
type PlayerQuery struct {
	Limit      int
	Offset     int
	Team       *TeamType
	NameSearch string
}

// Effectiveness is one attacker/defender matchup entry.
type Effectiveness struct {
	AttackerType CardType `json:"attacker_type"`
	DefenderType CardType `json:"defender_type"`
	Effective    bool     `json:"effective"`
}

// EffectivenessList lists matchup entries.
type EffectivenessList struct {
	Matchups []*Effectiveness `json:"matchups"`
}
