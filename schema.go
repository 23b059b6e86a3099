package cards

var schema = []string{
	// Enumeration of elemental card types.
	"CREATE TYPE card_type AS ENUM (" +
		"'arms', 'dark', 'earth', 'fire', 'frost', 'light', 'lightning', " +
		"'magic', 'ore', 'poison', 'water', 'wind', 'plant'" +
		")",
	// Enumeration of player teams.
	"CREATE TYPE team_type AS ENUM (" +
		"'bull', 'owl', 'swordfish', 'neutral'" +
		")",

	// The monster cards table. Names are unique; secondary_type is always
	// filled in (from primary_type when not given), so it is NOT NULL here.
	"CREATE TABLE monster_cards (" +
		"id bigserial PRIMARY KEY, " +
		"name varchar(255) NOT NULL UNIQUE, " +
		"description text, " +
		"primary_type card_type NOT NULL, " +
		"secondary_type card_type NOT NULL, " +
		"health integer NOT NULL CHECK (health >= 0), " +
		"attack integer NOT NULL CHECK (attack >= 0), " +
		"defense integer NOT NULL CHECK (defense >= 0), " +
		"speed integer NOT NULL CHECK (speed >= 0)" +
		")",
	"CREATE INDEX ix_monster_cards_types ON monster_cards (primary_type, secondary_type)",

	// The players table. Deleting a card nulls out any references to it.
	"CREATE TABLE players (" +
		"id bigserial PRIMARY KEY, " +
		"name varchar(255) NOT NULL UNIQUE, " +
		"team team_type NOT NULL DEFAULT 'neutral', " +
		"monster_card_id bigint REFERENCES monster_cards ON DELETE SET NULL" +
		")",

	// The type matchup chart; one row per (attacker, defender) pair.
	"CREATE TABLE type_effectiveness (" +
		"attacker_type card_type, " +
		"defender_type card_type, " +
		"effective boolean NOT NULL, " +
		"PRIMARY KEY (attacker_type, defender_type)" +
		")",
}
