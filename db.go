package cards

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// DB implements CardsAPI's data access layer.
type DB struct {
	url string
}

// NewDB returns a new DB.
func NewDB(url string) *DB {
	return &DB{
		url: url,
	}
}

// TODO: Connection pooling?
func (d *DB) open() (*sql.DB, error) {
	return sql.Open("postgres", d.url)
}

// ApplySchema applies a bunch of SQL statements.
func (d *DB) ApplySchema() error {
	db, err := d.open()
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range schema {
		_, err := db.Exec(stmt)
		if err != nil {
			return err
		}
	}

	return nil
}

// MapDBError translates driver-level constraint violations into domain errors.
func mapDBError(err error, name string) error {
	if pe, ok := err.(*pq.Error); ok {
		switch pe.Code.Name() {
		case "unique_violation":
			return duplicateName("the name %q is already taken", name)
		case "foreign_key_violation":
			return badReference("referenced monster card does not exist")
		case "check_violation", "invalid_text_representation":
			return validation("%v", pe.Message)
		}
	}
	return fmt.Errorf("database error: %v", err)
}

const cardColumns = "id, name, description, primary_type, secondary_type, health, attack, defense, speed"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCard(row rowScanner) (*Card, error) {
	card := Card{}
	desc := sql.NullString{}

	err := row.Scan(&card.ID, &card.Name, &desc, &card.PrimaryType,
		&card.SecondaryType, &card.Health, &card.Attack, &card.Defense, &card.Speed)
	if err != nil {
		return nil, err
	}

	if desc.Valid {
		card.Description = &desc.String
	}
	return &card, nil
}

// InsertCard inserts a new monster card, filling in its assigned id.
func (d *DB) InsertCard(card *Card) error {
	db, err := d.open()
	if err != nil {
		return err
	}
	defer db.Close()

	q := "INSERT INTO monster_cards (name, description, primary_type, secondary_type, health, attack, defense, speed) " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id"

	row := db.QueryRow(q, card.Name, card.Description, card.PrimaryType,
		card.SecondaryType, card.Health, card.Attack, card.Defense, card.Speed)
	if err := row.Scan(&card.ID); err != nil {
		return mapDBError(err, card.Name)
	}

	return nil
}

// GetCard fetches a card by id, returning nil if there is no such card.
func (d *DB) GetCard(id int64) (*Card, error) {
	db, err := d.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	row := db.QueryRow("SELECT "+cardColumns+" FROM monster_cards WHERE id = $1", id)

	card, err := scanCard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return card, err
}

// GetCardByName fetches a card by its exact name, returning nil if absent.
func (d *DB) GetCardByName(name string) (*Card, error) {
	db, err := d.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	row := db.QueryRow("SELECT "+cardColumns+" FROM monster_cards WHERE name = $1", name)

	card, err := scanCard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return card, err
}

// ListCards lists cards ordered by id, applying the query's filters and page.
func (d *DB) ListCards(query *CardQuery) ([]*Card, error) {
	db, err := d.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	where := []string{}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%v", len(args))
	}

	if query.PrimaryType != nil {
		where = append(where, "primary_type = "+arg(*query.PrimaryType))
	}
	if query.SecondaryType != nil {
		where = append(where, "secondary_type = "+arg(*query.SecondaryType))
	}
	if query.NameSearch != "" {
		where = append(where, "name ILIKE "+arg("%"+query.NameSearch+"%"))
	}

	q := "SELECT " + cardColumns + " FROM monster_cards"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id ASC LIMIT " + arg(query.Limit) + " OFFSET " + arg(query.Offset)

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := []*Card{}

	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, card)
	}

	return ret, rows.Err()
}

// UpdateCard applies the non-nil fields of the update to the given card and
// returns the updated row.
func (d *DB) UpdateCard(id int64, update *CardUpdate) (*Card, error) {
	db, err := d.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	sets := []string{}
	args := []interface{}{}
	set := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%v = $%v", col, len(args)))
	}

	if update.Name != nil {
		set("name", *update.Name)
	}
	if update.Description != nil {
		set("description", *update.Description)
	}
	if update.PrimaryType != nil {
		set("primary_type", *update.PrimaryType)
	}
	if update.SecondaryType != nil {
		set("secondary_type", *update.SecondaryType)
	}
	if update.Health != nil {
		set("health", *update.Health)
	}
	if update.Attack != nil {
		set("attack", *update.Attack)
	}
	if update.Defense != nil {
		set("defense", *update.Defense)
	}
	if update.Speed != nil {
		set("speed", *update.Speed)
	}

	if len(sets) == 0 {
		// Nothing to change; behave like a get.
		card, err := d.GetCard(id)
		if err != nil {
			return nil, err
		}
		if card == nil {
			return nil, notFound("card id %v not found", id)
		}
		return card, nil
	}

	args = append(args, id)
	q := "UPDATE monster_cards SET " + strings.Join(sets, ", ") +
		fmt.Sprintf(" WHERE id = $%v RETURNING ", len(args)) + cardColumns

	card, err := scanCard(db.QueryRow(q, args...))
	if err == sql.ErrNoRows {
		return nil, notFound("card id %v not found", id)
	}
	if err != nil {
		name := ""
		if update.Name != nil {
			name = *update.Name
		}
		return nil, mapDBError(err, name)
	}

	return card, nil
}

const playerColumns = "id, name, team, monster_card_id"

func scanPlayer(row rowScanner) (*Player, error) {
	player := Player{}
	cardID := sql.NullInt64{}

	err := row.Scan(&player.ID, &player.Name, &player.Team, &cardID)
	if err != nil {
		return nil, err
	}

	if cardID.Valid {
		player.MonsterCardID = &cardID.Int64
	}
	return &player, nil
}

// GetPlayer fetches a player by id, returning nil if there is no such player.
func (d *DB) GetPlayer(id int64) (*Player, error) {
	db, err := d.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	row := db.QueryRow("SELECT "+playerColumns+" FROM players WHERE id = $1", id)

	player, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return player, err
}

// GetPlayerByName fetches a player by its exact name, returning nil if absent.
func (d *DB) GetPlayerByName(name string) (*Player, error) {
	db, err := d.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	row := db.QueryRow("SELECT "+playerColumns+" FROM players WHERE name = $1", name)

	player, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return player, err
}

// ListPlayers lists players ordered by id, applying the query's filters and page.
func (d *DB) ListPlayers(query *PlayerQuery) ([]*Player, error) {
	db, err := d.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	where := []string{}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%v", len(args))
	}

	if query.Team != nil {
		where = append(where, "team = "+arg(*query.Team))
	}
	if query.NameSearch != "" {
		where = append(where, "name ILIKE "+arg("%"+query.NameSearch+"%"))
	}

	q := "SELECT " + playerColumns + " FROM players"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id ASC LIMIT " + arg(query.Limit) + " OFFSET " + arg(query.Offset)

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := []*Player{}

	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, player)
	}

	return ret, rows.Err()
}

// DeletePlayer hard-deletes a player.
func (d *DB) DeletePlayer(id int64) error {
	db, err := d.open()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.Exec("DELETE FROM players WHERE id = $1", id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("player id %v not found", id)
	}

	return nil
}

// SetEffectiveness upserts one matchup row.
func (d *DB) SetEffectiveness(e *Effectiveness) error {
	db, err := d.open()
	if err != nil {
		return err
	}
	defer db.Close()

	q := "INSERT INTO type_effectiveness (attacker_type, defender_type, effective) VALUES ($1, $2, $3) " +
		"ON CONFLICT (attacker_type, defender_type) DO UPDATE SET effective = $3"

	if _, err := db.Exec(q, e.AttackerType, e.DefenderType, e.Effective); err != nil {
		return mapDBError(err, "")
	}

	return nil
}

// GetEffectiveness fetches one matchup row, returning nil if there is no
// entry for the pair.
func (d *DB) GetEffectiveness(attacker, defender CardType) (*Effectiveness, error) {
	db, err := d.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := "SELECT attacker_type, defender_type, effective FROM type_effectiveness " +
		"WHERE attacker_type = $1 AND defender_type = $2"
	row := db.QueryRow(q, attacker, defender)

	e := Effectiveness{}
	if err := row.Scan(&e.AttackerType, &e.DefenderType, &e.Effective); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &e, nil
}

// ListEffectiveness lists matchup rows, optionally restricted to one attacker.
func (d *DB) ListEffectiveness(attacker *CardType) ([]*Effectiveness, error) {
	db, err := d.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := "SELECT attacker_type, defender_type, effective FROM type_effectiveness"
	args := []interface{}{}
	if attacker != nil {
		q += " WHERE attacker_type = $1"
		args = append(args, *attacker)
	}
	q += " ORDER BY attacker_type, defender_type"

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := []*Effectiveness{}

	for rows.Next() {
		e := Effectiveness{}
		if err := rows.Scan(&e.AttackerType, &e.DefenderType, &e.Effective); err != nil {
			return nil, err
		}
		ret = append(ret, &e)
	}

	return ret, rows.Err()
}

// NewTX begins a new transaction for a multi-step write.
func (d *DB) NewTX() (*TX, error) {
	db, err := d.open()
	if err != nil {
		return nil, err
	}

	dbtx, err := db.Begin()
	if err != nil {
		db.Close()
		return nil, err
	}

	return &TX{
		db: db,
		tx: dbtx,
	}, nil
}
