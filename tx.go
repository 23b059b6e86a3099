package cards

import (
	"database/sql"
	"fmt"
	"strings"
)

// TX is a single DB transaction, used for writes that have to check or touch
// more than one row atomically.
type TX struct {
	db        *sql.DB
	tx        *sql.Tx
	committed bool
}

// CardExists returns true if a monster card with the given id exists.
func (t *TX) CardExists(id int64) (bool, error) {
	row := t.tx.QueryRow("SELECT 1 FROM monster_cards WHERE id = $1", id)

	var ignored int
	err := row.Scan(&ignored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertPlayer inserts a new player record, filling in its assigned id.
func (t *TX) InsertPlayer(player *Player) error {
	q := "INSERT INTO players (name, team, monster_card_id) VALUES ($1, $2, $3) RETURNING id"

	row := t.tx.QueryRow(q, player.Name, player.Team, player.MonsterCardID)
	if err := row.Scan(&player.ID); err != nil {
		return mapDBError(err, player.Name)
	}

	return nil
}

// UpdatePlayer applies the non-nil fields of the update and returns the
// updated row.
func (t *TX) UpdatePlayer(id int64, update *PlayerUpdate) (*Player, error) {
	sets := []string{}
	args := []interface{}{}
	set := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%v = $%v", col, len(args)))
	}

	if update.Name != nil {
		set("name", *update.Name)
	}
	if update.Team != nil {
		set("team", *update.Team)
	}
	if update.MonsterCardID != nil {
		set("monster_card_id", *update.MonsterCardID)
	}

	var row *sql.Row
	if len(sets) == 0 {
		row = t.tx.QueryRow("SELECT "+playerColumns+" FROM players WHERE id = $1", id)
	} else {
		args = append(args, id)
		q := "UPDATE players SET " + strings.Join(sets, ", ") +
			fmt.Sprintf(" WHERE id = $%v RETURNING ", len(args)) + playerColumns
		row = t.tx.QueryRow(q, args...)
	}

	player, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return nil, notFound("player id %v not found", id)
	}
	if err != nil {
		name := ""
		if update.Name != nil {
			name = *update.Name
		}
		return nil, mapDBError(err, name)
	}

	return player, nil
}

// ClearCardRefs nulls out any player references to the given card.
func (t *TX) ClearCardRefs(cardID int64) error {
	q := "UPDATE players SET monster_card_id = NULL WHERE monster_card_id = $1"
	_, err := t.tx.Exec(q, cardID)
	return err
}

// DeleteCard hard-deletes a card, returning false if it did not exist.
func (t *TX) DeleteCard(cardID int64) (bool, error) {
	res, err := t.tx.Exec("DELETE FROM monster_cards WHERE id = $1", cardID)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Commit commits the current transaction.
func (t *TX) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return err
	}
	t.committed = true
	return nil
}

// Close closes the current transaction, rolling back if not committed.
func (t *TX) Close() {
	if !t.committed {
		t.tx.Rollback()
	}
	t.db.Close()
}
