package cards

// Impl implements CardsAPI's catalog logic.
type Impl struct {
	db       *DB
	renderer *Renderer
}

// NewImpl creates a new Impl.
func NewImpl(db *DB, cfg *Config) *Impl {
	return &Impl{
		db:       db,
		renderer: NewRenderer(cfg),
	}
}

func validateName(name string) error {
	if name == "" {
		return validation("name is required")
	}
	if len(name) > 255 {
		return validation("name must be at most 255 characters")
	}
	return nil
}

func validateStat(field string, v *int) error {
	if v == nil {
		return validation("%v is required", field)
	}
	if *v < 0 {
		return validation("%v must be non-negative", field)
	}
	return nil
}

// CreateCard creates a new monster card. When secondary_type is omitted it is
// filled in from primary_type.
func (i *Impl) CreateCard(in *CardCreate) (*Card, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}
	if in.PrimaryType == "" {
		return nil, validation("primary_type is required")
	}

	for _, stat := range []struct {
		field string
		value *int
	}{
		{"health", in.Health},
		{"attack", in.Attack},
		{"defense", in.Defense},
		{"speed", in.Speed},
	} {
		if err := validateStat(stat.field, stat.value); err != nil {
			return nil, err
		}
	}

	secondary := in.PrimaryType
	if in.SecondaryType != nil {
		secondary = *in.SecondaryType
	}

	card := &Card{
		Name:          in.Name,
		Description:   in.Description,
		PrimaryType:   in.PrimaryType,
		SecondaryType: secondary,
		Health:        *in.Health,
		Attack:        *in.Attack,
		Defense:       *in.Defense,
		Speed:         *in.Speed,
	}

	if err := i.db.InsertCard(card); err != nil {
		return nil, err
	}
	return card, nil
}

// GetCard fetches a card by id.
func (i *Impl) GetCard(id int64) (*Card, error) {
	card, err := i.db.GetCard(id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, notFound("card id %v not found", id)
	}
	return card, nil
}

// GetCardByName fetches a card by its exact name.
func (i *Impl) GetCardByName(name string) (*Card, error) {
	card, err := i.db.GetCardByName(name)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, notFound("card named %q not found", name)
	}
	return card, nil
}

// DefaultPageSize bounds listings when the caller doesn't say.
const defaultPageSize = 20

func clampPage(limit, offset *int) {
	if *limit <= 0 {
		*limit = defaultPageSize
	}
	if *offset < 0 {
		*offset = 0
	}
}

// ListCards lists cards ordered by id ascending.
func (i *Impl) ListCards(query *CardQuery) ([]*Card, error) {
	clampPage(&query.Limit, &query.Offset)
	return i.db.ListCards(query)
}

// UpdateCard partially updates a card. Setting primary_type without a new
// secondary_type re-fills secondary_type from the new primary_type.
func (i *Impl) UpdateCard(id int64, update *CardUpdate) (*Card, error) {
	if update.Name != nil {
		if err := validateName(*update.Name); err != nil {
			return nil, err
		}
	}
	for _, stat := range []struct {
		field string
		value *int
	}{
		{"health", update.Health},
		{"attack", update.Attack},
		{"defense", update.Defense},
		{"speed", update.Speed},
	} {
		if stat.value != nil && *stat.value < 0 {
			return nil, validation("%v must be non-negative", stat.field)
		}
	}

	if update.PrimaryType != nil && update.SecondaryType == nil {
		update.SecondaryType = update.PrimaryType
	}

	return i.db.UpdateCard(id, update)
}

// DeleteCard hard-deletes a card. Players referencing it keep existing with
// their card reference cleared; both steps happen in one transaction.
func (i *Impl) DeleteCard(id int64) error {
	tx, err := i.db.NewTX()
	if err != nil {
		return err
	}
	defer tx.Close()

	if err := tx.ClearCardRefs(id); err != nil {
		return err
	}

	deleted, err := tx.DeleteCard(id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("card id %v not found", id)
	}

	return tx.Commit()
}

// CreatePlayer creates a new player. The card reference, when present, is
// checked in the same transaction as the insert.
func (i *Impl) CreatePlayer(in *PlayerCreate) (*Player, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}

	player := &Player{
		Name:          in.Name,
		Team:          ParseTeamType(string(in.Team)),
		MonsterCardID: in.MonsterCardID,
	}

	tx, err := i.db.NewTX()
	if err != nil {
		return nil, err
	}
	defer tx.Close()

	if in.MonsterCardID != nil {
		exists, err := tx.CardExists(*in.MonsterCardID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, badReference("monster_card_id %v does not exist", *in.MonsterCardID)
		}
	}

	if err := tx.InsertPlayer(player); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return player, nil
}

// GetPlayer fetches a player by id.
func (i *Impl) GetPlayer(id int64) (*Player, error) {
	player, err := i.db.GetPlayer(id)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, notFound("player id %v not found", id)
	}
	return player, nil
}

// GetPlayerByName fetches a player by its exact name.
func (i *Impl) GetPlayerByName(name string) (*Player, error) {
	player, err := i.db.GetPlayerByName(name)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, notFound("player named %q not found", name)
	}
	return player, nil
}

// ListPlayers lists players ordered by id ascending.
func (i *Impl) ListPlayers(query *PlayerQuery) ([]*Player, error) {
	clampPage(&query.Limit, &query.Offset)
	return i.db.ListPlayers(query)
}

// UpdatePlayer partially updates a player, re-validating a newly supplied
// card reference.
func (i *Impl) UpdatePlayer(id int64, update *PlayerUpdate) (*Player, error) {
	if update.Name != nil {
		if err := validateName(*update.Name); err != nil {
			return nil, err
		}
	}

	tx, err := i.db.NewTX()
	if err != nil {
		return nil, err
	}
	defer tx.Close()

	if update.MonsterCardID != nil {
		exists, err := tx.CardExists(*update.MonsterCardID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, badReference("monster_card_id %v does not exist", *update.MonsterCardID)
		}
	}

	player, err := tx.UpdatePlayer(id, update)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return player, nil
}

// DeletePlayer hard-deletes a player.
func (i *Impl) DeletePlayer(id int64) error {
	return i.db.DeletePlayer(id)
}

// SetEffectiveness upserts one matchup entry.
func (i *Impl) SetEffectiveness(e *Effectiveness) error {
	if _, err := ParseCardType(string(e.AttackerType)); err != nil {
		return err
	}
	if _, err := ParseCardType(string(e.DefenderType)); err != nil {
		return err
	}
	return i.db.SetEffectiveness(e)
}

// GetEffectiveness fetches one matchup entry. A pair with no entry is
// NotFound; there is no default row.
func (i *Impl) GetEffectiveness(attacker, defender CardType) (*Effectiveness, error) {
	e, err := i.db.GetEffectiveness(attacker, defender)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, notFound("no matchup entry for %v vs %v", attacker, defender)
	}
	return e, nil
}

// ListEffectiveness lists matchup entries, optionally for one attacker.
func (i *Impl) ListEffectiveness(attacker *CardType) ([]*Effectiveness, error) {
	return i.db.ListEffectiveness(attacker)
}

// SeedEffectiveness loads the default matchup chart.
func (i *Impl) SeedEffectiveness() error {
	for _, e := range defaultEffectiveness {
		if err := i.db.SetEffectiveness(e); err != nil {
			return err
		}
	}
	return nil
}

// DisplayCard renders a card as HTML using the given display variant's
// template.
func (i *Impl) DisplayCard(id int64, variant DisplayVariant) (string, error) {
	card, err := i.GetCard(id)
	if err != nil {
		return "", err
	}
	return i.renderer.Render(card, variant)
}
