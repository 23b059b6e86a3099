package cards

import (
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func intp(v int) *int          { return &v }
func strp(v string) *string    { return &v }
func ctp(v CardType) *CardType { return &v }
func ttp(v TeamType) *TeamType { return &v }

func newCardCreate(name string, primary CardType) *CardCreate {
	return &CardCreate{
		Name:        name,
		PrimaryType: primary,
		Health:      intp(50),
		Attack:      intp(30),
		Defense:     intp(20),
		Speed:       intp(40),
	}
}

func TestCreateCardValidation(t *testing.T) {
	// Validation fails before the database is ever touched.
	impl := NewImpl(NewDB(""), &Config{})

	cases := map[string]*CardCreate{
		"missing name": {
			PrimaryType: fire,
			Health:      intp(1), Attack: intp(1), Defense: intp(1), Speed: intp(1),
		},
		"overlong name": newCardCreate(strings.Repeat("x", 256), fire),
		"missing primary type": {
			Name:   "Embergeist",
			Health: intp(1), Attack: intp(1), Defense: intp(1), Speed: intp(1),
		},
		"missing health": {
			Name:        "Embergeist",
			PrimaryType: fire,
			Attack:      intp(1), Defense: intp(1), Speed: intp(1),
		},
		"negative attack": {
			Name:        "Embergeist",
			PrimaryType: fire,
			Health:      intp(1), Attack: intp(-1), Defense: intp(1), Speed: intp(1),
		},
	}

	for label, in := range cases {
		_, err := impl.CreateCard(in)
		if err == nil {
			t.Errorf("%v: expected error", label)
			continue
		}
		e, ok := err.(*Error)
		if !ok || e.Code != "ValidationError" {
			t.Errorf("%v: expected ValidationError, got %v", label, err)
		}
	}
}

// SetupImpl brings up an Impl against a throwaway Postgres database, skipping
// the test when no database is reachable.
func setupImpl(t *testing.T) *Impl {
	url := os.Getenv("DATABASE_URL")
	created := false

	if url == "" {
		exec.Command("dropdb", "cards-test").Run()
		if err := exec.Command("createdb", "cards-test").Run(); err != nil {
			t.Skipf("postgres unavailable: %v", err)
		}
		created = true
		url = "postgres://localhost/cards-test?sslmode=disable"
	}

	db := NewDB(url)
	if err := db.ApplySchema(); err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}

	t.Cleanup(func() {
		if created {
			exec.Command("dropdb", "cards-test").Run()
		}
	})

	dir, err := ioutil.TempDir("", "cards-impl-test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	cfg := &Config{AssetsDir: dir}
	if err := os.MkdirAll(cfg.TemplatesDir(), 0755); err != nil {
		t.Fatal(err)
	}
	template := "<html><h2>${name}</h2><img src=\"${image_url}\">" +
		"<img src=\"${primary_type_icon}\"><img src=\"${secondary_type_icon}\">" +
		"hp=${health} atk=${attack}</html>"
	file := filepath.Join(cfg.TemplatesDir(), "normal.html")
	if err := ioutil.WriteFile(file, []byte(template), 0644); err != nil {
		t.Fatal(err)
	}

	return NewImpl(db, cfg)
}

func TestImpl(t *testing.T) {
	impl := setupImpl(t)

	var embergeistID int64

	t.Run("SecondaryTypeAutoFill", func(t *testing.T) {
		card, err := impl.CreateCard(newCardCreate("Embergeist", fire))
		if err != nil {
			t.Fatal(err)
		}
		if card.ID == 0 {
			t.Error("expected an assigned id")
		}
		if card.SecondaryType != fire {
			t.Errorf("expected secondary_type fire, got %v", card.SecondaryType)
		}
		embergeistID = card.ID
	})

	t.Run("ExplicitSecondaryType", func(t *testing.T) {
		in := newCardCreate("Mirefang", poison)
		in.SecondaryType = ctp(water)

		card, err := impl.CreateCard(in)
		if err != nil {
			t.Fatal(err)
		}
		if card.SecondaryType != water {
			t.Errorf("expected secondary_type water, got %v", card.SecondaryType)
		}
	})

	t.Run("DuplicateName", func(t *testing.T) {
		_, err := impl.CreateCard(newCardCreate("Embergeist", water))
		if err == nil {
			t.Fatal("expected error for duplicate name")
		}
		e, ok := err.(*Error)
		if !ok || e.Code != "DuplicateName" {
			t.Errorf("expected DuplicateName, got %v", err)
		}

		// The first insertion is retained.
		card, err := impl.GetCardByName("Embergeist")
		if err != nil {
			t.Fatal(err)
		}
		if card.ID != embergeistID || card.PrimaryType != fire {
			t.Errorf("original card was disturbed: %+v", card)
		}
	})

	t.Run("UpdateAutoFill", func(t *testing.T) {
		card, err := impl.GetCardByName("Mirefang")
		if err != nil {
			t.Fatal(err)
		}

		// Patching primary_type alone re-fills secondary_type.
		updated, err := impl.UpdateCard(card.ID, &CardUpdate{PrimaryType: ctp(earth)})
		if err != nil {
			t.Fatal(err)
		}
		if updated.SecondaryType != earth {
			t.Errorf("expected secondary_type earth, got %v", updated.SecondaryType)
		}

		// Patching both keeps the explicit secondary.
		updated, err = impl.UpdateCard(card.ID, &CardUpdate{
			PrimaryType:   ctp(poison),
			SecondaryType: ctp(water),
		})
		if err != nil {
			t.Fatal(err)
		}
		if updated.PrimaryType != poison || updated.SecondaryType != water {
			t.Errorf("unexpected types: %v/%v", updated.PrimaryType, updated.SecondaryType)
		}

		// Patching an unrelated field leaves types alone.
		updated, err = impl.UpdateCard(card.ID, &CardUpdate{Health: intp(64)})
		if err != nil {
			t.Fatal(err)
		}
		if updated.Health != 64 || updated.SecondaryType != water {
			t.Errorf("unexpected update result: %+v", updated)
		}
	})

	t.Run("UpdateMissingCard", func(t *testing.T) {
		_, err := impl.UpdateCard(999999, &CardUpdate{Name: strp("Ghost")})
		if e, ok := err.(*Error); !ok || e.Code != "NotFound" {
			t.Errorf("expected NotFound, got %v", err)
		}
	})

	t.Run("UpdateDuplicateName", func(t *testing.T) {
		card, err := impl.GetCardByName("Mirefang")
		if err != nil {
			t.Fatal(err)
		}

		_, err = impl.UpdateCard(card.ID, &CardUpdate{Name: strp("Embergeist")})
		if e, ok := err.(*Error); !ok || e.Code != "DuplicateName" {
			t.Errorf("expected DuplicateName, got %v", err)
		}
	})

	t.Run("ListNameSearch", func(t *testing.T) {
		for _, name := range []string{"Firefly", "Bonfire", "Water Sprite"} {
			if _, err := impl.CreateCard(newCardCreate(name, fire)); err != nil {
				t.Fatal(err)
			}
		}

		listed, err := impl.ListCards(&CardQuery{NameSearch: "fir"})
		if err != nil {
			t.Fatal(err)
		}

		names := []string{}
		for _, c := range listed {
			names = append(names, c.Name)
		}

		assertContains(t, names, "Firefly")
		assertContains(t, names, "Bonfire")
		for _, name := range names {
			if name == "Water Sprite" {
				t.Errorf("Water Sprite should not match %q", "fir")
			}
		}
	})

	t.Run("ListOrderAndPaging", func(t *testing.T) {
		all, err := impl.ListCards(&CardQuery{Limit: 100})
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(all); i++ {
			if all[i-1].ID >= all[i].ID {
				t.Fatalf("ids out of order: %v then %v", all[i-1].ID, all[i].ID)
			}
		}

		page, err := impl.ListCards(&CardQuery{Limit: 2, Offset: 1})
		if err != nil {
			t.Fatal(err)
		}
		if len(page) != 2 {
			t.Fatalf("expected 2 cards, got %v", len(page))
		}
		if page[0].ID != all[1].ID || page[1].ID != all[2].ID {
			t.Errorf("bad page: %v,%v", page[0].ID, page[1].ID)
		}
	})

	t.Run("ListTypeFilter", func(t *testing.T) {
		primary := fire
		listed, err := impl.ListCards(&CardQuery{PrimaryType: &primary})
		if err != nil {
			t.Fatal(err)
		}
		if len(listed) == 0 {
			t.Fatal("expected some fire cards")
		}
		for _, c := range listed {
			if c.PrimaryType != fire {
				t.Errorf("card %v is not fire: %v", c.Name, c.PrimaryType)
			}
		}
	})

	t.Run("DeleteMissingCard", func(t *testing.T) {
		before, err := impl.ListCards(&CardQuery{Limit: 100})
		if err != nil {
			t.Fatal(err)
		}

		err = impl.DeleteCard(999999)
		if e, ok := err.(*Error); !ok || e.Code != "NotFound" {
			t.Errorf("expected NotFound, got %v", err)
		}

		after, err := impl.ListCards(&CardQuery{Limit: 100})
		if err != nil {
			t.Fatal(err)
		}
		if len(after) != len(before) {
			t.Errorf("delete of missing id changed the table: %v -> %v", len(before), len(after))
		}
	})

	t.Run("PlayerBadReference", func(t *testing.T) {
		missing := int64(999999)
		_, err := impl.CreatePlayer(&PlayerCreate{
			Name:          "Ada",
			MonsterCardID: &missing,
		})
		if e, ok := err.(*Error); !ok || e.Code != "ReferenceError" {
			t.Errorf("expected ReferenceError, got %v", err)
		}

		// No partial row was committed.
		_, err = impl.GetPlayerByName("Ada")
		if e, ok := err.(*Error); !ok || e.Code != "NotFound" {
			t.Errorf("expected NotFound, got %v", err)
		}
	})

	t.Run("PlayerLifecycle", func(t *testing.T) {
		player, err := impl.CreatePlayer(&PlayerCreate{
			Name:          "Ada",
			Team:          TeamType("gryphon"), // coerces to neutral
			MonsterCardID: &embergeistID,
		})
		if err != nil {
			t.Fatal(err)
		}
		if player.Team != neutral {
			t.Errorf("expected neutral team, got %v", player.Team)
		}
		if player.MonsterCardID == nil || *player.MonsterCardID != embergeistID {
			t.Errorf("bad card reference: %v", player.MonsterCardID)
		}

		byName, err := impl.GetPlayerByName("Ada")
		if err != nil {
			t.Fatal(err)
		}
		if byName.ID != player.ID {
			t.Errorf("expected id %v, got %v", player.ID, byName.ID)
		}

		updated, err := impl.UpdatePlayer(player.ID, &PlayerUpdate{Team: ttp(owl)})
		if err != nil {
			t.Fatal(err)
		}
		if updated.Team != owl {
			t.Errorf("expected owl, got %v", updated.Team)
		}

		team := owl
		listed, err := impl.ListPlayers(&PlayerQuery{Team: &team})
		if err != nil {
			t.Fatal(err)
		}
		if len(listed) != 1 || listed[0].ID != player.ID {
			t.Errorf("bad team listing: %+v", listed)
		}

		if err := impl.DeletePlayer(player.ID); err != nil {
			t.Fatal(err)
		}
		err = impl.DeletePlayer(player.ID)
		if e, ok := err.(*Error); !ok || e.Code != "NotFound" {
			t.Errorf("expected NotFound, got %v", err)
		}
	})

	t.Run("CardDeleteClearsPlayerRefs", func(t *testing.T) {
		card, err := impl.CreateCard(newCardCreate("Gravemaw", dark))
		if err != nil {
			t.Fatal(err)
		}

		player, err := impl.CreatePlayer(&PlayerCreate{
			Name:          "Brin",
			Team:          bull,
			MonsterCardID: &card.ID,
		})
		if err != nil {
			t.Fatal(err)
		}

		if err := impl.DeleteCard(card.ID); err != nil {
			t.Fatal(err)
		}

		// The player outlives the card with its reference cleared.
		got, err := impl.GetPlayer(player.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.MonsterCardID != nil {
			t.Errorf("expected cleared card reference, got %v", *got.MonsterCardID)
		}
	})

	t.Run("Effectiveness", func(t *testing.T) {
		if err := impl.SeedEffectiveness(); err != nil {
			t.Fatal(err)
		}

		e, err := impl.GetEffectiveness(fire, plant)
		if err != nil {
			t.Fatal(err)
		}
		if !e.Effective {
			t.Error("fire should be effective against plant")
		}

		// Upsert flips an existing row.
		if err := impl.SetEffectiveness(&Effectiveness{fire, plant, false}); err != nil {
			t.Fatal(err)
		}
		e, err = impl.GetEffectiveness(fire, plant)
		if err != nil {
			t.Fatal(err)
		}
		if e.Effective {
			t.Error("expected flipped matchup")
		}

		// A pair with no entry is NotFound, not false.
		_, err = impl.GetEffectiveness(magic, magic)
		if e, ok := err.(*Error); !ok || e.Code != "NotFound" {
			t.Errorf("expected NotFound, got %v", err)
		}

		attacker := fire
		listed, err := impl.ListEffectiveness(&attacker)
		if err != nil {
			t.Fatal(err)
		}
		for _, m := range listed {
			if m.AttackerType != fire {
				t.Errorf("unexpected attacker %v", m.AttackerType)
			}
		}
	})

	t.Run("Display", func(t *testing.T) {
		html, err := impl.DisplayCard(embergeistID, normal)
		if err != nil {
			t.Fatal(err)
		}

		for _, expected := range []string{
			"<h2>Embergeist</h2>",
			"/assets/monster_cards/monster_card_images/Embergeist.png",
			"/assets/monster_cards/types_icons/fire_icon.png",
			"hp=50 atk=30",
		} {
			if !strings.Contains(html, expected) {
				t.Errorf("rendered html missing %q:\n%v", expected, html)
			}
		}

		_, err = impl.DisplayCard(999999, normal)
		if e, ok := err.(*Error); !ok || e.Code != "NotFound" {
			t.Errorf("expected NotFound, got %v", err)
		}
	})
}

func assertContains(t *testing.T, haystack []string, needle string) {
	for _, s := range haystack {
		if s == needle {
			return
		}
	}
	t.Errorf("expected %v to contain %q", haystack, needle)
}
