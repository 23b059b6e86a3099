package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	cards "github.com/Omersr/CardsAPI"
)

type args struct {
	url  string
	args []string
}

var cmds = map[string]func(*args){
	"cards": func(a *args) {
		list := cards.CardList{}
		if err := get(a.url+"/monster-cards?"+query(a.args), &list); err != nil {
			panic(err)
		}

		for _, c := range list.Cards {
			fmt.Printf("%v\t%v\t%v/%v\thp:%v atk:%v def:%v spd:%v\n",
				c.ID, c.Name, c.PrimaryType, c.SecondaryType,
				c.Health, c.Attack, c.Defense, c.Speed)
		}
	},

	"card": func(a *args) {
		if len(a.args) < 1 {
			fmt.Println("usage: cardsapi-cli card <id>")
			return
		}

		card := cards.Card{}
		if err := get(a.url+"/monster-cards/"+a.args[0], &card); err != nil {
			panic(err)
		}
		printCard(&card)
	},

	"card-by-name": func(a *args) {
		if len(a.args) < 1 {
			fmt.Println("usage: cardsapi-cli card-by-name <name>")
			return
		}

		card := cards.Card{}
		if err := get(a.url+"/monster-cards/by-name/"+url.PathEscape(a.args[0]), &card); err != nil {
			panic(err)
		}
		printCard(&card)
	},

	"newcard": func(a *args) {
		if len(a.args) < 1 {
			fmt.Println("usage: cardsapi-cli newcard <json>")
			return
		}

		in := cards.CardCreate{}
		if err := json.Unmarshal([]byte(a.args[0]), &in); err != nil {
			panic(err)
		}

		card := cards.Card{}
		if err := post(a.url+"/monster-cards", in, &card); err != nil {
			panic(err)
		}
		printCard(&card)
	},

	"patchcard": func(a *args) {
		if len(a.args) < 2 {
			fmt.Println("usage: cardsapi-cli patchcard <id> <json>")
			return
		}

		update := cards.CardUpdate{}
		if err := json.Unmarshal([]byte(a.args[1]), &update); err != nil {
			panic(err)
		}

		card := cards.Card{}
		if err := patch(a.url+"/monster-cards/"+a.args[0], update, &card); err != nil {
			panic(err)
		}
		printCard(&card)
	},

	"delcard": func(a *args) {
		if len(a.args) < 1 {
			fmt.Println("usage: cardsapi-cli delcard <id>")
			return
		}

		if err := del(a.url + "/monster-cards/" + a.args[0]); err != nil {
			panic(err)
		}
	},

	"display": func(a *args) {
		if len(a.args) < 2 {
			fmt.Println("usage: cardsapi-cli display <variant> <id>")
			return
		}

		html, err := getText(a.url + "/monster-cards/display/" + a.args[0] + "/" + a.args[1])
		if err != nil {
			panic(err)
		}
		fmt.Println(html)
	},

	"players": func(a *args) {
		list := cards.PlayerList{}
		if err := get(a.url+"/player?"+query(a.args), &list); err != nil {
			panic(err)
		}

		for _, p := range list.Players {
			card := "-"
			if p.MonsterCardID != nil {
				card = fmt.Sprint(*p.MonsterCardID)
			}
			fmt.Printf("%v\t%v\t%v\tcard:%v\n", p.ID, p.Name, p.Team, card)
		}
	},

	"newplayer": func(a *args) {
		if len(a.args) < 1 {
			fmt.Println("usage: cardsapi-cli newplayer <json>")
			return
		}

		in := cards.PlayerCreate{}
		if err := json.Unmarshal([]byte(a.args[0]), &in); err != nil {
			panic(err)
		}

		player := cards.Player{}
		if err := post(a.url+"/player", in, &player); err != nil {
			panic(err)
		}
		fmt.Println(player.ID)
	},

	"delplayer": func(a *args) {
		if len(a.args) < 1 {
			fmt.Println("usage: cardsapi-cli delplayer <id>")
			return
		}

		if err := del(a.url + "/player/" + a.args[0]); err != nil {
			panic(err)
		}
	},

	"matchups": func(a *args) {
		list := cards.EffectivenessList{}
		if err := get(a.url+"/type-effectiveness?"+query(a.args), &list); err != nil {
			panic(err)
		}

		for _, e := range list.Matchups {
			fmt.Printf("%v -> %v\t%v\n", e.AttackerType, e.DefenderType, e.Effective)
		}
	},
}

// Query joins raw key=value arguments into a query string.
func query(kvs []string) string {
	q := url.Values{}
	for _, kv := range kvs {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				q.Set(kv[:i], kv[i+1:])
				break
			}
		}
	}
	return q.Encode()
}

func printCard(c *cards.Card) {
	fmt.Printf("id: %v\nname: %v\n", c.ID, c.Name)
	if c.Description != nil {
		fmt.Printf("description: %v\n", *c.Description)
	}
	fmt.Printf("types: %v/%v\n", c.PrimaryType, c.SecondaryType)
	fmt.Printf("health: %v\nattack: %v\ndefense: %v\nspeed: %v\n",
		c.Health, c.Attack, c.Defense, c.Speed)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cmd, ok := cmds[os.Args[1]]
	if !ok {
		usage()
		return
	}

	endpoint := os.Getenv("CARDSAPI_URL")
	if endpoint == "" {
		endpoint = "http://localhost:8080"
	}

	cmd(&args{
		url:  endpoint,
		args: os.Args[2:],
	})
}

func usage() {
	fmt.Println("usage: cardsapi-cli <command> [args]")
	fmt.Println()
	fmt.Println("commands:")
	for cmd := range cmds {
		fmt.Println(" ", cmd)
	}
}
