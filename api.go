package cards

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// API implements the CardsAPI HTTP surface.
type API struct {
	impl *Impl
	cfg  *Config
}

// NewAPI creates a new API.
func NewAPI(impl *Impl, cfg *Config) *API {
	return &API{impl, cfg}
}

// Serve serves the API on the given endpoint.
func (a *API) Serve(port string) error {
	http.HandleFunc("/assets/", a.Asset)

	http.HandleFunc("/monster-cards", a.CardsAPI)
	http.HandleFunc("/monster-cards/", a.CardAPI)
	http.HandleFunc("/player", a.PlayersAPI)
	http.HandleFunc("/player/", a.PlayerAPI)
	http.HandleFunc("/type-effectiveness", a.EffectivenessAPI)

	return http.ListenAndServe(port, nil)
}

// Asset gets an arbitrary public asset from the assets folder.
func (a *API) Asset(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		res.WriteHeader(405)
		return
	}

	rel := path.Clean(strings.TrimPrefix(req.URL.Path, "/assets/"))
	if strings.HasPrefix(rel, "..") {
		res.WriteHeader(404)
		return
	}

	renderFile(filepath.Join(a.cfg.AssetsDir, rel), res)
}

// RenderFile renders a static file with the appropriate MIME type.
func renderFile(file string, res http.ResponseWriter) {
	bs, err := ioutil.ReadFile(file)
	if err != nil {
		res.WriteHeader(404)
		return
	}

	switch {
	case strings.HasSuffix(file, ".html"):
		res.Header().Set("Content-Type", "text/html")
	case strings.HasSuffix(file, ".css"):
		res.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(file, ".js"):
		res.Header().Set("Content-Type", "text/javascript")
	case strings.HasSuffix(file, ".png"):
		res.Header().Set("Content-Type", "image/png")
	case strings.HasSuffix(file, ".jpg"), strings.HasSuffix(file, ".jpeg"):
		res.Header().Set("Content-Type", "image/jpeg")
	}

	res.WriteHeader(200)
	res.Write(bs)
}

// CardsAPI dispatches GET|POST /monster-cards.
func (a *API) CardsAPI(res http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		a.listCards(res, req)

	case http.MethodPost:
		a.newCard(res, req)

	default:
		res.WriteHeader(405)
	}
}

// GET /monster-cards -- list cards with filters and paging.
func (a *API) listCards(res http.ResponseWriter, req *http.Request) {
	query, err := parseCardQuery(req.URL.Query())
	if err != nil {
		writeError(res, err)
		return
	}

	cards, err := a.impl.ListCards(query)
	if err != nil {
		writeError(res, err)
		return
	}

	writeJSON(res, 200, CardList{Cards: cards})
}

// POST /monster-cards -- create a card.
func (a *API) newCard(res http.ResponseWriter, req *http.Request) {
	in := CardCreate{}
	if err := unmarshal(req.Body, &in); err != nil {
		writeError(res, err)
		return
	}

	card, err := a.impl.CreateCard(&in)
	if err != nil {
		writeError(res, err)
		return
	}

	writeJSON(res, 201, card)
}

// CardAPI dispatches /monster-cards/<id>, /monster-cards/by-name/<name> and
// /monster-cards/display/<variant>/<id>.
func (a *API) CardAPI(res http.ResponseWriter, req *http.Request) {
	rest := strings.TrimPrefix(req.URL.Path, "/monster-cards/")

	if name, ok := trimPathPrefix(rest, "by-name/"); ok {
		if req.Method != http.MethodGet {
			res.WriteHeader(405)
			return
		}
		a.getCardByName(name, res)
		return
	}

	if trailer, ok := trimPathPrefix(rest, "display/"); ok {
		if req.Method != http.MethodGet {
			res.WriteHeader(405)
			return
		}
		a.displayCard(trailer, res)
		return
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		res.WriteHeader(404)
		return
	}

	switch req.Method {
	case http.MethodGet:
		a.getCard(id, res)

	case http.MethodPatch:
		a.patchCard(id, res, req)

	case http.MethodDelete:
		a.deleteCard(id, res)

	default:
		res.WriteHeader(405)
	}
}

// GET /monster-cards/<id> -- get a card.
func (a *API) getCard(id int64, res http.ResponseWriter) {
	card, err := a.impl.GetCard(id)
	if err != nil {
		writeError(res, err)
		return
	}
	writeJSON(res, 200, card)
}

// GET /monster-cards/by-name/<name> -- get a card by exact name.
func (a *API) getCardByName(name string, res http.ResponseWriter) {
	unescaped, err := url.PathUnescape(name)
	if err != nil {
		writeError(res, validation("bad name: %v", err))
		return
	}

	card, err := a.impl.GetCardByName(unescaped)
	if err != nil {
		writeError(res, err)
		return
	}
	writeJSON(res, 200, card)
}

// PATCH /monster-cards/<id> -- partially update a card.
func (a *API) patchCard(id int64, res http.ResponseWriter, req *http.Request) {
	update := CardUpdate{}
	if err := unmarshal(req.Body, &update); err != nil {
		writeError(res, err)
		return
	}

	card, err := a.impl.UpdateCard(id, &update)
	if err != nil {
		writeError(res, err)
		return
	}
	writeJSON(res, 200, card)
}

// DELETE /monster-cards/<id> -- hard-delete a card.
func (a *API) deleteCard(id int64, res http.ResponseWriter) {
	if err := a.impl.DeleteCard(id); err != nil {
		writeError(res, err)
		return
	}
	res.WriteHeader(204)
}

// GET /monster-cards/display/<variant>/<id> -- render a card as HTML.
func (a *API) displayCard(trailer string, res http.ResponseWriter) {
	idx := strings.IndexByte(trailer, '/')
	if idx == -1 {
		res.WriteHeader(404)
		return
	}

	variant, err := ParseDisplayVariant(trailer[:idx])
	if err != nil {
		res.WriteHeader(404)
		return
	}

	id, err := strconv.ParseInt(trailer[idx+1:], 10, 64)
	if err != nil {
		res.WriteHeader(404)
		return
	}

	html, err := a.impl.DisplayCard(id, variant)
	if err != nil {
		writeError(res, err)
		return
	}

	res.Header().Set("Content-Type", "text/html")
	res.WriteHeader(200)
	res.Write([]byte(html))
}

// PlayersAPI dispatches GET|POST /player.
func (a *API) PlayersAPI(res http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		a.listPlayers(res, req)

	case http.MethodPost:
		a.newPlayer(res, req)

	default:
		res.WriteHeader(405)
	}
}

// GET /player -- list players with filters and paging.
func (a *API) listPlayers(res http.ResponseWriter, req *http.Request) {
	query, err := parsePlayerQuery(req.URL.Query())
	if err != nil {
		writeError(res, err)
		return
	}

	players, err := a.impl.ListPlayers(query)
	if err != nil {
		writeError(res, err)
		return
	}

	writeJSON(res, 200, PlayerList{Players: players})
}

// POST /player -- create a player.
func (a *API) newPlayer(res http.ResponseWriter, req *http.Request) {
	in := PlayerCreate{}
	if err := unmarshal(req.Body, &in); err != nil {
		writeError(res, err)
		return
	}

	player, err := a.impl.CreatePlayer(&in)
	if err != nil {
		writeError(res, err)
		return
	}

	writeJSON(res, 201, player)
}

// PlayerAPI dispatches /player/<id> and /player/by-name/<name>.
func (a *API) PlayerAPI(res http.ResponseWriter, req *http.Request) {
	rest := strings.TrimPrefix(req.URL.Path, "/player/")

	if name, ok := trimPathPrefix(rest, "by-name/"); ok {
		if req.Method != http.MethodGet {
			res.WriteHeader(405)
			return
		}
		a.getPlayerByName(name, res)
		return
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		res.WriteHeader(404)
		return
	}

	switch req.Method {
	case http.MethodGet:
		a.getPlayer(id, res)

	case http.MethodPatch:
		a.patchPlayer(id, res, req)

	case http.MethodDelete:
		a.deletePlayer(id, res)

	default:
		res.WriteHeader(405)
	}
}

// GET /player/<id> -- get a player.
func (a *API) getPlayer(id int64, res http.ResponseWriter) {
	player, err := a.impl.GetPlayer(id)
	if err != nil {
		writeError(res, err)
		return
	}
	writeJSON(res, 200, player)
}

// GET /player/by-name/<name> -- get a player by exact name.
func (a *API) getPlayerByName(name string, res http.ResponseWriter) {
	unescaped, err := url.PathUnescape(name)
	if err != nil {
		writeError(res, validation("bad name: %v", err))
		return
	}

	player, err := a.impl.GetPlayerByName(unescaped)
	if err != nil {
		writeError(res, err)
		return
	}
	writeJSON(res, 200, player)
}

// PATCH /player/<id> -- partially update a player.
func (a *API) patchPlayer(id int64, res http.ResponseWriter, req *http.Request) {
	update := PlayerUpdate{}
	if err := unmarshal(req.Body, &update); err != nil {
		writeError(res, err)
		return
	}

	player, err := a.impl.UpdatePlayer(id, &update)
	if err != nil {
		writeError(res, err)
		return
	}
	writeJSON(res, 200, player)
}

// DELETE /player/<id> -- hard-delete a player.
func (a *API) deletePlayer(id int64, res http.ResponseWriter) {
	if err := a.impl.DeletePlayer(id); err != nil {
		writeError(res, err)
		return
	}
	res.WriteHeader(204)
}

// EffectivenessAPI dispatches GET|PUT /type-effectiveness.
func (a *API) EffectivenessAPI(res http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		a.getEffectiveness(res, req)

	case http.MethodPut:
		a.putEffectiveness(res, req)

	default:
		res.WriteHeader(405)
	}
}

// GET /type-effectiveness?attacker=&defender= -- look up matchups. With both
// types set this returns the single entry; with at most an attacker it lists.
func (a *API) getEffectiveness(res http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	var attacker *CardType
	if s := q.Get("attacker"); s != "" {
		t, err := ParseCardType(s)
		if err != nil {
			writeError(res, err)
			return
		}
		attacker = &t
	}

	if s := q.Get("defender"); s != "" {
		defender, err := ParseCardType(s)
		if err != nil {
			writeError(res, err)
			return
		}
		if attacker == nil {
			writeError(res, validation("defender requires an attacker"))
			return
		}

		e, err := a.impl.GetEffectiveness(*attacker, defender)
		if err != nil {
			writeError(res, err)
			return
		}
		writeJSON(res, 200, e)
		return
	}

	matchups, err := a.impl.ListEffectiveness(attacker)
	if err != nil {
		writeError(res, err)
		return
	}
	writeJSON(res, 200, EffectivenessList{Matchups: matchups})
}

// PUT /type-effectiveness -- upsert a matchup entry.
func (a *API) putEffectiveness(res http.ResponseWriter, req *http.Request) {
	e := Effectiveness{}
	if err := unmarshal(req.Body, &e); err != nil {
		writeError(res, err)
		return
	}

	if err := a.impl.SetEffectiveness(&e); err != nil {
		writeError(res, err)
		return
	}
	writeJSON(res, 200, e)
}

// TrimPathPrefix is like strings.TrimPrefix but reports whether it trimmed.
func trimPathPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

func parseCardQuery(q url.Values) (*CardQuery, error) {
	query := CardQuery{NameSearch: q.Get("name_search")}

	var err error
	if query.Limit, err = intParam(q, "limit"); err != nil {
		return nil, err
	}
	if query.Offset, err = intParam(q, "offset"); err != nil {
		return nil, err
	}

	if s := q.Get("primary_type"); s != "" {
		t, err := ParseCardType(s)
		if err != nil {
			return nil, err
		}
		query.PrimaryType = &t
	}
	if s := q.Get("secondary_type"); s != "" {
		t, err := ParseCardType(s)
		if err != nil {
			return nil, err
		}
		query.SecondaryType = &t
	}

	return &query, nil
}

func parsePlayerQuery(q url.Values) (*PlayerQuery, error) {
	query := PlayerQuery{NameSearch: q.Get("name_search")}

	var err error
	if query.Limit, err = intParam(q, "limit"); err != nil {
		return nil, err
	}
	if query.Offset, err = intParam(q, "offset"); err != nil {
		return nil, err
	}

	if s := q.Get("team"); s != "" {
		t := ParseTeamType(s)
		query.Team = &t
	}

	return &query, nil
}

func intParam(q url.Values, key string) (int, error) {
	s := q.Get(key)
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, validation("%v must be an integer", key)
	}
	return n, nil
}

// WriteError translates a domain error into its HTTP status and a JSON body.
func writeError(res http.ResponseWriter, err error) {
	e, ok := err.(*Error)
	if !ok {
		e = &Error{HTTP: 500, Code: "InternalError", Message: err.Error()}
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(e.HTTP)
	marshal(e, res)
}

func writeJSON(res http.ResponseWriter, status int, body interface{}) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	marshal(body, res)
}

func marshal(src interface{}, dst io.Writer) {
	bs, err := json.Marshal(src)
	if err != nil {
		panic(err)
	}
	dst.Write(bs)
}

func unmarshal(src io.Reader, dst interface{}) error {
	bs, err := ioutil.ReadAll(src)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(bs, dst); err != nil {
		if e, ok := err.(*Error); ok {
			return e
		}
		return validation("bad request body: %v", err)
	}
	return nil
}
