package cards

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Renderer renders monster cards as HTML using per-variant template files.
// It holds no state beyond its configuration; cards are borrowed per call.
type Renderer struct {
	cfg *Config
}

// NewRenderer creates a new Renderer.
func NewRenderer(cfg *Config) *Renderer {
	return &Renderer{
		cfg: cfg,
	}
}

// Render loads the variant's template and substitutes the card's fields and
// asset URLs into it. The card's image is normalized to the standard size on
// the way; a missing image file leaves a broken link rather than failing.
func (r *Renderer) Render(card *Card, variant DisplayVariant) (string, error) {
	file := filepath.Join(r.cfg.TemplatesDir(), string(variant)+".html")

	bs, err := ioutil.ReadFile(file)
	if os.IsNotExist(err) {
		return "", templateMissing("no template for display variant %q", variant)
	}
	if err != nil {
		return "", err
	}

	image := imageFileName(card.Name)
	if err := EnsureSize(filepath.Join(r.cfg.ImagesDir(), image), cardImageWidth, cardImageHeight); err != nil {
		return "", err
	}

	description := ""
	if card.Description != nil {
		description = *card.Description
	}

	return substitute(string(bs), map[string]string{
		"name":                card.Name,
		"description":         description,
		"primary_type_icon":   iconURL(card.PrimaryType),
		"secondary_type_icon": iconURL(card.SecondaryType),
		"health":              strconv.Itoa(card.Health),
		"attack":              strconv.Itoa(card.Attack),
		"defense":             strconv.Itoa(card.Defense),
		"speed":               strconv.Itoa(card.Speed),
		"image_url":           publicMonsterImagesURL + "/" + image,
	}), nil
}

// ImageFileName derives a card's image file from its name: first letter
// capitalized, spaces replaced by underscores, png extension.
func imageFileName(name string) string {
	rs := []rune(name)
	if len(rs) > 0 {
		rs[0] = unicode.ToUpper(rs[0])
	}
	return strings.ReplaceAll(string(rs), " ", "_") + ".png"
}

// IconURL is the public URL of an elemental type's icon.
func iconURL(t CardType) string {
	return publicTypeIconsURL + "/" + strings.ToLower(string(t)) + "_icon.png"
}

var placeholder = regexp.MustCompile(`\$(?:\{([A-Za-z_][A-Za-z0-9_]*)\}|([A-Za-z_][A-Za-z0-9_]*))`)

// Substitute replaces $key and ${key} placeholders with their values.
// Placeholders with no value are left verbatim, and values with no
// placeholder are ignored, so a template/data mismatch never fails a render.
func substitute(template string, values map[string]string) string {
	return placeholder.ReplaceAllStringFunc(template, func(m string) string {
		key := strings.Trim(m[1:], "{}")
		if v, ok := values[key]; ok {
			return v
		}
		return m
	})
}
