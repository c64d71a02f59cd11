// Package catalog provides the exhibition data model and its loaders.
//
// A [Catalog] bundles the three collections the exhibit needs: the ordered
// artwork sequence, the critiques written about those artworks, and the
// personas who wrote them. Catalogs are read-only once loaded; the
// navigation engine only ever holds references to them.
//
// # Sources
//
// [Loader.Load] accepts three kinds of source:
//
//   - A local file path (".toml" files are decoded as TOML, anything else as JSON)
//   - An http:// or https:// URL, fetched with retries and cached
//   - A mongodb:// URI, read through [MongoSource]
//
// # File Format
//
//	[[artworks]]
//	id = "nighthawks"
//	title = "Nighthawks"
//	artist = "Edward Hopper"
//	year = 1942
//	position = 1
//
//	[[critiques]]
//	id = "c1"
//	artwork_id = "nighthawks"
//	persona_id = "flaneur"
//	text = "Light as a closed door."
//
//	[[personas]]
//	id = "flaneur"
//	name = "The Flâneur"
package catalog

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/exhibit/pkg/errors"
)

// Format constants for catalog encodings.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Artwork is one piece in the exhibition sequence.
type Artwork struct {
	ID          string `json:"id" toml:"id" bson:"_id"`
	Title       string `json:"title" toml:"title" bson:"title"`
	Artist      string `json:"artist,omitempty" toml:"artist" bson:"artist,omitempty"`
	Year        int    `json:"year,omitempty" toml:"year" bson:"year,omitempty"`
	Medium      string `json:"medium,omitempty" toml:"medium" bson:"medium,omitempty"`
	Image       string `json:"image,omitempty" toml:"image" bson:"image,omitempty"`
	Description string `json:"description,omitempty" toml:"description" bson:"description,omitempty"`
	Position    int    `json:"position" toml:"position" bson:"position"`
}

// Critique is a short text written by a persona about an artwork.
type Critique struct {
	ID        string `json:"id" toml:"id" bson:"_id"`
	ArtworkID string `json:"artwork_id" toml:"artwork_id" bson:"artwork_id"`
	PersonaID string `json:"persona_id,omitempty" toml:"persona_id" bson:"persona_id,omitempty"`
	Text      string `json:"text" toml:"text" bson:"text"`
}

// Persona is the voice behind a set of critiques.
type Persona struct {
	ID   string `json:"id" toml:"id" bson:"_id"`
	Name string `json:"name" toml:"name" bson:"name"`
	Role string `json:"role,omitempty" toml:"role" bson:"role,omitempty"`
	Bio  string `json:"bio,omitempty" toml:"bio" bson:"bio,omitempty"`
}

// Catalog holds every collection the exhibit displays.
type Catalog struct {
	Artworks  []Artwork  `json:"artworks" toml:"artworks"`
	Critiques []Critique `json:"critiques,omitempty" toml:"critiques"`
	Personas  []Persona  `json:"personas,omitempty" toml:"personas"`
}

// Validate checks identifiers and cross references.
//
// Artwork ids must be valid and unique, every critique must reference a
// known artwork, and a critique's persona (when set) must exist. An empty
// artwork list is valid: an empty gallery is a normal state while loading.
func (c *Catalog) Validate() error {
	artworks := make(map[string]bool, len(c.Artworks))
	for _, a := range c.Artworks {
		if err := errors.ValidateID("artwork", a.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "invalid artwork")
		}
		if artworks[a.ID] {
			return errors.New(errors.ErrCodeInvalidCatalog, "duplicate artwork id %q", a.ID)
		}
		artworks[a.ID] = true
	}

	personas := make(map[string]bool, len(c.Personas))
	for _, p := range c.Personas {
		if err := errors.ValidateID("persona", p.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "invalid persona")
		}
		if personas[p.ID] {
			return errors.New(errors.ErrCodeInvalidCatalog, "duplicate persona id %q", p.ID)
		}
		personas[p.ID] = true
	}

	for i, cr := range c.Critiques {
		if !artworks[cr.ArtworkID] {
			return errors.New(errors.ErrCodeInvalidCatalog, "critique %d (%q) references unknown artwork %q", i, cr.ID, cr.ArtworkID)
		}
		if cr.PersonaID != "" && !personas[cr.PersonaID] {
			return errors.New(errors.ErrCodeInvalidCatalog, "critique %d (%q) references unknown persona %q", i, cr.ID, cr.PersonaID)
		}
	}
	return nil
}

// Sort orders artworks by Position. Artworks sharing a position keep their
// relative order.
func (c *Catalog) Sort() {
	sort.SliceStable(c.Artworks, func(i, j int) bool {
		return c.Artworks[i].Position < c.Artworks[j].Position
	})
}

// Decode parses a catalog in the given format, sorts it and validates it.
func Decode(data []byte, format string) (*Catalog, error) {
	var c Catalog
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&c); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode TOML catalog")
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode JSON catalog")
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported catalog format %q", format)
	}
	c.Sort()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Encode writes the catalog in the given format.
func (c *Catalog) Encode(format string) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return json.MarshalIndent(c, "", "  ")
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported catalog format %q", format)
	}
}
