package catalog

import (
	"testing"

	"github.com/matzehuels/exhibit/pkg/errors"
)

const sampleTOML = `
[[artworks]]
id = "automat"
title = "Automat"
artist = "Edward Hopper"
year = 1927
position = 2

[[artworks]]
id = "nighthawks"
title = "Nighthawks"
artist = "Edward Hopper"
year = 1942
position = 1

[[artworks]]
id = "chop-suey"
title = "Chop Suey"
artist = "Edward Hopper"
year = 1929
position = 3

[[critiques]]
id = "c1"
artwork_id = "nighthawks"
persona_id = "flaneur"
text = "The diner glows like a closed aquarium."

[[critiques]]
id = "c2"
artwork_id = "nighthawks"
persona_id = "curator"
text = "No door; the street is the only way out."

[[critiques]]
id = "c3"
artwork_id = "automat"
text = "A cup held like a decision."

[[personas]]
id = "flaneur"
name = "The Flâneur"
role = "wanderer"

[[personas]]
id = "curator"
name = "The Curator"
`

const sampleJSON = `{
  "artworks": [
    {"id": "b", "title": "Second", "position": 2},
    {"id": "a", "title": "First", "position": 1}
  ],
  "critiques": [{"id": "c", "artwork_id": "a", "text": "Quiet."}]
}`

func TestDecode_TOML(t *testing.T) {
	c, err := Decode([]byte(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	wantOrder := []string{"nighthawks", "automat", "chop-suey"}
	if len(c.Artworks) != len(wantOrder) {
		t.Fatalf("got %d artworks, want %d", len(c.Artworks), len(wantOrder))
	}
	for i, id := range wantOrder {
		if c.Artworks[i].ID != id {
			t.Errorf("Artworks[%d].ID = %q, want %q", i, c.Artworks[i].ID, id)
		}
	}
	if c.Artworks[0].Year != 1942 || c.Artworks[0].Artist != "Edward Hopper" {
		t.Errorf("Artworks[0] = %+v", c.Artworks[0])
	}
	if len(c.Critiques) != 3 || len(c.Personas) != 2 {
		t.Errorf("got %d critiques, %d personas; want 3, 2", len(c.Critiques), len(c.Personas))
	}
}

func TestDecode_JSON(t *testing.T) {
	c, err := Decode([]byte(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if c.Artworks[0].ID != "a" || c.Artworks[1].ID != "b" {
		t.Errorf("artworks not sorted by position: %+v", c.Artworks)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
		code   errors.Code
	}{
		{"bad toml", "[[artworks]\nid=", FormatTOML, errors.ErrCodeInvalidCatalog},
		{"bad json", "{", FormatJSON, errors.ErrCodeInvalidCatalog},
		{"unknown format", "{}", "yaml", errors.ErrCodeUnsupported},
		{"dangling critique", `{"artworks":[{"id":"a"}],"critiques":[{"id":"c","artwork_id":"zzz"}]}`, FormatJSON, errors.ErrCodeInvalidCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("Decode() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		wantErr bool
	}{
		{"empty catalog", Catalog{}, false},
		{
			"valid",
			Catalog{
				Artworks:  []Artwork{{ID: "a"}, {ID: "b"}},
				Critiques: []Critique{{ID: "c", ArtworkID: "a", PersonaID: "p"}},
				Personas:  []Persona{{ID: "p"}},
			},
			false,
		},
		{"empty artwork id", Catalog{Artworks: []Artwork{{ID: ""}}}, true},
		{"duplicate artwork", Catalog{Artworks: []Artwork{{ID: "a"}, {ID: "a"}}}, true},
		{"duplicate persona", Catalog{Personas: []Persona{{ID: "p"}, {ID: "p"}}}, true},
		{
			"unknown artwork",
			Catalog{Artworks: []Artwork{{ID: "a"}}, Critiques: []Critique{{ArtworkID: "b"}}},
			true,
		},
		{
			"unknown persona",
			Catalog{Artworks: []Artwork{{ID: "a"}}, Critiques: []Critique{{ArtworkID: "a", PersonaID: "ghost"}}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidCatalog) {
				t.Errorf("Validate() code = %v, want INVALID_CATALOG", errors.GetCode(err))
			}
		})
	}
}

func TestSort_Stable(t *testing.T) {
	c := Catalog{Artworks: []Artwork{
		{ID: "x", Position: 1},
		{ID: "y", Position: 0},
		{ID: "z", Position: 1},
		{ID: "w", Position: 0},
	}}
	c.Sort()

	want := []string{"y", "w", "x", "z"}
	for i, id := range want {
		if c.Artworks[i].ID != id {
			t.Errorf("Artworks[%d] = %q, want %q", i, c.Artworks[i].ID, id)
		}
	}
}

func TestEncode(t *testing.T) {
	c, err := Decode([]byte(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	for _, format := range []string{FormatTOML, FormatJSON} {
		data, err := c.Encode(format)
		if err != nil {
			t.Fatalf("Encode(%s) error: %v", format, err)
		}
		back, err := Decode(data, format)
		if err != nil {
			t.Fatalf("Decode(Encode(%s)) error: %v", format, err)
		}
		if len(back.Artworks) != 3 || back.Artworks[1].Title != "Automat" {
			t.Errorf("%s round trip lost data: %+v", format, back.Artworks)
		}
	}

	if _, err := c.Encode("xml"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Encode(xml) error = %v, want UNSUPPORTED", err)
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]string{
		".toml": FormatTOML,
		".TOML": FormatTOML,
		".json": FormatJSON,
		"":      FormatJSON,
		".txt":  FormatJSON,
	}
	for ext, want := range tests {
		if got := FormatFor(ext); got != want {
			t.Errorf("FormatFor(%q) = %q, want %q", ext, got, want)
		}
	}
}
