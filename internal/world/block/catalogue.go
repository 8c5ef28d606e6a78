package block

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed catalogue.yaml
var catalogueYAML []byte

//go:embed catalogue.schema.json
var catalogueSchema string

var ErrInvalidCatalogue = errors.New("block: invalid catalogue")

// Catalogue представляет разобранный и проверенный каталог блоков
type Catalogue struct {
	Definitions map[BlockID]*Definition
	TextureSize mgl32.Vec2
	AtlasWidth  int
	AtlasHeight int
}

type catalogueFile struct {
	Atlas struct {
		Columns     int `yaml:"columns"`
		TextureSize int `yaml:"texture_size"`
	} `yaml:"atlas"`
	Textures []string     `yaml:"textures"`
	Blocks   []blockEntry `yaml:"blocks"`
}

type blockEntry struct {
	ID          int      `yaml:"id"`
	Name        string   `yaml:"name"`
	Transparent bool     `yaml:"transparent"`
	Solid       bool     `yaml:"solid"`
	Textures    []string `yaml:"textures"`
}

func init() {
	cat, err := ParseCatalogue(catalogueYAML)
	if err != nil {
		panic(err)
	}
	Install(cat)
}

// ParseCatalogue разбирает YAML-каталог, проверяет его схемой и сверяет
// с константами ID. Регистр не изменяется.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	if err := validateCatalogue(data); err != nil {
		return nil, err
	}

	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalogue, err)
	}

	columns := file.Atlas.Columns
	size := file.Atlas.TextureSize
	rows := (len(file.Textures) + columns - 1) / columns
	width, height := columns*size, rows*size

	textureIndex := make(map[string]int, len(file.Textures))
	for i, name := range file.Textures {
		textureIndex[name] = i
	}
	uvOf := func(name string) (mgl32.Vec2, bool) {
		i, ok := textureIndex[name]
		if !ok {
			return mgl32.Vec2{}, false
		}
		x := (i % columns) * size
		z := (i / columns) * size
		return mgl32.Vec2{float32(x) / float32(width), float32(z) / float32(height)}, true
	}

	cat := &Catalogue{
		Definitions: make(map[BlockID]*Definition, len(file.Blocks)),
		TextureSize: mgl32.Vec2{float32(size) / float32(width), float32(size) / float32(height)},
		AtlasWidth:  width,
		AtlasHeight: height,
	}
	names := make(map[string]BlockID, len(file.Blocks))

	for _, entry := range file.Blocks {
		id := BlockID(entry.ID)
		if _, dup := cat.Definitions[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidCatalogue, id)
		}
		if other, dup := names[entry.Name]; dup {
			return nil, fmt.Errorf("%w: name %q used by ids %d and %d", ErrInvalidCatalogue, entry.Name, other, id)
		}
		names[entry.Name] = id

		def := &Definition{
			ID:          id,
			Name:        entry.Name,
			Transparent: entry.Transparent,
			Solid:       entry.Solid,
			CubeMap:     len(entry.Textures) == FaceCount,
		}
		if def.CubeMap {
			for f, tex := range entry.Textures {
				uv, ok := uvOf(tex)
				if !ok {
					return nil, fmt.Errorf("%w: block %q references unknown texture %q", ErrInvalidCatalogue, entry.Name, tex)
				}
				def.uv[f] = uv
			}
		} else if uv, ok := uvOf(entry.Name); ok {
			for f := range def.uv {
				def.uv[f] = uv
			}
		} else if id != AirBlockID {
			return nil, fmt.Errorf("%w: block %q has no texture", ErrInvalidCatalogue, entry.Name)
		}
		cat.Definitions[id] = def
	}

	for id, name := range builtinNames {
		def, ok := cat.Definitions[id]
		if !ok {
			return nil, fmt.Errorf("%w: missing builtin block %d (%s)", ErrInvalidCatalogue, id, name)
		}
		if def.Name != name {
			return nil, fmt.Errorf("%w: block %d is %q, expected %q", ErrInvalidCatalogue, id, def.Name, name)
		}
	}

	return cat, nil
}

// Install заменяет содержимое регистра каталогом.
func Install(cat *Catalogue) {
	registry = make(map[BlockID]*Definition, len(cat.Definitions))
	for _, def := range cat.Definitions {
		Register(def)
	}
	textureSize = cat.TextureSize
}

func validateCatalogue(data []byte) error {
	schema, err := jsonschema.CompileString("catalogue.schema.json", catalogueSchema)
	if err != nil {
		return fmt.Errorf("block: compile catalogue schema: %w", err)
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalogue, err)
	}
	// jsonschema ожидает значения в том виде, в каком их отдаёт encoding/json.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalogue, err)
	}
	var normalized interface{}
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalogue, err)
	}

	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalogue, err)
	}
	return nil
}
