package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// fieldDef is the YAML shape of one field declaration. Offset and
// size may be omitted: size defaults to the type's natural size,
// offsets auto-pack sequentially when every field leaves them unset.
type fieldDef struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Offset *int   `yaml:"offset,omitempty"`
	Size   int    `yaml:"size,omitempty"`
}

type componentDef struct {
	ID     uint32     `yaml:"id"`
	Name   string     `yaml:"name"`
	Size   int        `yaml:"size,omitempty"`
	Fields []fieldDef `yaml:"fields"`
}

type defsFile struct {
	Components []componentDef `yaml:"components"`
}

// LoadDefs parses a YAML component-layout definition document into
// ComponentMeta values ready for registration
func LoadDefs(data []byte) ([]ComponentMeta, error) {
	var doc defsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse component defs: %w", err)
	}

	metas := make([]ComponentMeta, 0, len(doc.Components))
	for _, cd := range doc.Components {
		if cd.Name == "" {
			return nil, fmt.Errorf("component id %d: missing name", cd.ID)
		}
		meta := ComponentMeta{ID: cd.ID, Name: cd.Name, Size: cd.Size}

		next := 0
		for _, fd := range cd.Fields {
			typ := ParseFieldType(fd.Type)
			if typ == FieldUnknown {
				return nil, fmt.Errorf("component %q field %q: unknown type %q", cd.Name, fd.Name, fd.Type)
			}
			size := fd.Size
			if size == 0 {
				size = typ.Size()
			}
			offset := next
			if fd.Offset != nil {
				offset = *fd.Offset
			}
			meta.Fields = append(meta.Fields, FieldDesc{
				Name:   fd.Name,
				Type:   typ,
				Offset: offset,
				Size:   size,
			})
			if offset+size > next {
				next = offset + size
			}
		}
		if meta.Size == 0 {
			meta.Size = next
		}
		if meta.Size < next {
			return nil, fmt.Errorf("component %q: declared size %d smaller than field extent %d", cd.Name, meta.Size, next)
		}
		metas = append(metas, meta)
	}
	return metas, nil
}

// RegisterDefs loads a YAML definition document and registers every
// component, stopping at the first failure
func RegisterDefs(r *Registry, data []byte) error {
	metas, err := LoadDefs(data)
	if err != nil {
		return err
	}
	for _, m := range metas {
		if err := r.Register(m); err != nil {
			return err
		}
	}
	return nil
}
