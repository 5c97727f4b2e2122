package reflectdesc

import (
	"reflect"
	"strings"

	"github.com/goliatone/go-schemagen/pkg/typedesc"
)

func fieldTags(field reflect.StructField) typedesc.TagSet {
	var tags typedesc.TagSet

	if raw, ok := field.Tag.Lookup("json"); ok {
		name, _, _ := strings.Cut(raw, ",")
		switch name {
		case "-":
			if raw == "-" {
				tags = tags.With(typedesc.IgnoreTag{})
			} else {
				// json:"-," names the field "-".
				tags = tags.With(typedesc.NameTag{Name: "-"})
			}
		case "":
		default:
			tags = tags.With(typedesc.NameTag{Name: name})
		}
	}

	if raw, ok := field.Tag.Lookup("schema"); ok {
		for _, option := range strings.Split(raw, ",") {
			switch strings.TrimSpace(option) {
			case "required":
				tags = tags.With(typedesc.RequiredTag{})
			case "-", "ignore":
				tags = tags.With(typedesc.IgnoreTag{})
			}
		}
	}
	return tags
}

func hasJSONName(field reflect.StructField) bool {
	raw, ok := field.Tag.Lookup("json")
	if !ok {
		return false
	}
	name, _, _ := strings.Cut(raw, ",")
	return name != "" && name != "-"
}
