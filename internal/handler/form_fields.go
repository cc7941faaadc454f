package handler

import (
	"fmt"
	"reflect"
	"strings"
)

// formField is one input of a generated record form.
type formField struct {
	Name     string
	Label    string
	Value    string
	Required bool
	Error    string
}

// formFields lists the bindable scalar fields of record in declaration order. Fields without a
// form tag, and the id, are left out.
func formFields(record interface{}, errs map[string]string) []formField {
	v := reflect.ValueOf(record)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	t := v.Type()
	fields := make([]formField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := strings.Split(sf.Tag.Get("form"), ",")[0]
		if name == "" || name == "-" || name == "id" {
			continue
		}
		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.Struct, reflect.Map, reflect.Pointer, reflect.Interface:
			continue
		}
		label := sf.Tag.Get("label")
		if label == "" {
			label = humanize(name)
		}
		validate := sf.Tag.Get("validate")
		fields = append(fields, formField{
			Name:     name,
			Label:    label,
			Value:    fieldText(fv),
			Required: strings.Contains(validate, "notblank") || strings.Contains(validate, "required"),
			Error:    errs[jsonName(sf)],
		})
	}
	return fields
}

func fieldText(v reflect.Value) string {
	if v.Kind() == reflect.Slice {
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = fmt.Sprint(v.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}
	if v.IsZero() && v.Kind() != reflect.String {
		return ""
	}
	return fmt.Sprint(v.Interface())
}

func jsonName(sf reflect.StructField) string {
	name := strings.Split(sf.Tag.Get("json"), ",")[0]
	if name == "" {
		return sf.Name
	}
	return name
}

func humanize(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// statTile is one counter above a list.
type statTile struct {
	Label string
	Value string
}

// statTiles flattens a stats struct into labelled counters.
func statTiles(stats interface{}) []statTile {
	v := reflect.ValueOf(stats)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	t := v.Type()
	tiles := make([]statTile, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}
		tiles = append(tiles, statTile{Label: humanize(jsonName(t.Field(i))), Value: fmt.Sprint(v.Field(i).Interface())})
	}
	return tiles
}
