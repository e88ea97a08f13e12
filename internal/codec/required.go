package codec

import (
	"reflect"
	"strings"
)

// firstMissingField inspects alias, a pointer to a struct whose `req:"true"`
// fields are all pointer-typed, and returns the wire field name (its json
// tag) of the first such field left nil by a decode -- i.e. absent from,
// or explicitly null in, the decoded JSON object -- or "" if every
// required field was present. Each payload/envelope type's UnmarshalJSON
// decodes into such an alias first, so a field the wire format requires
// can be told apart from one that merely decoded to its Go zero value.
func firstMissingField(alias any) string {
	v := reflect.ValueOf(alias).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("req") != "true" {
			continue
		}
		if v.Field(i).IsNil() {
			return strings.Split(field.Tag.Get("json"), ",")[0]
		}
	}
	return ""
}
