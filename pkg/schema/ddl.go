package schema

import (
	"reflect"
)

// columnNames collects db tags of a model in field order.
func columnNames(model any) []string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var res []string
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" {
			res = append(res, tag)
		}
	}
	return res
}

// Columns returns the column names of PowerPlant in the order of
// PowerPlant.Values.
func Columns() []string {
	return columnNames(PowerPlant{})
}
