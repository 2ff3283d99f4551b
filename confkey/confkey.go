// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package confkey looks for tags on a structure and set values
// based on the tag rather than the struct item names
//
// A sample structure might look like this:
//
//	type Config struct {
//	    LogLevel string        `confkey:"loglevel" default:"info" validate:"enum=debug,info,warn,error"`
//	    Updater  string        `confkey:"plugin.checkmk.updater_path" default:"/usr/bin/cmk-update-agent" environment:"CHECKMK_UPDATER"`
//	    Timeout  time.Duration `confkey:"plugin.checkmk.command_timeout" type:"duration" default:"300s"`
//	}
//
// Strings, booleans, ints, []string and time.Duration values are supported. An
// environment variable named in the environment tag always overrides the
// value being set.
//
// Validations are done using the github.com/choria-io/go-validator package.
package confkey

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/choria-io/go-validator"
	"github.com/fatih/structtag"
)

var (
	trueRe  = regexp.MustCompile(`(?i)^(1|yes|true|y|t)$`)
	falseRe = regexp.MustCompile(`(?i)^(0|no|false|n|f)$`)
	digitRe = regexp.MustCompile(`\A\d+\z`)
)

// SetStructDefaults extract defaults out of the tags and set them to the key
func SetStructDefaults(target any) error {
	st, err := structType(target)
	if err != nil {
		return err
	}

	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)

		key, ok := field.Tag.Lookup("confkey")
		if !ok {
			continue
		}

		value, ok := field.Tag.Lookup("default")
		if !ok {
			env, hasEnv := field.Tag.Lookup("environment")
			if !hasEnv {
				continue
			}
			if _, set := os.LookupEnv(env); !set {
				continue
			}
		}

		err = SetStructFieldWithKey(target, key, value)
		if err != nil {
			return fmt.Errorf("could not set default for %s: %w", key, err)
		}
	}

	return nil
}

// SetStructFieldWithKey finds the struct key that matches the confkey on target and assign the value to it
func SetStructFieldWithKey(target any, key string, value string) error {
	if _, err := structType(target); err != nil {
		return err
	}

	item, err := fieldWithKey(target, key)
	if err != nil {
		return err
	}

	if env, ok := tag(target, item, "environment"); ok {
		if v, ok := os.LookupEnv(env); ok {
			value = v
		}
	}

	field := reflect.ValueOf(target).Elem().FieldByName(item)
	vtype, _ := tag(target, item, "type")

	switch field.Kind() {
	case reflect.Slice:
		ptr, ok := field.Addr().Interface().(*[]string)
		if !ok {
			return fmt.Errorf("%s: only []string slices are supported", key)
		}

		if vtype == "comma_split" {
			// one line splits replace whatever was there
			*ptr = []string{}
			for _, v := range strings.Split(value, ",") {
				if v = strings.TrimSpace(v); v != "" {
					*ptr = append(*ptr, v)
				}
			}
		} else if v := strings.TrimSpace(value); v != "" {
			*ptr = append(*ptr, v)
		}

	case reflect.Int:
		ptr := field.Addr().Interface().(*int)
		i, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*ptr = i

	case reflect.Int64:
		if vtype != "duration" {
			return fmt.Errorf("%s: int64 fields must be of type duration", key)
		}

		ptr := field.Addr().Interface().(*time.Duration)
		value = strings.TrimSpace(value)

		if digitRe.MatchString(value) {
			i, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			*ptr = time.Duration(i) * time.Second
			break
		}

		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*ptr = d

	case reflect.String:
		ptr := field.Addr().Interface().(*string)
		*ptr = strings.TrimSpace(value)

		if vtype == "path_string" && strings.HasPrefix(*ptr, "~") {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			*ptr = strings.Replace(*ptr, "~", home, 1)
		}

	case reflect.Bool:
		ptr := field.Addr().Interface().(*bool)
		b, err := StrToBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*ptr = b

	default:
		return fmt.Errorf("%s: unsupported field type %s", key, field.Kind())
	}

	_, err = validator.ValidateStructField(target, item)

	return err
}

// Keys returns every confkey declared on target, sorted
func Keys(target any) []string {
	st, err := structType(target)
	if err != nil {
		return nil
	}

	var keys []string
	for i := 0; i < st.NumField(); i++ {
		if key, ok := st.Field(i).Tag.Lookup("confkey"); ok {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}

// FindFields looks for confkeys matching the regular expression re, sorted
func FindFields(target any, re string) ([]string, error) {
	matcher, err := regexp.Compile(re)
	if err != nil {
		return nil, err
	}

	found := []string{}
	for _, key := range Keys(target) {
		if matcher.MatchString(key) {
			found = append(found, key)
		}
	}

	return found, nil
}

// Type is the data type of the field tagged with key, the type tag when set otherwise the Go kind
func Type(target any, key string) (string, error) {
	item, err := fieldWithKey(target, key)
	if err != nil {
		return "", err
	}

	if t, ok := tag(target, item, "type"); ok {
		return t, nil
	}

	field := reflect.Indirect(reflect.ValueOf(target)).FieldByName(item)

	return field.Kind().String(), nil
}

// KeyTag retrieves a tag from the field tagged with key
func KeyTag(target any, key string, t string) (string, bool) {
	item, err := fieldWithKey(target, key)
	if err != nil {
		return "", false
	}

	return tag(target, item, t)
}

// StringWithKey renders the value of the field tagged with key as a string, "" when not found
func StringWithKey(target any, key string) string {
	item, err := fieldWithKey(target, key)
	if err != nil {
		return ""
	}

	field := reflect.Indirect(reflect.ValueOf(target)).FieldByName(item)

	switch v := field.Interface().(type) {
	case []string:
		return strings.Join(v, ",")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Validate validates the struct
func Validate(target any) error {
	if _, err := structType(target); err != nil {
		return err
	}

	_, err := validator.ValidateStruct(target)

	return err
}

// StrToBool converts a typical boolianish string to bool.
//
// 1, yes, true, y, t will be true
// 0, no, false, n, f will be false
// anything else will be false with an error
func StrToBool(s string) (bool, error) {
	clean := strings.TrimSpace(s)

	switch {
	case trueRe.MatchString(clean):
		return true, nil
	case falseRe.MatchString(clean):
		return false, nil
	}

	return false, fmt.Errorf("cannot convert string value '%s' into a boolean", clean)
}

func structType(target any) (reflect.Type, error) {
	if target == nil {
		return nil, errors.New("pointer is required")
	}

	t := reflect.TypeOf(target)
	if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return nil, errors.New("pointer is required")
	}

	return t.Elem(), nil
}

// determines the struct key name that is tagged with a certain confkey
func fieldWithKey(s any, key string) (string, error) {
	st := reflect.TypeOf(s)
	if st.Kind() == reflect.Ptr {
		st = st.Elem()
	}

	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)

		if confkey, ok := field.Tag.Lookup("confkey"); ok && confkey == key {
			return field.Name, nil
		}
	}

	return "", fmt.Errorf("can't find any structure element configured with confkey '%s'", key)
}

// retrieve a tag for a struct field
func tag(s any, field string, tag string) (string, bool) {
	st := reflect.TypeOf(s)
	if st.Kind() == reflect.Ptr {
		st = st.Elem()
	}

	f, ok := st.FieldByName(field)
	if !ok {
		return "", false
	}

	tags, err := structtag.Parse(string(f.Tag))
	if err != nil {
		return "", false
	}

	t, err := tags.Get(tag)
	if err != nil {
		return "", false
	}

	return t.Value(), true
}
