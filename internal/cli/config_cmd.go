// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/jeranaias/thagstyle/internal/config"
)

// HandleConfig inspects and edits ~/.thag/config.toml.
//
//	thag config show | path | keys
//	thag config get <key>
//	thag config set <key> <value>
func (a *App) HandleConfig(_ context.Context) error {
	p := NewArgParser(a.Args.Raw)
	sub := p.Subcommand()
	if sub == "" {
		sub = "show"
	}
	w := a.stdout()

	switch sub {
	case "show":
		if a.Args.JSON {
			return NewJSONResponse("config show", a.Config).Print(w)
		}
		fmt.Fprintln(w, TitleStyle.Render("Configuration"))
		for _, key := range config.GetAllKeys() {
			v, err := a.Config.Get(key)
			if err != nil {
				continue
			}
			fmt.Fprintln(w, RenderLabel(key, 28)+ValueStyle.Render(formatConfigValue(v)))
		}
		return nil

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return &ConfigError{Err: err}
		}
		fmt.Fprintln(w, path)
		return nil

	case "keys":
		for _, key := range config.GetAllKeys() {
			fmt.Fprintln(w, key)
		}
		return nil

	case "get":
		key, err := requireArg(p, 1, "key", "thag config get styling.theme_dir")
		if err != nil {
			return err
		}
		v, err := a.Config.Get(key)
		if err != nil {
			return NewNotFoundError("config key", key)
		}
		if a.Args.JSON {
			return NewJSONResponse("config get", map[string]interface{}{key: v}).Print(w)
		}
		fmt.Fprintln(w, formatConfigValue(v))
		return nil

	case "set":
		key, err := requireArg(p, 1, "key", "thag config set ui.verbosity verbose")
		if err != nil {
			return err
		}
		if p.PositionalCount() < 3 {
			return ErrMissingArgument("value", "thag config set "+key+" <value>")
		}
		value := strings.Join(p.PositionalFrom(2), " ")

		updated := a.Config.Clone()
		if err := updated.Set(key, value); err != nil {
			return NewValidationError(key, value, err.Error())
		}
		if err := updated.Validate(); err != nil {
			return &ConfigError{Err: err}
		}
		if err := config.Save(updated); err != nil {
			return &ConfigError{Err: err}
		}
		a.Config = updated
		fmt.Fprintf(w, "%s %s = %s\n", SuccessStyle.Render("Set"), key, formatConfigValue(mustGet(updated, key)))
		return nil
	}
	return NewValidationErrorWithExample("config", sub, "unknown subcommand", "show, get, set, path, keys")
}

func mustGet(c *config.Config, key string) interface{} {
	v, _ := c.Get(key)
	return v
}

// formatConfigValue prints lists comma separated and empty values as "-".
func formatConfigValue(v interface{}) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = fmt.Sprint(rv.Index(i).Interface())
		}
		v = strings.Join(parts, ",")
	}
	s := fmt.Sprint(v)
	if s == "" {
		return "-"
	}
	return s
}
