// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package browser is the interactive theme browser.

The left pane lists every theme the selector knows (builtins plus the user
catalog). The right pane paints all sixteen roles with the highlighted
theme, shows its ANSI color map as swatches, and reports whether the theme
validates against the current terminal attributes.

# Keys

	enter   select the highlighted theme and exit
	e       export the theme in every terminal format
	c       copy the theme background hex to the clipboard
	/       filter the list
	q       quit without a selection

When the model is given a catalog change channel it reloads the list each
time a theme file is added, changed or removed.
*/
package browser
