// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package browser

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the browser on the alternate screen and returns the chosen
// theme name, or "" when the user quit without choosing.
func Run(ctx context.Context, opts Options) (string, error) {
	p := tea.NewProgram(
		New(opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("theme browser: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return "", nil
	}
	return m.Choice(), nil
}
