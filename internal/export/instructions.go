// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"path/filepath"
	"strings"
)

// InstallationInstructions returns how to install an exported file in the
// emulator for format. filename is the exported file's base name.
func InstallationInstructions(format Format, filename string) string {
	name := format.Exporter().FormatName()
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))

	switch format {
	case FormatAlacritty:
		return fmt.Sprintf(`# %s Theme Installation

1. Copy %[2]s to your Alacritty themes directory:
   - Linux/macOS: ~/.config/alacritty/themes/
   - Windows: %%APPDATA%%\alacritty\themes\

2. Import it from alacritty.toml:

   general.import = ["themes/%[2]s"]

Alacritty reloads its config automatically.
`, name, filename)

	case FormatWezTerm:
		return fmt.Sprintf(`# %s Theme Installation

1. Copy %s to your WezTerm colors directory:
   - Linux/macOS: ~/.config/wezterm/colors/
   - Windows: %%USERPROFILE%%\.config\wezterm\colors\

2. Select it in wezterm.lua:

   local config = wezterm.config_builder()
   config.color_scheme = '%s'
   return config

The scheme name is the [metadata] name in the file.
`, name, filename, stem)

	case FormatITerm2:
		return fmt.Sprintf(`# %s Theme Installation

1. Open iTerm2 and go to Settings > Profiles > Colors
2. Open the "Color Presets..." dropdown and choose "Import..."
3. Choose %s
4. Select the imported preset from the same dropdown

The preset applies to the current profile.
`, name, filename)

	case FormatKitty:
		return fmt.Sprintf(`# %s Theme Installation

1. Copy %[2]s to ~/.config/kitty/themes/

2. Add this to kitty.conf:

   include themes/%[2]s

3. Reload the config with ctrl+shift+f5 or restart Kitty.
`, name, filename)

	case FormatKonsole:
		return fmt.Sprintf(`# %s Theme Installation

1. Copy %s to ~/.local/share/konsole/
   (Flatpak: ~/.var/app/org.kde.konsole/data/konsole/)

2. Open Settings > Edit Current Profile > Appearance and select the scheme,
   or run:

   konsoleprofile ColorScheme=%s
`, name, filename, stem)

	case FormatMintty:
		return fmt.Sprintf(`# %s Theme Installation

1. Copy %s to your mintty themes directory:
   - Git Bash: C:\Program Files\Git\usr\share\mintty\themes\
   - Cygwin: /usr/share/mintty/themes/

2. Right-click the title bar, open Options > Looks and pick it from "Theme",
   or add this to ~/.minttyrc:

   ThemeFile=%s
`, name, filename, filename)

	default:
		return fmt.Sprintf(`# %s Theme Installation

Merge the scheme into settings.json automatically:

   thag export <theme> --format windows-terminal --install-wt path\to\settings.json

Or by hand:

1. Open Settings (ctrl+,) and choose "Open JSON file"
2. Copy the object from %s into the "schemes" array
3. Set "colorScheme": "%s" in a profile

A fragment (--fragment) can instead be copied to
%%LOCALAPPDATA%%\Microsoft\Windows Terminal\Fragments\thag\.
`, name, filename, stem)
	}
}
