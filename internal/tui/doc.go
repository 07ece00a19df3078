/*
Package tui implements the interactive terminal client for resumedesk.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: the tab shell, holding both panels for the program's lifetime
  - Update: processes key presses and request results
  - View: renders the active tab, the tab bar and the status bar

# Key Components

  - model.go: tab shell, options and message types
  - upload_panel.go: UploadPanel, one document and its analysis
  - list_panel.go: ResumeListPanel, the resume history with refresh and upload
  - keys.go: keyboard input handling and keybind routing
  - render.go: tab bar, overlays and status bar
  - actions.go: request commands, clipboard and JSON highlighting
  - error_categorizer.go: operator hints for failed requests

# Request Flow

A panel transition returns a tea.Cmd that performs the HTTP call off the
event loop. The result comes back as a message tagged with the panel that
started it, so a hidden tab keeps progressing. Panel state is only ever
mutated inside Update.

# Keybind System

Keybinds are managed through the keybinds.Registry:
  - Context-aware bindings (global, upload, list, picker, search, viewer, help)
  - User-customizable via keybinds.json

# Example Usage

	err := tui.Run(tui.Options{
		Context:  ctx,
		Uploader: client,
		Lister:   client,
		Logger:   logger,
	})
*/
package tui
