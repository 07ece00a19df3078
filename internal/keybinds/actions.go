package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal Context = "global" // Available everywhere
	ContextUpload Context = "upload" // Upload tab
	ContextList   Context = "list"   // Resume list tab
	ContextPicker Context = "picker" // File picker overlay
	ContextSearch Context = "search" // Filename filter input
	ContextViewer Context = "viewer" // Raw JSON viewer
	ContextHelp   Context = "help"   // Help overlay
)

// AllContexts lists every context in config order
var AllContexts = []Context{
	ContextGlobal,
	ContextUpload,
	ContextList,
	ContextPicker,
	ContextSearch,
	ContextViewer,
	ContextHelp,
}

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)
	ActionNextTab   Action = "next_tab"   // Cycle to the next tab
	ActionPrevTab   Action = "prev_tab"   // Cycle to the previous tab
	ActionTabUpload Action = "tab_upload" // Jump to the upload tab
	ActionTabList   Action = "tab_list"   // Jump to the resume list tab
	ActionOpenHelp  Action = "open_help"  // Toggle help overlay

	// Upload tab
	ActionOpenPicker   Action = "open_picker"   // Choose a file
	ActionSubmit       Action = "submit"        // Upload the selected file
	ActionCopyAnalysis Action = "copy_analysis" // Copy analysis to clipboard
	ActionToggleRaw    Action = "toggle_raw"    // Toggle raw JSON view

	// Resume list tab
	ActionRefresh        Action = "refresh"          // Re-fetch the list
	ActionUploadFromList Action = "upload_from_list" // Pick a file, upload, then refresh
	ActionOpenSearch     Action = "open_search"      // Filter by filename
	ActionClearSearch    Action = "clear_search"     // Drop the filename filter

	// Navigation
	ActionNavigateUp   Action = "navigate_up"
	ActionNavigateDown Action = "navigate_down"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionGoToTop      Action = "go_to_top"
	ActionGoToBottom   Action = "go_to_bottom"

	// Text input and overlays
	ActionTextSubmit Action = "text_submit"
	ActionTextCancel Action = "text_cancel"
	ActionCloseModal Action = "close_modal"
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:           {ActionQuit, "Quit", "Global"},
	ActionQuitForce:      {ActionQuitForce, "Force quit", "Global"},
	ActionNextTab:        {ActionNextTab, "Next tab", "Global"},
	ActionPrevTab:        {ActionPrevTab, "Previous tab", "Global"},
	ActionTabUpload:      {ActionTabUpload, "Upload tab", "Global"},
	ActionTabList:        {ActionTabList, "Resume list tab", "Global"},
	ActionOpenHelp:       {ActionOpenHelp, "Toggle help", "Global"},
	ActionOpenPicker:     {ActionOpenPicker, "Choose file", "Upload"},
	ActionSubmit:         {ActionSubmit, "Upload resume", "Upload"},
	ActionCopyAnalysis:   {ActionCopyAnalysis, "Copy analysis", "Upload"},
	ActionToggleRaw:      {ActionToggleRaw, "Toggle raw JSON", "Upload"},
	ActionRefresh:        {ActionRefresh, "Refresh list", "Resume List"},
	ActionUploadFromList: {ActionUploadFromList, "Upload and refresh", "Resume List"},
	ActionOpenSearch:     {ActionOpenSearch, "Filter by filename", "Resume List"},
	ActionClearSearch:    {ActionClearSearch, "Clear filter", "Resume List"},
	ActionNavigateUp:     {ActionNavigateUp, "Move up", "Navigation"},
	ActionNavigateDown:   {ActionNavigateDown, "Move down", "Navigation"},
	ActionPageUp:         {ActionPageUp, "Page up", "Navigation"},
	ActionPageDown:       {ActionPageDown, "Page down", "Navigation"},
	ActionGoToTop:        {ActionGoToTop, "Go to top", "Navigation"},
	ActionGoToBottom:     {ActionGoToBottom, "Go to bottom", "Navigation"},
	ActionTextSubmit:     {ActionTextSubmit, "Apply", "Input"},
	ActionTextCancel:     {ActionTextCancel, "Cancel", "Input"},
	ActionCloseModal:     {ActionCloseModal, "Close", "Input"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is one the TUI handles
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}
