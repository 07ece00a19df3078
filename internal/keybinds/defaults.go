package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerUploadBindings(r)
	registerListBindings(r)
	registerPickerBindings(r)
	registerSearchBindings(r)
	registerViewerBindings(r)
	registerHelpBindings(r)

	return r
}

func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "q", ActionQuit)
	r.Register(ContextGlobal, "tab", ActionNextTab)
	r.Register(ContextGlobal, "shift+tab", ActionPrevTab)
	r.Register(ContextGlobal, "1", ActionTabUpload)
	r.Register(ContextGlobal, "2", ActionTabList)
	r.Register(ContextGlobal, "?", ActionOpenHelp)
}

func registerUploadBindings(r *Registry) {
	r.RegisterMultiple(ContextUpload, []string{"o", "f"}, ActionOpenPicker)
	r.RegisterMultiple(ContextUpload, []string{"enter", "u"}, ActionSubmit)
	r.Register(ContextUpload, "y", ActionCopyAnalysis)
	r.Register(ContextUpload, "v", ActionToggleRaw)
}

func registerListBindings(r *Registry) {
	r.Register(ContextList, "r", ActionRefresh)
	r.Register(ContextList, "u", ActionUploadFromList)
	r.Register(ContextList, "/", ActionOpenSearch)
	r.Register(ContextList, "esc", ActionClearSearch)
	r.RegisterMultiple(ContextList, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextList, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextList, "pgup", ActionPageUp)
	r.Register(ContextList, "pgdown", ActionPageDown)
	r.RegisterMultiple(ContextList, []string{"gg", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextList, []string{"G", "end"}, ActionGoToBottom)
}

// registerPickerBindings keeps only the exit key; the picker handles its own navigation
func registerPickerBindings(r *Registry) {
	r.Register(ContextPicker, "esc", ActionCloseModal)
}

func registerSearchBindings(r *Registry) {
	r.Register(ContextSearch, "enter", ActionTextSubmit)
	r.Register(ContextSearch, "esc", ActionTextCancel)
}

func registerViewerBindings(r *Registry) {
	r.RegisterMultiple(ContextViewer, []string{"esc", "v"}, ActionCloseModal)
	r.Register(ContextViewer, "y", ActionCopyAnalysis)
	r.RegisterMultiple(ContextViewer, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextViewer, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextViewer, "pgup", ActionPageUp)
	r.Register(ContextViewer, "pgdown", ActionPageDown)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "?"}, ActionCloseModal)
}
