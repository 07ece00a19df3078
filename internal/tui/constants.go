package tui

// Layout constants
const (
	TabBarHeight     = 3  // Tab labels plus their top border
	StatusBarHeight  = 1  // Footer line
	PanelPadding     = 2  // Box border (top + bottom)
	PickerMargin     = 8  // Rows reserved around the file picker
	MinContentHeight = 5  // Smallest usable panel body
	MinContentWidth  = 20 // Smallest usable panel width
	StatusMaxLength  = 100

	listHeaderRows         = 4 // title, spinner, error and filter lines above the records
	pickerAutoHeightMargin = 5 // rows the file picker subtracts from its window height
)

// Messages shown in panel state. These strings are part of observable behavior.
const (
	noFileNotice        = "Please select a file first"
	uploadFallbackError = "Error uploading resume. Please try again."
	listUploadFallback  = "Upload failed"
	listFetchError      = "Failed to fetch resumes"
	uploadingLabel      = "Uploading..."
	uploadLabel         = "Upload"
)
