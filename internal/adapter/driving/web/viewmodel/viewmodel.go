// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// PageViewModel carries the data every full page needs.
type PageViewModel struct {
	Title     string
	CSRFToken string
}

// UserViewModel holds the signed-in administrator shown in the navbar.
type UserViewModel struct {
	Name     string
	Email    string
	Image    string
	Initials string
}

// LoginViewModel holds the login form state.
type LoginViewModel struct {
	PageViewModel
	Email string
	Error string
}

// DashboardViewModel holds everything rendered on the catalog dashboard.
type DashboardViewModel struct {
	PageViewModel
	User     UserViewModel
	List     JewelleryListViewModel
	Activity []ActivityViewModel
	Menu     MenuViewModel
	Dialog   DialogViewModel
	NewPath  string
	ListPath string
}

// JewelleryListViewModel holds the catalog table.
type JewelleryListViewModel struct {
	Rows  []JewelleryRowViewModel
	Error string
}

// JewelleryRowViewModel holds presentation-ready data for one catalog row.
type JewelleryRowViewModel struct {
	ID        string
	Name      string
	Brand     string
	SKU       string
	Price     string
	Color     string
	Size      string
	Thumbnail string
	EditPath  string
}

// ActivityViewModel holds one line of the recent activity feed.
type ActivityViewModel struct {
	When    string
	User    string
	Summary string
	Outcome string
	Failed  bool
}

// MenuViewModel holds the account dropdown state.
type MenuViewModel struct {
	User        UserViewModel
	Open        bool
	Pending     bool
	Error       string
	PendingText string
	TogglePath  string
	DismissPath string
	LogoutPath  string
	CSRFToken   string
}

// OptionViewModel is one choice of a select or radio group.
type OptionViewModel struct {
	Value    string
	Label    string
	Selected bool
}

// FieldViewModel is a single text input of the dialog form.
type FieldViewModel struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
	Value       string
	Error       string
}

// AttachmentViewModel is an image of the dialog draft. URL is set for images
// already stored with the record and empty for staged uploads.
type AttachmentViewModel struct {
	ID         string
	FileName   string
	URL        string
	Size       string
	DeletePath string
}

// ToolbarButtonViewModel is one description editor toolbar button.
type ToolbarButtonViewModel struct {
	Format  string
	Icon    string
	Command string
	Active  bool
}

// DialogViewModel holds the create/update dialog.
type DialogViewModel struct {
	Open         bool
	Title        string
	Subtitle     string
	SubmitLabel  string
	PendingLabel string
	Pending      bool
	CSRFToken    string
	SubmitPath   string
	ClosePath    string
	UploadPath   string
	EditorPath   string
	Category     FieldViewModel
	Categories   []OptionViewModel
	Name         FieldViewModel
	Brand        FieldViewModel
	ColorError   string
	Colors       []OptionViewModel
	Size         FieldViewModel
	Sizes        []OptionViewModel
	SKU          FieldViewModel
	Price        FieldViewModel
	Description  string
	EditorHTML   string
	Placeholder  string
	Toolbar      []ToolbarButtonViewModel
	Attachments  []AttachmentViewModel
}
