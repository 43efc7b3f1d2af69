package ui

// NavigationTarget is a path relative to the current origin, e.g. "" or "/add".
// Any string is accepted.
type NavigationTarget string

const (
	NavBrowse NavigationTarget = ""
	NavCreate NavigationTarget = "/add"
	NavPlay   NavigationTarget = "/play"
)

// Target builds the absolute URL for a full-page navigation.
func Target(origin string, path NavigationTarget) string {
	return origin + string(path)
}

// Navigator performs a full navigation to an absolute URL, replacing the
// current document. Failures are the navigator's concern.
type Navigator interface {
	Navigate(url string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(url string)

// Navigate calls f(url).
func (f NavigatorFunc) Navigate(url string) {
	f(url)
}

// NavItem is one control in the header menu.
type NavItem struct {
	Label  string
	Target NavigationTarget
}

// NavItems lists the header menu controls in display order.
var NavItems = []NavItem{
	{Label: "Browse", Target: NavBrowse},
	{Label: "Create", Target: NavCreate},
	{Label: "Play", Target: NavPlay},
}

// Header is the page header: a logo and the three navigation controls.
type Header struct {
	Origin    string
	Navigator Navigator
}

// NewHeader creates a Header bound to origin.
func NewHeader(origin string, nav Navigator) *Header {
	return &Header{Origin: origin, Navigator: nav}
}

// NavTo navigates to Origin + path.
func (h *Header) NavTo(path NavigationTarget) {
	h.Navigator.Navigate(Target(h.Origin, path))
}

// Href returns the link target rendered for a control.
func (h *Header) Href(path NavigationTarget) string {
	return Target(h.Origin, path)
}
