package views

// Avatar is an author picture. The zero value of Borderless renders the
// bordered style.
type Avatar struct {
	Src        string
	Alt        string
	Borderless bool
}

// Class returns the CSS class for the avatar style.
func (a Avatar) Class() string {
	if a.Borderless {
		return "avatar"
	}
	return "avatar-with-border"
}
