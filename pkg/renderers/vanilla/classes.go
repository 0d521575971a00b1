package vanilla

// ChromeClass is a semantic CSS class emitted by the templates.
type ChromeClass string

const (
	ClassPage    ChromeClass = "heroform-page"
	ClassBack    ChromeClass = "heroform-back"
	ClassForm    ChromeClass = "heroform-form"
	ClassHeader  ChromeClass = "heroform-header"
	ClassNotice  ChromeClass = "heroform-notice"
	ClassErrors  ChromeClass = "heroform-errors"
	ClassField   ChromeClass = "heroform-field"
	ClassInvalid ChromeClass = "heroform-field--invalid"
	ClassLabel   ChromeClass = "heroform-label"
	ClassItem    ChromeClass = "heroform-item"
	ClassError   ChromeClass = "heroform-error"
	ClassSubmit  ChromeClass = "heroform-submit"
)

func classMap() map[string]string {
	return map[string]string{
		"page":    string(ClassPage),
		"back":    string(ClassBack),
		"form":    string(ClassForm),
		"header":  string(ClassHeader),
		"notice":  string(ClassNotice),
		"errors":  string(ClassErrors),
		"field":   string(ClassField),
		"invalid": string(ClassInvalid),
		"label":   string(ClassLabel),
		"item":    string(ClassItem),
		"error":   string(ClassError),
		"submit":  string(ClassSubmit),
	}
}
