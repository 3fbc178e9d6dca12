package templates

import vm "github.com/risinglab/jewelpanel/internal/adapter/driving/web/viewmodel"

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// inputType defaults an empty field type to text.
func inputType(f vm.FieldViewModel) string {
	if f.Type == "" {
		return "text"
	}
	return f.Type
}

func swatchStyle(color string) string {
	return "background-color: " + color
}
