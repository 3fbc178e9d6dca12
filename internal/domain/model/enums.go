package model

// Color is a jewellery colour choice offered by the dialog.
type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorBlack  Color = "black"
	ColorWhite  Color = "white"
	ColorPink   Color = "pink"
)

// Colors lists every colour in display order.
var Colors = []Color{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorBlack, ColorWhite, ColorPink}

// Size is a jewellery size choice.
type Size string

const (
	SizeSmall      Size = "S"
	SizeMedium     Size = "M"
	SizeLarge      Size = "L"
	SizeExtraLarge Size = "XL"
)

// Sizes lists every size in display order.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge}

// DialogMode distinguishes a dialog opened for a new record from one opened
// for an existing record.
type DialogMode string

const (
	DialogModeAdd  DialogMode = "add"
	DialogModeEdit DialogMode = "edit"
)
