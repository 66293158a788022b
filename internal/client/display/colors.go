package display

// Terminal color codes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Prompt returns a colored prompt string
func Prompt(text string) string {
	return Yellow + text + " > " + Reset
}

// ColorForSide returns a colored side name for 'b' or 'w'
func ColorForSide(color string) string {
	if color == "w" {
		return Blue + "White" + Reset
	}
	return Red + "Black" + Reset
}
