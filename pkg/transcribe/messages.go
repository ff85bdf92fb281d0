package transcribe

import "math/rand/v2"

const (
	// AttributionTag is appended after a blank line when copying an entry.
	AttributionTag = "~ recorded with DaySay"
	// SharePostfix is appended verbatim when sharing an entry.
	SharePostfix = "\n\n~ recorded with DaySay"
	// ShareTitle is the title passed to the platform share surface.
	ShareTitle = "DaySay Journal Entry"
)

// CopyMessages are the short confirmations surfaced after a successful
// copy. Kept playful on purpose.
var CopyMessages = []string{
	"Copied! Your day is ready to travel.",
	"Got it. The words are on your clipboard.",
	"Copied to clipboard, memories intact.",
	"Saved to clipboard. Go tell someone about your day.",
	"Entry copied. Paste away!",
}

// RandomCopyMessage picks one of CopyMessages.
func RandomCopyMessage() string {
	return CopyMessages[rand.IntN(len(CopyMessages))]
}
