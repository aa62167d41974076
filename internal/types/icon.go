package types

import (
	"encoding/json"
	"strings"
)

// IconKind discriminates the two icon representations.
type IconKind int

const (
	// IconEmoji is a short literal string rendered as-is (usually an emoji)
	IconEmoji IconKind = iota
	// IconImage is a server-assigned path to an uploaded image
	IconImage
)

// UploadPathPrefix is the path convention that marks an icon string as
// an uploaded image rather than a literal.
const UploadPathPrefix = "/uploads/"

// Icon is a category icon. On the wire it is a single string: literal
// emoji, or an image path starting with UploadPathPrefix. Internally it
// is kept as a tagged value so render code never has to sniff string
// shapes.
type Icon struct {
	Kind  IconKind
	Value string
}

// EmojiIcon builds a literal icon
func EmojiIcon(v string) Icon {
	return Icon{Kind: IconEmoji, Value: v}
}

// ImageIcon builds an uploaded-image icon from a server path
func ImageIcon(path string) Icon {
	return Icon{Kind: IconImage, Value: path}
}

// ParseIcon maps a wire string onto the tagged representation
func ParseIcon(s string) Icon {
	if strings.HasPrefix(s, UploadPathPrefix) {
		return Icon{Kind: IconImage, Value: s}
	}
	return Icon{Kind: IconEmoji, Value: s}
}

// String returns the wire form
func (i Icon) String() string {
	return i.Value
}

// IsZero reports whether no icon is set
func (i Icon) IsZero() bool {
	return i.Value == ""
}

// MarshalJSON encodes the icon as its wire string
func (i Icon) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Value)
}

// UnmarshalJSON decodes the wire string into the tagged form
func (i *Icon) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*i = ParseIcon(s)
	return nil
}
