package enums

import "fmt"

// Channel is the bucket a ledger amount moves through. Receivable tracks
// uncollected customer debt and is never required to be funded.
type Channel string

const (
	ChannelCash       Channel = "cash"
	ChannelBank       Channel = "bank"
	ChannelReceivable Channel = "receivable"
)

var validChannels = []Channel{
	ChannelCash,
	ChannelBank,
	ChannelReceivable,
}

// IsValid reports whether the value matches the canonical channel enum.
func (c Channel) IsValid() bool {
	for _, candidate := range validChannels {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseChannel converts raw input into Channel.
func ParseChannel(value string) (Channel, error) {
	for _, candidate := range validChannels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid channel %q", value)
}
