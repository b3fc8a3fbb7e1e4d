package entity

import "strings"

// Channel is a route an OTP can travel.
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelSMS      Channel = "sms"
	ChannelEmail    Channel = "email"
)

// ChannelFromString parses a configured channel name. Unknown names return
// "" and false.
func ChannelFromString(s string) (Channel, bool) {
	switch c := Channel(strings.ToLower(strings.TrimSpace(s))); c {
	case ChannelWhatsApp, ChannelSMS, ChannelEmail:
		return c, true
	default:
		return "", false
	}
}

// IsPhone reports whether the channel delivers to a phone number.
func (c Channel) IsPhone() bool {
	return c == ChannelWhatsApp || c == ChannelSMS
}
