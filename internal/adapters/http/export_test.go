package http

// ChannelSubject exposes channelSubject to the external test package.
func ChannelSubject(channel, festival string) (string, bool) {
	return channelSubject(wsMessage{Channel: channel, Festival: festival})
}

var EtagMatches = etagMatches
