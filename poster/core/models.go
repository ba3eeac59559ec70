package core

// Comic is the metadata of a single xkcd strip needed to post it.
type Comic struct {
	ID       int
	Title    string
	ImageURL string
	Caption  string
}

// Credentials authorize posting to the destination channel.
type Credentials struct {
	BotToken  string
	ChannelID string
}
