package model

type StoryRequest struct {
	Model     string
	Prompt    string
	MaxTokens int64
}

type StoryResult struct {
	Model string
	Text  string
}
