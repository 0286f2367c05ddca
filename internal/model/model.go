package model

// Origine di una lettura pubblicata dal poller
const (
	SourceLive = "live"
	SourceMock = "mock"
)
