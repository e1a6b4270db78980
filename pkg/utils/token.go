package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateInviteToken builds the token embedded in invitation links
func GenerateInviteToken() (string, error) {
	return gonanoid.Generate(characters, 32)
}

// GenerateSessionID builds a short identifier for roleplay sessions
func GenerateSessionID() (string, error) {
	return gonanoid.Generate(characters, 12)
}
