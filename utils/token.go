package utils

import "math/rand"

// GenerateRandomToken returns a short alphanumeric code, used for password
// reset emails. The package-level rand functions are safe for concurrent
// handlers.
func GenerateRandomToken(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	token := make([]byte, length)
	for i := range token {
		token[i] = charset[rand.Intn(len(charset))]
	}
	return string(token)
}
