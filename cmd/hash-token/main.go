package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/hash-token/main.go <token>")
		fmt.Println("Example: go run cmd/hash-token/main.go \"ops-token-12345\"")
		os.Exit(1)
	}

	token := os.Args[1]

	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Token hashed successfully!\n\n")
	fmt.Printf("API_ROUTE_TOKEN_HASH=%s\n", hash)
	fmt.Printf("\n⚠️  IMPORTANT: Store the plain token securely! Only the hash goes in the environment.\n")
	fmt.Printf("\nUse the token in the Authorization header:\n")
	fmt.Printf("Authorization: Bearer %s\n", token)
}
