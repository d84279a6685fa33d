package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/hash-admin-key/main.go <admin-key>")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash admin key: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("ADMIN_API_KEY_HASH=%s\n", hash)
	fmt.Printf("\n⚠️  IMPORTANT: Save the key itself securely! Only the hash goes in .env.\n")
	fmt.Printf("\nUse the key in the Authorization header of admin requests:\n")
	fmt.Printf("Authorization: Bearer %s\n", os.Args[1])
}
