// Generates a bcrypt hash for an operator account (users table), with the
// same default cost the seeder uses.
//
// Usage:
//
//	go run scripts/generate_password.go [-cost N] <password>
package main

import (
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", 10, "bcrypt cost")
	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatal("Usage: go run scripts/generate_password.go [-cost N] <password>")
	}
	password := flag.Arg(0)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), *cost)
	if err != nil {
		log.Fatal("Error generating hash:", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		log.Fatal("Hash verification failed:", err)
	}

	fmt.Printf("Hash: %s\n", hash)
	fmt.Printf("UPDATE users SET password = '%s' WHERE username = '<operator>';\n", hash)
	fmt.Println("✅ Hash verified successfully!")
}
