package main

import (
	"fmt"
	"os"

	"healthledger/pkg/platform/secrets"
)

// Generates a bootstrap secret for the token-mint endpoint. The plaintext
// goes to the operator, the hash goes into BOOTSTRAP_SECRET_HASH.
func main() {
	secret, err := secrets.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not generate secret: %v\n", err)
		os.Exit(1)
	}

	hash, err := secrets.Hash(secret)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not hash secret: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("secret: %s\n", secret)
	fmt.Printf("BOOTSTRAP_SECRET_HASH=%s\n", hash)
}
