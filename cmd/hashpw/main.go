// Command hashpw prints the bcrypt hash of a password, for seeding the
// users file.
//
// Usage: hashpw <password>
package main

import (
	"fmt"
	"os"

	"github.com/99minutos/auth-service/internal/pkg/password"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(2)
	}

	hash, err := password.Hash(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
