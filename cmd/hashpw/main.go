// Command hashpw prints the bcrypt hash to store in admin_users.password_hash,
// or checks a password against an existing hash.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/drhenri-ux/octorlink/internal/auth"
)

func main() {
	check := flag.String("check", "", "existing hash to verify the password against")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hashpw [-check HASH] PASSWORD")
		os.Exit(2)
	}
	password := flag.Arg(0)

	if *check != "" {
		if auth.CheckPassword(*check, password) {
			fmt.Println("PASS - hash matches password")
			return
		}
		fmt.Println("FAIL - hash does not match")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
