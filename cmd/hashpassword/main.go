// Command hashpassword prints an INSERT statement for the credentials
// table. The password is read from the first line of stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"otraveznose/internal/auth/credentials"
)

func main() {
	username := flag.String("username", "", "username to insert")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if *username == "" {
		fail("missing -username")
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fail("failed to read password from stdin: %v", err)
	}

	hash, err := credentials.HashPassword(strings.TrimRight(line, "\r\n"), *cost)
	if err != nil {
		fail("failed to hash password: %v", err)
	}

	fmt.Printf("INSERT INTO credentials (username, password_hash, hash_version) VALUES ('%s', '%s', '%s');\n",
		strings.ReplaceAll(*username, "'", "''"), hash, credentials.HashVersionBcrypt)
}

// stdout carries only the SQL statement
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "hashpassword: "+format+"\n", args...)
	os.Exit(1)
}
