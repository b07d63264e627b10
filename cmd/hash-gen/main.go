package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"loyaltyjo.backend/pkg/crypto"
	"loyaltyjo.backend/pkg/utils"
)

var (
	stdout         io.Writer = os.Stdout
	generateHashFn           = crypto.HashPassword
	fatalfFn                 = log.Fatalf
)

var errPasswordRequired = errors.New("usage: hash-gen [-admin email] [-role admin|super_admin] <password>")

type options struct {
	password   string
	adminEmail string
	role       string
}

func parseArgs(args []string) (*options, error) {
	fs := flag.NewFlagSet("hash-gen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	adminEmail := fs.String("admin", "", "print an admin_users seed statement for this email")
	role := fs.String("role", "super_admin", "admin role for the seed statement")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 || fs.Arg(0) == "" {
		return nil, errPasswordRequired
	}
	if *role != "admin" && *role != "super_admin" {
		return nil, fmt.Errorf("invalid role %q", *role)
	}
	return &options{
		password:   fs.Arg(0),
		adminEmail: strings.ToLower(strings.TrimSpace(*adminEmail)),
		role:       *role,
	}, nil
}

// seedStatement renders an idempotent admin_users insert for the migrated schema
func seedStatement(email, role, hash string) string {
	return fmt.Sprintf(
		"INSERT INTO admin_users (id, email, password_hash, full_name, role, is_active, created_at)\n"+
			"VALUES ('%s', '%s', '%s', 'Platform Admin', '%s', TRUE, NOW())\n"+
			"ON CONFLICT (email) DO NOTHING;\n",
		utils.GenerateUUIDv7(), strings.ReplaceAll(email, "'", "''"), hash, role,
	)
}

func run(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	hash, err := generateHashFn(opts.password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	fmt.Fprintf(stdout, "Bcrypt Hash: %s\n", hash)
	if opts.adminEmail != "" {
		fmt.Fprint(stdout, seedStatement(opts.adminEmail, opts.role, hash))
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fatalfFn("%v", err)
	}
}
