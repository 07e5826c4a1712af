// Command devtoken prints an access token for local testing against the
// layout API.  Production tokens come from the identity service.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv" // read JWT_SECRET from .env like the server

	"github.com/iliyamo/venue-layout-editor/internal/utils"
)

func main() {
	_ = godotenv.Load()
	user := flag.Uint64("user", 1, "owner id placed in the sub claim")
	role := flag.String("role", "OWNER", "role claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "HS256 signing secret")
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "devtoken: JWT_SECRET or -secret is required")
		os.Exit(2)
	}
	tok, err := utils.NewAccessToken(*secret, *user, *role, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "devtoken:", err)
		os.Exit(1)
	}
	fmt.Println(tok.Token)
}
