// Package main mints an access token for local testing of the report API.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"sbreport/internal/config"
	appctx "sbreport/internal/core/context"
	"sbreport/internal/domain/auth"
	v1 "sbreport/internal/infrastructure/http/v1"
)

func main() {
	var (
		userID = flag.String("user", "demo", "user id (sub claim)")
		email  = flag.String("email", "", "user email")
		perms  = flag.String("perms", v1.PermissionReadSummary, "comma-separated permissions")
		orgs   = flag.String("orgs", "", "comma-separated companies the user may report on")
		roles  = flag.String("roles", "", "comma-separated roles")
		admin  = flag.Bool("admin", false, "grant every permission and bypass access rules that check is_admin")
	)
	flag.Parse()

	cfg, err := config.LoadJWT()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	svc := auth.NewJWTService(auth.JWTConfigFrom(cfg))
	token, expiresAt, err := svc.GenerateAccessToken(appctx.UserContext{
		UserID:      *userID,
		Email:       *email,
		Roles:       splitList(*roles),
		Permissions: splitList(*perms),
		OrgIDs:      splitList(*orgs),
		IsAdmin:     *admin,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Println(token)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
