// Command admincli is the operator console for the Villorya admin API. It
// signs in against the authentication endpoint, keeps the session in the
// user config directory, and runs privileged queries with the stored token.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"villorya.app/internal/console"
	"villorya.app/internal/store"
)

const usage = `Usage: admincli [-api URL] <command>

Commands:
  login       sign in and store the session
  logout      clear the stored session
  status      show the current session
  products    list catalog products
  kanban      list kanban tickets
  contacts    list contact tickets
  suppliers   list suppliers (-kind package|raw)
`

func main() {
	apiURL := flag.String("api", envOr("VILLORYA_API_URL", "http://localhost:8080"), "base URL of the admin API")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	path, err := console.DefaultCredentialsPath()
	if err != nil {
		fatal("resolve credentials path: %v", err)
	}
	credStore := console.NewFileStore(path)

	sess, client := console.Connect(*apiURL, credStore)

	// Boot-time restoration: unknown resolves before any command runs.
	sess.Restore()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd := flag.Arg(0); cmd {
	case "login":
		runLogin(ctx, sess)
	case "logout":
		sess.Logout()
		fmt.Println("Signed out.")
	case "status":
		runStatus(sess)
	case "products", "kanban", "contacts", "suppliers":
		// Route guard: privileged commands never run anonymously.
		if !console.Guard(sess.State()).Allowed() {
			fatal("not signed in; run `admincli login` first")
		}
		runQuery(ctx, client, cmd, flag.Args()[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
}

func runLogin(ctx context.Context, sess *console.Session) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	fmt.Print("Password: ")
	password, _ := reader.ReadString('\n')

	result := sess.Login(ctx, strings.TrimSpace(email), strings.TrimSpace(password))
	if !result.Ok {
		fatal("login failed: %s", result.Reason)
	}
	user, _ := sess.User()
	fmt.Printf("Signed in as %s\n", user.Email)
}

func runStatus(sess *console.Session) {
	if user, ok := sess.User(); ok {
		fmt.Printf("Signed in as %s (%s)\n", user.Email, user.ID)
		return
	}
	fmt.Println("Not signed in.")
}

func runQuery(ctx context.Context, client *console.Client, cmd string, rest []string) {
	var err error
	switch cmd {
	case "products":
		var products []store.Product
		if products, err = client.ListProducts(ctx); err == nil {
			for _, p := range products {
				fmt.Printf("%s\t%s\t%s\n", p.ID, p.Title, p.Variety)
			}
			fmt.Printf("%d product(s)\n", len(products))
		}
	case "kanban":
		var tickets []store.Ticket
		if tickets, err = client.ListTickets(ctx); err == nil {
			for _, t := range tickets {
				fmt.Printf("%s\t[%s]\t%s\n", t.ID, t.Status, t.Title)
			}
			fmt.Printf("%d ticket(s)\n", len(tickets))
		}
	case "contacts":
		var tickets []store.ContactTicket
		if tickets, err = client.ListContactTickets(ctx); err == nil {
			for _, t := range tickets {
				fmt.Printf("%s\t[%s]\t%s <%s>\n", t.ID, t.Status, t.Name, t.Email)
			}
			fmt.Printf("%d contact ticket(s)\n", len(tickets))
		}
	case "suppliers":
		fs := flag.NewFlagSet("suppliers", flag.ExitOnError)
		kind := fs.String("kind", store.SupplierKindPackage, "supplier kind: package or raw")
		_ = fs.Parse(rest)
		var suppliers []store.Supplier
		if suppliers, err = client.ListSuppliers(ctx, *kind); err == nil {
			for _, s := range suppliers {
				fmt.Printf("%s\t%s\t%s\n", s.ID, s.Name, s.Status)
			}
			fmt.Printf("%d supplier(s)\n", len(suppliers))
		}
	}
	if err != nil {
		if errors.Is(err, console.ErrUnauthorized) {
			// Stored token rejected. The session is left intact on purpose;
			// the operator decides whether to sign in again.
			fatal("session rejected by the server; run `admincli login` to sign in again")
		}
		fatal("%s: %v", cmd, err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
