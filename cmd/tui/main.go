// Tui is a terminal client for the sns server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"sns/internal/client"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	var server, username, password string
	var signup bool
	var limit int
	flag.StringVar(&server, "server", "http://127.0.0.1:8000", "server base url")
	flag.StringVar(&username, "user", "", "username")
	flag.StringVar(&password, "password", "", "password")
	flag.BoolVar(&signup, "signup", false, "create the account before logging in")
	flag.IntVar(&limit, "n", 20, "number of timeline posts to show")
	flag.Parse()

	if username == "" || password == "" {
		fmt.Fprintln(os.Stderr, "-user and -password are required")
		os.Exit(2)
	}

	api, err := client.New(server, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if signup {
		var apiErr *client.APIError
		// an existing account is fine, the login below decides
		if err := api.Signup(ctx, username, password); err != nil && !(errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest) {
			fmt.Fprintln(os.Stderr, "signup:", err)
			os.Exit(1)
		}
	}
	if err := api.Login(ctx, username, password); err != nil {
		fmt.Fprintln(os.Stderr, "login:", err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(newModel(api, username, limit), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
