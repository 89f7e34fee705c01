// apicheck is a small smoke-test client for the Harmony API. It exercises
// the auth and connection endpoints against a running server.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
)

const defaultBase = "http://localhost:8080"

func main() {
	base := os.Getenv("API_BASE")
	if base == "" {
		base = defaultBase
	}
	token := os.Getenv("API_TOKEN")

	signupCmd := flag.NewFlagSet("signup", flag.ExitOnError)
	signupUser := signupCmd.String("username", "", "Username (required)")
	signupPass := signupCmd.String("password", "", "Password (required)")
	signupName := signupCmd.String("name", "", "Display name")
	signupTitle := signupCmd.String("title", "", "Professional title")

	signinCmd := flag.NewFlagSet("signin", flag.ExitOnError)
	signinUser := signinCmd.String("username", "", "Username (required)")
	signinPass := signinCmd.String("password", "", "Password (required)")

	connectCmd := flag.NewFlagSet("connect", flag.ExitOnError)
	connectReceiver := connectCmd.Uint("receiver", 0, "Receiver user ID (required)")

	respondCmd := flag.NewFlagSet("respond", flag.ExitOnError)
	respondID := respondCmd.Uint("id", 0, "Connection ID (required)")
	respondStatus := respondCmd.String("status", "", `"accepted" or "rejected" (required)`)

	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "signup":
		signupCmd.Parse(os.Args[2:])
		if *signupUser == "" || *signupPass == "" {
			fmt.Fprintln(os.Stderr, "Missing required flags: -username and -password")
			signupCmd.Usage()
			os.Exit(1)
		}
		body := map[string]string{
			"username": *signupUser,
			"password": *signupPass,
			"name":     *signupName,
			"title":    *signupTitle,
		}
		do("POST", base+"/api/v1/auth/signup", "", body)

	case "signin":
		signinCmd.Parse(os.Args[2:])
		if *signinUser == "" || *signinPass == "" {
			fmt.Fprintln(os.Stderr, "Missing required flags: -username and -password")
			signinCmd.Usage()
			os.Exit(1)
		}
		do("POST", base+"/api/v1/auth/signin", "", map[string]string{
			"username": *signinUser,
			"password": *signinPass,
		})

	case "users":
		do("GET", base+"/api/v1/users", token, nil)

	case "connections":
		do("GET", base+"/api/v1/connections", token, nil)

	case "pending":
		do("GET", base+"/api/v1/connections/pending", token, nil)

	case "connect":
		connectCmd.Parse(os.Args[2:])
		if *connectReceiver == 0 {
			fmt.Fprintln(os.Stderr, "Missing required flag: -receiver")
			connectCmd.Usage()
			os.Exit(1)
		}
		do("POST", base+"/api/v1/connections", token, map[string]uint{"receiverId": uint(*connectReceiver)})

	case "respond":
		respondCmd.Parse(os.Args[2:])
		if *respondID == 0 || *respondStatus == "" {
			fmt.Fprintln(os.Stderr, "Missing required flags: -id and -status")
			respondCmd.Usage()
			os.Exit(1)
		}
		do("PATCH", fmt.Sprintf("%s/api/v1/connections/%d", base, *respondID), token,
			map[string]string{"status": *respondStatus})

	default:
		usage()
		log.Fatalf("Unknown command: %s\n\n", os.Args[1])
	}
}

func usage() {
	fmt.Print(`Usage: apicheck <command> [flags]

Commands:
  signup       -username <u> -password <p> [-name <n>] [-title <t>]
  signin       -username <u> -password <p>
  users                                      GET  /api/v1/users
  connections                                GET  /api/v1/connections
  pending                                    GET  /api/v1/connections/pending
  connect      -receiver <id>                POST /api/v1/connections
  respond      -id <id> -status <s>          PATCH /api/v1/connections/:id

Environment:
  API_BASE    override default http://localhost:8080
  API_TOKEN   bearer token for authenticated commands
`)
}

func do(method, url, token string, body interface{}) {
	var reader io.Reader
	if body != nil {
		msg, err := json.Marshal(body)
		if err != nil {
			log.Fatal(err)
		}
		reader = bytes.NewBuffer(msg)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		log.Fatal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s %s -> %s\n%s\n", method, url, resp.Status, out)
}
