// Command authorize runs the one-time console OAuth flow: it reads
// client_secret.json, exchanges an authorization code and writes the
// token.json the bot expects at startup.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

func main() {
	secretFile := "client_secret.json"
	if len(os.Args) > 1 {
		secretFile = os.Args[1]
	}

	data, err := os.ReadFile(secretFile)
	if err != nil {
		log.Fatalf("Unable to read client secret file: %v", err)
	}

	oauthConfig, err := google.ConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		log.Fatalf("Unable to parse client secret file: %v", err)
	}
	oauthConfig.RedirectURL = "urn:ietf:wg:oauth:2.0:oob"

	token := getTokenFromWeb(oauthConfig)

	if err := saveToken("token.json", oauthConfig, token); err != nil {
		log.Fatalf("Unable to save token: %v", err)
	}

	fmt.Println("Token saved to token.json")
}

func getTokenFromWeb(config *oauth2.Config) *oauth2.Token {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		log.Fatalf("Unable to read authorization code: %v", err)
	}

	tok, err := config.Exchange(context.Background(), authCode)
	if err != nil {
		log.Fatalf("Unable to retrieve token from web: %v", err)
	}
	return tok
}

// saveToken writes the "authorized user" JSON shape the bot loads with
// google.CredentialsFromJSON at startup.
func saveToken(path string, config *oauth2.Config, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(map[string]string{
		"type":          "authorized_user",
		"client_id":     config.ClientID,
		"client_secret": config.ClientSecret,
		"refresh_token": token.RefreshToken,
	})
}
