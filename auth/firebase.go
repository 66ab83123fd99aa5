package auth

import (
	"context"
	"log"
	"os"

	firebase "firebase.google.com/go"
	firebaseauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"

	"github.com/joho/godotenv"
)

var (
	firebaseApp  *firebase.App
	firebaseAuth *firebaseauth.Client
	projectID    string
)

// emailFromClaims pulls the email out of a verified token's claim map.
// Not every verified identity carries one (phone-auth users), so the
// claim must be a non-empty string before anything is keyed on it.
func emailFromClaims(claims map[string]interface{}) (string, bool) {
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}

func init() {
	// Load .env locally
	_ = godotenv.Load()

	ctx := context.Background()

	// Read the whole JSON blob out of the ENV
	credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	if credsJSON == "" {
		log.Println("⚠️ FIREBASE_CREDENTIALS_JSON not set, login endpoints disabled")
		return
	}

	projectID = os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		log.Fatal("❌ FIREBASE_PROJECT_ID must be set")
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	config := &firebase.Config{ProjectID: projectID}

	var err error
	firebaseApp, err = firebase.NewApp(ctx, config, opt)
	if err != nil {
		log.Fatalf("❌ Error initializing Firebase app: %v", err)
	}

	firebaseAuth, err = firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("❌ Error getting Firebase Auth client: %v", err)
	}
}
